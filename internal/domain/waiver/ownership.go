package waiver

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
)

var ErrNoRosterSlots = errors.New("league has no roster slots")

// OwnershipSummary is the per-league ownership view derived from one roster
// snapshot. Players absent from every roster carry no entry (implicit 0%).
type OwnershipSummary struct {
	PercentageByPlayer map[string]int
	RosteredIDs        map[string]struct{}
	TotalRosters       int
}

// Percentage returns the roster percentage for a player, 0 when unrostered.
func (s OwnershipSummary) Percentage(playerID string) int {
	return s.PercentageByPlayer[playerID]
}

// IsRostered reports whether any roster in the league holds the player.
func (s OwnershipSummary) IsRostered(playerID string) bool {
	_, ok := s.RosteredIDs[playerID]
	return ok
}

// AggregateOwnership computes roster percentages across one league's rosters.
// Rosters with a missing player list count as empty rather than failing the
// pipeline on partial provider data.
func AggregateOwnership(rosters []roster.Roster, totalRosters int) (OwnershipSummary, error) {
	if totalRosters <= 0 {
		return OwnershipSummary{}, fmt.Errorf("%w: total rosters must be greater than zero", ErrNoRosterSlots)
	}

	countByPlayer := make(map[string]int, len(rosters)*16)
	rostered := make(map[string]struct{}, len(rosters)*16)
	for _, item := range rosters {
		for _, playerID := range item.Players {
			if playerID == "" {
				continue
			}
			countByPlayer[playerID]++
			rostered[playerID] = struct{}{}
		}
	}

	percentages := make(map[string]int, len(countByPlayer))
	for playerID, count := range countByPlayer {
		pct := int(math.Round(float64(count) / float64(totalRosters) * 100))
		if pct > 100 {
			pct = 100
		}
		percentages[playerID] = pct
	}

	return OwnershipSummary{
		PercentageByPlayer: percentages,
		RosteredIDs:        rostered,
		TotalRosters:       totalRosters,
	}, nil
}

// AvailablePlayers filters the all-players snapshot down to waiver-wire
// candidates: active, attached to an NFL team, and not on any league roster.
// Output is ordered by player id so repeated calls are deterministic.
func AvailablePlayers(all map[string]player.Player, summary OwnershipSummary) []player.Player {
	out := make([]player.Player, 0, 64)
	for id, item := range all {
		if !item.Active || item.IsFreeAgent() {
			continue
		}
		if summary.IsRostered(id) {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountPositions tallies a roster's players by position using the all-players
// snapshot. Unknown player ids are skipped.
func CountPositions(r roster.Roster, all map[string]player.Player) map[player.Position]int {
	counts := make(map[player.Position]int, len(player.AllPositions))
	for _, playerID := range r.Players {
		item, ok := all[playerID]
		if !ok {
			continue
		}
		counts[item.Position]++
	}
	return counts
}
