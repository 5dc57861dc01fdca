package teamneeds

import (
	"github.com/gridironhq/waiverwire/internal/domain/player"
)

// Health classifies a roster's overall positional shape.
type Health string

const (
	HealthHealthy       Health = "healthy"
	HealthNeedRB2       Health = "need_rb2"
	HealthNeedWR2       Health = "need_wr2"
	HealthNeedFlex      Health = "need_flex"
	HealthMultipleHoles Health = "multiple_holes"
)

// Horizon says whether the roster should chase immediate help or stash
// long-term upside.
type Horizon string

const (
	HorizonImmediate Horizon = "immediate"
	HorizonLongterm  Horizon = "longterm"
)

// Analysis is the stateless classification of one roster snapshot.
type Analysis struct {
	OverallHealth   Health            `json:"overall_health"`
	PositionalNeeds []player.Position `json:"positional_needs"`
	Horizon         Horizon           `json:"immediate_vs_longterm"`
}

// Depth thresholds below which a position counts as a need.
const (
	minRunningBacks  = 3
	minWideReceivers = 4
	minTightEnds     = 2
)

// Analyze classifies a roster from its per-position player counts. RB depth
// outranks WR depth, which outranks TE, when picking the headline need.
func Analyze(counts map[player.Position]int) Analysis {
	needs := make([]player.Position, 0, 3)
	if counts[player.PositionRunningBack] < minRunningBacks {
		needs = append(needs, player.PositionRunningBack)
	}
	if counts[player.PositionWideReceiver] < minWideReceivers {
		needs = append(needs, player.PositionWideReceiver)
	}
	if counts[player.PositionTightEnd] < minTightEnds {
		needs = append(needs, player.PositionTightEnd)
	}

	health := HealthHealthy
	switch {
	case len(needs) >= 3:
		health = HealthMultipleHoles
	case counts[player.PositionRunningBack] < minRunningBacks:
		health = HealthNeedRB2
	case counts[player.PositionWideReceiver] < minWideReceivers:
		health = HealthNeedWR2
	case counts[player.PositionTightEnd] < minTightEnds:
		health = HealthNeedFlex
	}

	horizon := HorizonImmediate
	if health == HealthHealthy {
		horizon = HorizonLongterm
	}

	return Analysis{
		OverallHealth:   health,
		PositionalNeeds: needs,
		Horizon:         horizon,
	}
}
