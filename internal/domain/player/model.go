package player

import "fmt"

// Position represents NFL position categories used by the waiver pipeline.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "DST"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// Player is an immutable snapshot of an NFL athlete from the provider.
type Player struct {
	ID       string
	Name     string
	Position Position
	Team     string
	Active   bool
}

// IsFreeAgent reports whether the player has no NFL team. Teamless players
// are excluded from pickup candidates regardless of roster status.
func (p Player) IsFreeAgent() bool {
	return p.Team == ""
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
