package roster

import "fmt"

// Roster is one manager's player set within a single league snapshot.
// A player id appears on at most one roster per league at a time.
type Roster struct {
	ID       int
	LeagueID string
	OwnerID  string
	Players  []string
}

func (r Roster) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("roster id must be greater than zero")
	}
	if r.LeagueID == "" {
		return fmt.Errorf("roster league id is required")
	}

	return nil
}

// Contains reports whether the roster holds the given player id.
func (r Roster) Contains(playerID string) bool {
	for _, id := range r.Players {
		if id == playerID {
			return true
		}
	}
	return false
}
