package league

import "fmt"

// League is one fantasy league hosted on the data provider.
type League struct {
	ID           string
	Name         string
	Season       string
	Sport        string
	TotalRosters int
	// FAABBudget is the per-manager season waiver budget configured for the
	// league, in FAAB dollars.
	FAABBudget int
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}
	if l.TotalRosters <= 0 {
		return fmt.Errorf("league total rosters must be greater than zero")
	}

	return nil
}

// User is a provider account that owns rosters across leagues.
type User struct {
	ID          string
	Username    string
	DisplayName string
	Avatar      string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}

	return nil
}
