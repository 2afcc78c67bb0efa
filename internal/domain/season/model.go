package season

import (
	"fmt"
	"time"
)

// Season is a bounded competitive period. A closed season rejects all lineup
// mutations; the lineup service enforces this, not just the UI.
type Season struct {
	ID       string
	Name     string
	StartsOn time.Time
	EndsOn   time.Time
	IsActive bool
	IsClosed bool
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if !s.EndsOn.IsZero() && !s.StartsOn.IsZero() && s.EndsOn.Before(s.StartsOn) {
		return fmt.Errorf("season end date precedes start date")
	}

	return nil
}
