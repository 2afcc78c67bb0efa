package member

import "fmt"

// Member is a club member record owned by the member-management subsystem.
// Lineups reference members by id and never create or delete them.
type Member struct {
	ID                 string
	Name               string
	Surname            string
	RegistrationNumber string
	CategoryID         string
	Sex                string
}

func (m Member) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("member id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("member name is required")
	}
	if m.Surname == "" {
		return fmt.Errorf("member surname is required")
	}

	return nil
}
