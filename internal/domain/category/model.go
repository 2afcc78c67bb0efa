package category

import "fmt"

// Category is a competitive division of the club (age/gender bracket).
// Categories are never hard-deleted while referenced; IsActive is cleared
// instead.
type Category struct {
	ID          string
	Name        string
	Description string
	Slug        string
	AgeGroup    string
	Gender      string
	IsActive    bool
	SortOrder   int
}

func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if c.Slug == "" {
		return fmt.Errorf("category slug is required")
	}

	return nil
}
