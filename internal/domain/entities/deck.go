package entities

import (
	"errors"
	"fmt"
)

var ErrNoDeckName = errors.New("deck has no name")

// Deck is a named, fixed list of items played as one session.
type Deck struct {
	Name  string `json:"name"`  // identifier used in commands and URLs
	Title string `json:"title"` // human readable title
	Items []Item `json:"items"`
}

// Validate checks the deck name and every item.
func (d Deck) Validate() error {
	if d.Name == "" {
		return ErrNoDeckName
	}
	if err := ValidateItems(d.Items); err != nil {
		return fmt.Errorf("deck %q: %w", d.Name, err)
	}
	return nil
}

// DisplayTitle returns the title, falling back to the name.
func (d Deck) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}
