// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoItems            = errors.New("no items")
	ErrNoOptions          = errors.New("item has no options")
	ErrNoCorrectAnswer    = errors.New("item has no correct answer")
	ErrCorrectNotInOption = errors.New("correct answer is not among the options")
	ErrNoPrompt           = errors.New("item has neither prompt image nor prompt text")
	ErrSessionComplete    = errors.New("session complete")
)

// Item represents one question of a quiz: a prompt (image, text or both),
// the options to choose from and the single correct option.
// An item is immutable once loaded.
type Item struct {
	PromptImage string   `json:"prompt_image,omitempty"` // image shown as the question (optional)
	PromptText  string   `json:"prompt_text,omitempty"`  // text shown as the question (optional)
	RevealImage string   `json:"reveal_image,omitempty"` // image crossfaded in after a correct answer (optional)
	Options     []string `json:"options"`                // options in source order
	Correct     string   `json:"correct"`                // value of the correct option
}

// Validate reports whether the item can be played.
func (it Item) Validate() error {
	if len(it.Options) == 0 {
		return ErrNoOptions
	}
	if it.Correct == "" {
		return ErrNoCorrectAnswer
	}
	if !slices.Contains(it.Options, it.Correct) {
		return fmt.Errorf("%w: %q", ErrCorrectNotInOption, it.Correct)
	}
	if it.PromptImage == "" && it.PromptText == "" {
		return ErrNoPrompt
	}
	return nil
}

// HasReveal reports whether a correct answer is followed by a reveal image transition.
func (it Item) HasReveal() bool {
	return it.RevealImage != ""
}

// IsCorrect compares the selected option with the correct one.
// Matching is exact: options come from the item itself, not from free text input.
func (it Item) IsCorrect(selected string) bool {
	return selected == it.Correct
}

// ValidateItems checks the whole item list of a session.
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}
