package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

var (
	ErrDeckNotFound  = errors.New("deck not found")
	ErrDuplicateDeck = errors.New("duplicate deck name")
)

// ItemRepository provides access to the quiz decks.
// Decks are loaded once from a JSON file and kept in memory.
type ItemRepository struct {
	decks []entities.Deck
	index map[string]int
}

// NewItemRepository loads and validates the decks stored at path.
func NewItemRepository(path string) (*ItemRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}

	decks, err := parseDecks(data)
	if err != nil {
		return nil, err
	}

	return newItemRepository(decks)
}

func newItemRepository(decks []entities.Deck) (*ItemRepository, error) {
	if len(decks) == 0 {
		return nil, entities.ErrNoItems
	}

	index := make(map[string]int, len(decks))
	for i, d := range decks {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, ok := index[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDeck, d.Name)
		}
		index[d.Name] = i
	}

	return &ItemRepository{decks: decks, index: index}, nil
}

// GetDeck retrieves a deck by its name.
func (r *ItemRepository) GetDeck(_ context.Context, name string) (entities.Deck, error) {
	i, ok := r.index[name]
	if !ok {
		return entities.Deck{}, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
	}
	return r.decks[i], nil
}

// GetAll retrieves all decks in file order.
func (r *ItemRepository) GetAll(_ context.Context) ([]entities.Deck, error) {
	out := make([]entities.Deck, len(r.decks))
	copy(out, r.decks)
	return out, nil
}

func parseDecks(data []byte) ([]entities.Deck, error) {
	var wrapper struct {
		Decks []entities.Deck `json:"decks"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items JSON: %w", err)
	}
	return wrapper.Decks, nil
}
