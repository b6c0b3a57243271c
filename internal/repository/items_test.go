package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

const decksJSON = `{
  "decks": [
    {
      "name": "logos",
      "title": "Guess the logo",
      "items": [
        {
          "prompt_image": "logos/apple_blur.png",
          "reveal_image": "logos/apple.png",
          "options": ["Apple", "Nike", "Puma"],
          "correct": "Apple"
        }
      ]
    },
    {
      "name": "trivia",
      "items": [
        {"prompt_text": "Capital of Peru?", "options": ["Lima", "Quito"], "correct": "Lima"},
        {"prompt_text": "2 + 2?", "options": ["3", "4"], "correct": "4"}
      ]
    }
  ]
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write items file: %v", err)
	}
	return path
}

func TestNewItemRepository(t *testing.T) {
	repo, err := NewItemRepository(writeFile(t, decksJSON))
	if err != nil {
		t.Fatalf("NewItemRepository: %v", err)
	}
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 || all[0].Name != "logos" || all[1].Name != "trivia" {
		t.Errorf("Unexpected decks: %+v", all)
	}

	deck, err := repo.GetDeck(ctx, "trivia")
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if len(deck.Items) != 2 || deck.Items[1].Correct != "4" {
		t.Errorf("Unexpected deck: %+v", deck)
	}
	if deck.DisplayTitle() != "trivia" {
		t.Errorf("Expected title to fall back to name, got %q", deck.DisplayTitle())
	}

	logos, _ := repo.GetDeck(ctx, "logos")
	if !logos.Items[0].HasReveal() {
		t.Error("Expected reveal image to be loaded")
	}

	if _, err := repo.GetDeck(ctx, "sneakers"); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("Expected ErrDeckNotFound, got %v", err)
	}
}

func TestNewItemRepositoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "no decks",
			content: `{"decks": []}`,
			want:    entities.ErrNoItems,
		},
		{
			name:    "empty deck",
			content: `{"decks": [{"name": "empty", "items": []}]}`,
			want:    entities.ErrNoItems,
		},
		{
			name:    "malformed item",
			content: `{"decks": [{"name": "bad", "items": [{"prompt_text": "q", "options": ["a"], "correct": "b"}]}]}`,
			want:    entities.ErrCorrectNotInOption,
		},
		{
			name: "duplicate deck",
			content: `{"decks": [
				{"name": "x", "items": [{"prompt_text": "q", "options": ["a"], "correct": "a"}]},
				{"name": "x", "items": [{"prompt_text": "q", "options": ["a"], "correct": "a"}]}
			]}`,
			want: ErrDuplicateDeck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItemRepository(writeFile(t, tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewItemRepositoryInvalidFile(t *testing.T) {
	if _, err := NewItemRepository(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for a missing file")
	}
	if _, err := NewItemRepository(writeFile(t, "{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestBundledDecksLoad(t *testing.T) {
	repo, err := NewItemRepository(filepath.Join("..", "..", "assets", "data", "items.json"))
	if err != nil {
		t.Fatalf("Failed to load bundled decks: %v", err)
	}

	decks, _ := repo.GetAll(context.Background())
	for _, d := range decks {
		for _, it := range d.Items {
			for _, img := range []string{it.PromptImage, it.RevealImage} {
				if img == "" {
					continue
				}
				if _, err := os.Stat(filepath.Join("..", "..", "assets", img)); err != nil {
					t.Errorf("deck %s: missing image %s", d.Name, img)
				}
			}
		}
	}
}
