package storage

import (
	"context"
	"testing"
)

func TestLivesStorage(t *testing.T) {
	ctx := context.Background()
	s := NewLivesStorage()

	if _, ok, err := s.GetLives(ctx, "p1"); ok || err != nil {
		t.Fatalf("Expected no value, got ok=%v err=%v", ok, err)
	}

	if err := s.SaveLives(ctx, "p1", 1); err != nil {
		t.Fatalf("SaveLives: %v", err)
	}
	if err := s.SaveLives(ctx, "p2", 0); err != nil {
		t.Fatalf("SaveLives: %v", err)
	}

	lives, ok, _ := s.GetLives(ctx, "p1")
	if !ok || lives != 1 {
		t.Errorf("Expected 1 life for p1, got %d (ok=%v)", lives, ok)
	}
	lives, ok, _ = s.GetLives(ctx, "p2")
	if !ok || lives != 0 {
		t.Errorf("Expected 0 lives for p2, got %d (ok=%v)", lives, ok)
	}

	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.GetLives(ctx, "p1"); ok {
		t.Error("Expected p1 to be deleted")
	}
}
