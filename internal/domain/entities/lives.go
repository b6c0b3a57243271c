package entities

import (
	"fmt"
	"strings"
)

// LivesMode defines how a session picks its initial life count.
type LivesMode string

const (
	LivesPreserve LivesMode = "preserve" // restore the persisted count
	LivesReset    LivesMode = "reset"    // always start with MaxLives
)

// ParseLivesMode parses a configuration value, empty means LivesPreserve.
func ParseLivesMode(s string) (LivesMode, error) {
	switch LivesMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LivesPreserve:
		return LivesPreserve, nil
	case LivesReset:
		return LivesReset, nil
	default:
		return "", fmt.Errorf("unknown lives mode %q", s)
	}
}

// RestoreLives returns the life count a session starts with.
// A persisted count outside [1, MaxLives] belongs to an exhausted or corrupted
// session and is not restored.
func RestoreLives(mode LivesMode, persisted int, ok bool) int {
	if mode == LivesReset || !ok {
		return MaxLives
	}
	if persisted < 1 || persisted > MaxLives {
		return MaxLives
	}
	return persisted
}
