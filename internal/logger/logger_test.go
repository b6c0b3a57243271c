package logger

import (
	"testing"

	"github.com/aliskhannn/quiz-engine/internal/config"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"local", "production", "test"} {
		t.Run(env, func(t *testing.T) {
			l, err := New(&config.Config{Env: env})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if l == nil {
				t.Fatal("Expected a logger")
			}
			l.Debug("logger ready")
		})
	}
}
