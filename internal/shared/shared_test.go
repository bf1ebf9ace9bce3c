package shared

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRandomString(t *testing.T) {
	tc := []struct {
		name   string
		length int
	}{
		{name: "zero length", length: 0},
		{name: "single character", length: 1},
		{name: "state length", length: StateLength},
		{name: "long token", length: 257},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RandomString(tt.length)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != tt.length {
				t.Errorf("expected length %d, got %d", tt.length, len(got))
			}
			for _, r := range got {
				if !strings.ContainsRune(Alphabet, r) {
					t.Errorf("unexpected character %q in %q", r, got)
				}
			}
		})
	}

	t.Run("negative length", func(t *testing.T) {
		got, err := RandomString(-3)
		if err != nil || got != "" {
			t.Errorf("expected empty string, got %q (%v)", got, err)
		}
	})

	t.Run("tokens differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			s, err := GenerateState()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if seen[s] {
				t.Fatalf("duplicate state generated: %s", s)
			}
			seen[s] = true
		}
	})

	t.Run("covers alphabet", func(t *testing.T) {
		s, err := RandomString(20000)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, r := range Alphabet {
			if !strings.ContainsRune(s, r) {
				t.Errorf("character %q never generated", r)
			}
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	t.Run("Known Levels", func(t *testing.T) {
		for name, want := range map[string]log.Level{
			"debug": log.DebugLevel,
			"INFO":  log.InfoLevel,
			"warn":  log.WarnLevel,
			"error": log.ErrorLevel,
		} {
			got, err := ParseLogLevel(name)
			if err != nil {
				t.Errorf("expected no error for %s, got %v", name, err)
			}
			if got != want {
				t.Errorf("expected %v for %s, got %v", want, name, got)
			}
		}
	})

	t.Run("Unknown Level", func(t *testing.T) {
		if _, err := ParseLogLevel("loud"); err == nil {
			t.Error("expected error for unknown level")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid length 36, got %d", len(a))
	}
}
