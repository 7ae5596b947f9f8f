package router

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestHistory(t *testing.T) {
	h := NewHistory("", zerolog.Nop())
	if h.Current() != "/" {
		t.Fatalf("expected / start, got %q", h.Current())
	}

	h.Navigate("/login")
	h.Navigate("/")
	if h.Current() != "/" || len(h.Entries()) != 3 {
		t.Fatalf("unexpected history %v", h.Entries())
	}

	if got := h.Back(); got != "/login" {
		t.Fatalf("expected /login, got %q", got)
	}
	h.Back()
	if got := h.Back(); got != "/" {
		t.Fatalf("first entry must survive, got %q", got)
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory("/", zerolog.Nop())
	for range maxEntries + 10 {
		h.Navigate("/patients")
	}
	if n := len(h.Entries()); n != maxEntries {
		t.Fatalf("expected %d entries, got %d", maxEntries, n)
	}
}
