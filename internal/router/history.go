// Package router tracks console navigation.
package router

import (
	"sync"

	"github.com/rs/zerolog"
)

const maxEntries = 100

// History records navigations. It satisfies ports.Navigator.
type History struct {
	mu      sync.Mutex
	entries []string
	log     zerolog.Logger
}

func NewHistory(start string, log zerolog.Logger) *History {
	if start == "" {
		start = "/"
	}
	return &History{entries: []string{start}, log: log}
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	from := h.entries[len(h.entries)-1]
	h.entries = append(h.entries, path)
	if len(h.entries) > maxEntries {
		h.entries = h.entries[len(h.entries)-maxEntries:]
	}
	h.log.Info().Str("from", from).Str("to", path).Msg("navigate")
}

// Current is the last navigated location.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Back drops the current location and returns the previous one. The first
// entry is never dropped.
func (h *History) Back() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	return h.entries[len(h.entries)-1]
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
