package markers

import (
	"sync"

	"github.com/google/uuid"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// InMemorySurface is the server-side stand-in for the browser map: it
// tracks which markers are attached and holds the single content panel.
// The API layer reads it to answer "what is on the map right now".
type InMemorySurface struct {
	mu      sync.Mutex
	markers map[uuid.UUID]types.Marker
	panel   *types.ContentPanel
}

func NewInMemorySurface() *InMemorySurface {
	return &InMemorySurface{markers: make(map[uuid.UUID]types.Marker)}
}

func (s *InMemorySurface) SetMarker(m types.Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[m.ID] = m
}

func (s *InMemorySurface) RemoveMarker(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, id)
}

// OnMap returns the markers currently attached to the surface.
func (s *InMemorySurface) OnMap() []types.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Marker, 0, len(s.markers))
	for _, m := range s.markers {
		out = append(out, m)
	}
	return out
}

// OpenPanel anchors the content panel; any previously open panel is
// replaced.
func (s *InMemorySurface) OpenPanel(panel types.ContentPanel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = &panel
}

func (s *InMemorySurface) ClosePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = nil
}

// Panel returns the currently open content panel, or nil.
func (s *InMemorySurface) Panel() *types.ContentPanel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel == nil {
		return nil
	}
	p := *s.panel
	return &p
}
