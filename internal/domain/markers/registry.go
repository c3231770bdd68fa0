package markers

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// Surface is the external map rendering collaborator. It accepts marker
// attach/detach; the content panel primitive lives on the selection
// side.
type Surface interface {
	SetMarker(m types.Marker)
	RemoveMarker(id uuid.UUID)
}

// Registry owns every marker plus the borough filter state. It is the
// single owner of all mutable view state; handlers run concurrently so
// access is serialized with a mutex. The marker set itself is fixed
// after Build — only visibility flags change.
type Registry struct {
	mu      sync.Mutex
	logger  *slog.Logger
	surface Surface

	markers []*types.Marker
	filters []types.Filter
	active  string

	subscribers []func()
}

// NewRegistry creates an empty registry with the fixed filter list:
// "All" (active) followed by the five boroughs.
func NewRegistry(surface Surface, logger *slog.Logger) *Registry {
	filters := []types.Filter{{Name: types.FilterAll, Active: true}}
	for _, b := range types.Boroughs() {
		filters = append(filters, types.Filter{Name: string(b)})
	}
	return &Registry{
		logger:  logger,
		surface: surface,
		filters: filters,
		active:  types.FilterAll,
	}
}

// Subscribe registers a callback invoked after every visibility or
// filter change.
func (r *Registry) Subscribe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

func (r *Registry) notifyLocked() {
	for _, fn := range r.subscribers {
		fn()
	}
}

// Build derives one marker per location. All markers start visible.
func (r *Registry) Build(locations []types.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.markers = make([]*types.Marker, 0, len(locations))
	for _, loc := range locations {
		r.markers = append(r.markers, &types.Marker{
			ID:                 uuid.New(),
			Title:              loc.Name,
			Borough:            loc.Borough,
			Latitude:           loc.Latitude,
			Longitude:          loc.Longitude,
			PlaceID:            loc.PlaceID,
			OpenYearRound:      loc.OpenYearRound,
			HandicapAccessible: loc.HandicapAccessible,
			Icon:               iconCategoryFor(loc.Name),
			Visible:            true,
		})
	}
	r.logger.Info("marker registry built", slog.Int("markers", len(r.markers)))
}

// Render attaches markers matching the active filter to the surface and
// detaches the rest, updating each visibility flag as it goes. The
// filter pass and the render pass share this one predicate.
func (r *Registry) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderLocked()
	r.notifyLocked()
}

func (r *Registry) renderLocked() {
	for _, m := range r.markers {
		if r.matchesFilterLocked(m) {
			m.Visible = true
			r.surface.SetMarker(*m)
		} else {
			m.Visible = false
			r.surface.RemoveMarker(m.ID)
		}
	}
}

func (r *Registry) matchesFilterLocked(m *types.Marker) bool {
	return r.active == types.FilterAll || string(m.Borough) == r.active
}

// Clear detaches every marker from the surface regardless of its
// visibility flag. Full-redraw precursor.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *Registry) clearLocked() {
	for _, m := range r.markers {
		r.surface.RemoveMarker(m.ID)
	}
}

// ApplyFilter activates the named filter, clears the surface and
// re-renders. Exactly one filter is active at any time.
func (r *Registry) ApplyFilter(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	known := false
	for i := range r.filters {
		if r.filters[i].Name == name {
			known = true
			break
		}
	}
	if !known {
		return types.ErrBadRequest
	}

	r.active = name
	for i := range r.filters {
		r.filters[i].Active = r.filters[i].Name == name
	}

	r.clearLocked()
	r.renderLocked()
	r.notifyLocked()

	r.logger.Debug("filter applied", slog.String("filter", name))
	return nil
}

// SearchAuto recomputes every marker's visibility from scratch: visible
// iff the title contains text (case-insensitive) and the marker matches
// the active filter. Runs on every keystroke and is idempotent; no
// incremental diffing.
func (r *Registry) SearchAuto(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.markers {
		if titleMatches(m.Title, text) && r.matchesFilterLocked(m) {
			m.Visible = true
			r.surface.SetMarker(*m)
		} else {
			m.Visible = false
			r.surface.RemoveMarker(m.ID)
		}
	}
	r.notifyLocked()
}

// SearchLocation narrows only among markers already visible, applying
// just the text predicate. The stricter, filter-respecting manual
// variant; it never widens the visible set.
func (r *Registry) SearchLocation(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.markers {
		if !m.Visible {
			continue
		}
		if !titleMatches(m.Title, text) {
			m.Visible = false
			r.surface.RemoveMarker(m.ID)
		}
	}
	r.notifyLocked()
}

// Markers returns a snapshot of every marker in build order.
func (r *Registry) Markers() []types.Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, *m)
	}
	return out
}

// VisibleMarkers returns a snapshot of the currently visible markers.
func (r *Registry) VisibleMarkers() []types.Marker {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []types.Marker
	for _, m := range r.markers {
		if m.Visible {
			out = append(out, *m)
		}
	}
	return out
}

// GetMarker looks a marker up by its registry identifier.
func (r *Registry) GetMarker(id uuid.UUID) (types.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.markers {
		if m.ID == id {
			return *m, nil
		}
	}
	return types.Marker{}, types.ErrNotFound
}

// Filters returns the filter list with active flags.
func (r *Registry) Filters() []types.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Filter, len(r.filters))
	copy(out, r.filters)
	return out
}

// ActiveFilter returns the name of the single active filter.
func (r *Registry) ActiveFilter() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
