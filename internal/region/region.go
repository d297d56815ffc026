// Package region holds the per-session bounding region used to filter
// sighting queries.
package region

import (
	"math"
	"time"

	"github.com/patrickmn/go-cache"
)

// BoundingBox is an axis-aligned lat/lng rectangle, inclusive on all bounds.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether the point is inside the box, bounds inclusive.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Corners carries the four map corners as submitted by the client.
// Corner labels are not trusted: a rotated or mirrored map submits them
// swapped, so normalization takes min/max over all four pairs.
type Corners struct {
	SWLat float64 `json:"swLat"`
	SWLng float64 `json:"swLng"`
	NWLat float64 `json:"nwLat"`
	NWLng float64 `json:"nwLng"`
	NELat float64 `json:"neLat"`
	NELng float64 `json:"neLng"`
	SELat float64 `json:"seLat"`
	SELng float64 `json:"seLng"`
}

// Normalize reduces the four corners to their axis-aligned bounding box.
func (c Corners) Normalize() BoundingBox {
	lats := []float64{c.SWLat, c.NWLat, c.NELat, c.SELat}
	lngs := []float64{c.SWLng, c.NWLng, c.NELng, c.SELng}

	box := BoundingBox{
		MinLat: math.Inf(1), MinLng: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLng: math.Inf(-1),
	}
	for i := range lats {
		box.MinLat = math.Min(box.MinLat, lats[i])
		box.MaxLat = math.Max(box.MaxLat, lats[i])
		box.MinLng = math.Min(box.MinLng, lngs[i])
		box.MaxLng = math.Max(box.MaxLng, lngs[i])
	}
	return box
}

// Selector stores the last submitted bounding region per session.
// Entries expire after the configured TTL of inactivity.
type Selector struct {
	store *cache.Cache
}

// NewSelector creates a Selector whose entries live for ttl since their last
// write. Last write wins, no history is kept.
func NewSelector(ttl time.Duration) *Selector {
	return &Selector{
		store: cache.New(ttl, 10*time.Minute),
	}
}

// Set normalizes the submitted corners and stores the resulting box for the
// session, replacing any previous region.
func (s *Selector) Set(sessionID string, corners Corners) BoundingBox {
	box := corners.Normalize()
	s.store.Set(sessionID, box, cache.DefaultExpiration)
	return box
}

// Get returns the stored box for the session, or false if none was set yet.
func (s *Selector) Get(sessionID string) (BoundingBox, bool) {
	v, found := s.store.Get(sessionID)
	if !found {
		return BoundingBox{}, false
	}
	return v.(BoundingBox), true
}
