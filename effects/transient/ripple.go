package transient

import (
	"context"
	"time"
)

// Point is a pointer position in page coordinates.
type Point struct {
	X, Y float64
}

// Rect is the bounding box of the activated surface in page coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Geometry places a circular ripple relative to the surface's top-left corner.
type Geometry struct {
	X, Y, Size float64
}

// ComputeGeometry centers a ripple of diameter max(width, height) on the
// pointer's offset within the surface, so it covers the whole surface.
func ComputeGeometry(pointer Point, surface Rect) Geometry {
	size := max(surface.Width, surface.Height)
	return Geometry{
		X:    pointer.X - surface.Left - size/2,
		Y:    pointer.Y - surface.Top - size/2,
		Size: size,
	}
}

// Ripples tracks the ripple marks of one surface. Any number may coexist.
type Ripples struct {
	*Queue[Geometry]
}

func NewRipples(ctx context.Context) *Ripples {
	return NewRipplesWithDuration(ctx, RippleDuration)
}

// NewRipplesWithDuration is NewRipples with a configured lifetime.
func NewRipplesWithDuration(ctx context.Context, d time.Duration) *Ripples {
	return &Ripples{New[Geometry](ctx, Config{Kind: KindRipple, TTL: d})}
}

// Trigger adds a ripple for an activation at pointer and returns its id.
func (r *Ripples) Trigger(pointer Point, surface Rect) string {
	return r.Add(ComputeGeometry(pointer, surface))
}
