package core

// World holds the surfaces and lights of a scene. It is built once and only
// read while rendering, so one World may be traced from several goroutines.
type World struct {
	Surfaces []Surface
	Lights   []Light
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Surfaces: make([]Surface, 0),
		Lights:   make([]Light, 0),
	}
}

// AddSurface appends surfaces in scan order
func (w *World) AddSurface(surfaces ...Surface) {
	w.Surfaces = append(w.Surfaces, surfaces...)
}

// AddLight appends lights
func (w *World) AddLight(lights ...Light) {
	w.Lights = append(w.Lights, lights...)
}

// Lit reports whether any light was supplied
func (w *World) Lit() bool {
	return len(w.Lights) > 0
}

// Nearest scans the surfaces linearly and returns the closest hit. A later
// surface only replaces the current best when strictly closer, so the first
// surface wins exact ties.
func (w *World) Nearest(ray Ray) (Surface, Intersection, bool) {
	var best Surface
	var bestHit Intersection
	closestSoFar := Infinity

	for _, surface := range w.Surfaces {
		hit, ok := surface.SurfaceHit(ray, closestSoFar)
		if ok && (best == nil || hit.Distance < closestSoFar) {
			best = surface
			bestHit = hit
			closestSoFar = hit.Distance
		}
	}

	return best, bestHit, best != nil
}

// Trace returns the color seen along ray, shading the nearest hit with the
// given bounce budget. It reports false when nothing was hit.
func (w *World) Trace(ray Ray, bounces int) (Color, bool) {
	surface, hit, ok := w.Nearest(ray)
	if !ok {
		return Black, false
	}

	info, ok := surface.Material().Shade(ray, hit.Point, surface.Normal(hit.Point), w, bounces)
	if !ok {
		return Black, false
	}
	return info.Color(), true
}

// InShadow reports whether any surface blocks ray before lightDistance
func (w *World) InShadow(ray Ray, lightDistance float64) bool {
	for _, surface := range w.Surfaces {
		if surface.ShadowHit(ray, lightDistance) {
			return true
		}
	}
	return false
}
