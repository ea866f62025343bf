package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID    string        // Unique ID attached to the render's log lines
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit a surface
	MissPixels  int           // Pixels left black because nothing was hit
	Bounces     int           // Reflection budget used for every pixel
	Elapsed     time.Duration // Wall time of the render
}

// Coverage returns the fraction of pixels that hit a surface
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

// String summarizes the render for logs and the X-Render-Stats header
func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels (%d hit, %d miss, %.1f%% coverage) in %v",
		s.TotalPixels, s.HitPixels, s.MissPixels, 100*s.Coverage(), s.Elapsed.Round(time.Millisecond))
}
