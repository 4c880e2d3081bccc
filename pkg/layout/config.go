package layout

import (
	"github.com/draftwire/crossref/pkg/validation"
)

// Config holds the simulation tunables. The defaults are hand-tuned for
// graphs in the tens-of-nodes range and are deliberately exposed rather
// than hard-coded; they do not necessarily generalize to much larger
// graphs.
type Config struct {
	Width  float64 // Canvas width
	Height float64 // Canvas height

	MaxIterations int     // Simulation step budget
	MinDistance   float64 // Repulsion cutoff scale; nodes interact within 3x this
	Margin        float64 // Padding from canvas edges

	Repulsion     float64 // Inverse-square repulsion constant
	Attraction    float64 // Spring constant, scaled by link strength
	Gravity       float64 // Constant pull toward canvas center
	Damping       float64 // Velocity damping per step
	VelocityDecay float64 // Additional per-step velocity decay

	// Seed drives initial placement jitter. Zero means a time-derived
	// seed; set explicitly for reproducible layouts.
	Seed int64
}

// DefaultConfig returns the standard tuning for the given canvas.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:         width,
		Height:        height,
		MaxIterations: 200,
		MinDistance:   50,
		Margin:        50,
		Repulsion:     5000,
		Attraction:    0.02,
		Gravity:       0.05,
		Damping:       0.9,
		VelocityDecay: 0.95,
	}
}

// Validate rejects configurations the simulator cannot run with.
func (c Config) Validate() error {
	return validation.NewConfigValidator("layout.Config").
		PositiveFloat("Width", c.Width).
		PositiveFloat("Height", c.Height).
		PositiveInt("MaxIterations", c.MaxIterations).
		PositiveFloat("MinDistance", c.MinDistance).
		NonNegativeFloat("Margin", c.Margin).
		PositiveFloat("Repulsion", c.Repulsion).
		PositiveFloat("Attraction", c.Attraction).
		NonNegativeFloat("Gravity", c.Gravity).
		FloatRange("Damping", c.Damping, 0, 1).
		FloatRange("VelocityDecay", c.VelocityDecay, 0, 1).
		Err()
}
