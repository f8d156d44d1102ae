package pick

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_picker.go github.com/imposterparty/imposterd/internal/pick Picker

// Picker provides random selection for role assignment
type Picker interface {
	// Pick returns a uniformly random index in [0, n)
	Pick(n int) int
}

// Config for the random picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// RandomPicker implements Picker using math/rand
type RandomPicker struct {
	random *rand.Rand
}

// New creates a new random picker
func New(cfg *Config) *RandomPicker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &RandomPicker{
		random: rand.New(source),
	}
}

// Pick returns a uniformly random index in [0, n)
func (p *RandomPicker) Pick(n int) int {
	if n < 1 {
		return 0
	}
	return p.random.Intn(n)
}
