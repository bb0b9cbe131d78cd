package dice

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/yachtie/internal/dice Roller

import (
	"math/rand"
	"sync"
	"time"
)

// Roller provides dice rolling functionality
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &roller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *roller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// RollHand rolls n six-sided dice
func RollHand(r Roller, n int) []int {
	hand := make([]int, n)
	for i := range hand {
		hand[i] = r.Roll(6)
	}
	return hand
}

// Shuffle permutes items in place with a Fisher-Yates shuffle.
// Rolling an (i+1)-sided die picks the swap index uniformly from [0, i].
func Shuffle[T any](r Roller, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Roll(i+1) - 1
		items[i], items[j] = items[j], items[i]
	}
}
