package neural

import "math/rand"

// Brain owns exactly one network plus fitness/generation bookkeeping.
type Brain struct {
	Network    *FFNN
	Fitness    float64 // survival reward, never decreases while the unit lives
	Generation int     // advanced only by Evolve
}

// NewBrain creates a brain with a freshly initialized network.
func NewBrain(rng *rand.Rand, shape []int) (*Brain, error) {
	nn, err := NewFFNN(rng, shape)
	if err != nil {
		return nil, err
	}
	return &Brain{Network: nn}, nil
}

// Think runs inference on the owned network.
func (b *Brain) Think(inputs []float64) ([]float64, error) {
	return b.Network.Infer(inputs)
}

// Reward adds a non-negative amount to fitness.
func (b *Brain) Reward(amount float64) {
	if amount > 0 {
		b.Fitness += amount
	}
}

// Inherit returns an offspring brain: an independent copy of the network with
// the same generation and zeroed fitness.
func (b *Brain) Inherit() *Brain {
	return &Brain{
		Network:    b.Network.Clone(),
		Generation: b.Generation,
	}
}

// Evolve returns a mutated offspring for an evolutionary driver: the network is
// mutated with the given rate, generation advances by one, fitness starts at zero.
func (b *Brain) Evolve(rng *rand.Rand, rate float64) (*Brain, error) {
	nn, err := b.Network.Mutate(rng, rate)
	if err != nil {
		return nil, err
	}
	return &Brain{Network: nn, Generation: b.Generation + 1}, nil
}
