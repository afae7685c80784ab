package neural

import (
	"math/rand"
	"testing"
)

func TestNewBrain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b, err := NewBrain(rng, testShape)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	if b.Fitness != 0 || b.Generation != 0 {
		t.Errorf("fresh brain fitness=%v generation=%d, want zeros", b.Fitness, b.Generation)
	}

	out, err := b.Think(make([]float64, 8))
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if len(out) != 3 {
		t.Errorf("got %d outputs, want 3", len(out))
	}
}

func TestRewardIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b, _ := NewBrain(rng, testShape)

	b.Reward(0.5)
	b.Reward(-10)
	b.Reward(0.25)
	if b.Fitness != 0.75 {
		t.Errorf("fitness = %v, want 0.75", b.Fitness)
	}
}

func TestInherit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parent, _ := NewBrain(rng, testShape)
	parent.Fitness = 12
	parent.Generation = 3

	child := parent.Inherit()
	if !child.Network.Equal(parent.Network) {
		t.Error("inherited network differs from parent")
	}
	if child.Network == parent.Network {
		t.Error("inherited network is shared, want exclusive ownership")
	}
	if child.Fitness != 0 {
		t.Errorf("child fitness = %v, want 0", child.Fitness)
	}
	if child.Generation != 3 {
		t.Errorf("child generation = %d, want 3", child.Generation)
	}
}

func TestEvolve(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parent, _ := NewBrain(rng, testShape)
	parent.Generation = 1
	snapshot := parent.Network.Clone()

	child, err := parent.Evolve(rng, 0.5)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if child.Generation != 2 {
		t.Errorf("generation = %d, want 2", child.Generation)
	}
	if !parent.Network.Equal(snapshot) {
		t.Error("Evolve modified the parent network")
	}
	if _, err := parent.Evolve(rng, 2); err == nil {
		t.Error("expected error for rate 2")
	}
}
