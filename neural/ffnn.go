// Package neural provides feedforward neural network brains for units.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Initial weights and biases are drawn uniformly from [-InitRange, InitRange].
const InitRange = 1.0

// A mutated parameter moves by a uniform delta in [-MutationDelta, MutationDelta].
const MutationDelta = 0.2

var (
	// ErrDimensionMismatch reports an input vector whose width disagrees with the topology.
	ErrDimensionMismatch = errors.New("neural: input dimension mismatch")
	// ErrInvalidShape reports a topology with fewer than two layers or a non-positive width.
	ErrInvalidShape = errors.New("neural: invalid network shape")
	// ErrInvalidRate reports a mutation rate outside [0, 1].
	ErrInvalidRate = errors.New("neural: mutation rate outside [0,1]")
)

// Layer is one fully connected layer: Weights is neurons x inputs.
type Layer struct {
	Weights *mat.Dense
	Biases  *mat.VecDense
}

// FFNN is a fixed-topology feedforward network with a single shared activation.
type FFNN struct {
	Layers     []Layer
	Activation func(float64) float64
}

// NewFFNN creates a randomly initialized network from an ordered list of layer
// widths: shape[0] is the input width, the last entry is the output width.
func NewFFNN(rng *rand.Rand, shape []int) (*FFNN, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}

	nn := &FFNN{
		Layers:     make([]Layer, len(shape)-1),
		Activation: math.Tanh,
	}
	for l := range nn.Layers {
		inputs, neurons := shape[l], shape[l+1]
		w := make([]float64, neurons*inputs)
		b := make([]float64, neurons)
		for j := 0; j < neurons; j++ {
			for k := 0; k < inputs; k++ {
				w[j*inputs+k] = uniform(rng, InitRange)
			}
			b[j] = uniform(rng, InitRange)
		}
		nn.Layers[l] = Layer{
			Weights: mat.NewDense(neurons, inputs, w),
			Biases:  mat.NewVecDense(neurons, b),
		}
	}
	return nn, nil
}

func validateShape(shape []int) error {
	if len(shape) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidShape, len(shape))
	}
	for i, w := range shape {
		if w <= 0 {
			return fmt.Errorf("%w: layer %d has width %d", ErrInvalidShape, i, w)
		}
	}
	return nil
}

// uniform draws from [-r, r].
func uniform(rng *rand.Rand, r float64) float64 {
	return (rng.Float64()*2 - 1) * r
}

// NumInputs returns the input width of the first layer.
func (nn *FFNN) NumInputs() int {
	_, c := nn.Layers[0].Weights.Dims()
	return c
}

// NumOutputs returns the output width of the last layer.
func (nn *FFNN) NumOutputs() int {
	r, _ := nn.Layers[len(nn.Layers)-1].Weights.Dims()
	return r
}

// Shape returns the layer widths, input width first.
func (nn *FFNN) Shape() []int {
	shape := []int{nn.NumInputs()}
	for _, l := range nn.Layers {
		r, _ := l.Weights.Dims()
		shape = append(shape, r)
	}
	return shape
}

// Infer propagates inputs layer by layer: out = activation(bias + W·in).
// The input width must match the first layer exactly.
func (nn *FFNN) Infer(inputs []float64) ([]float64, error) {
	if want := nn.NumInputs(); len(inputs) != want {
		return nil, fmt.Errorf("%w: got %d inputs, network expects %d", ErrDimensionMismatch, len(inputs), want)
	}

	x := mat.NewVecDense(len(inputs), append([]float64(nil), inputs...))
	for _, l := range nn.Layers {
		neurons, _ := l.Weights.Dims()
		out := mat.NewVecDense(neurons, nil)
		out.MulVec(l.Weights, x)
		out.AddVec(out, l.Biases)
		raw := out.RawVector().Data
		for i := range raw {
			raw[i] = nn.Activation(raw[i])
		}
		x = out
	}

	return append([]float64(nil), x.RawVector().Data...), nil
}

// Mutate returns a perturbed copy: every weight and bias independently moves
// by a uniform delta with probability rate. The receiver is not modified.
// Weights of all layers are visited before any bias.
func (nn *FFNN) Mutate(rng *rand.Rand, rate float64) (*FFNN, error) {
	if rate < 0 || rate > 1 || math.IsNaN(rate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	child := nn.Clone()
	for _, l := range child.Layers {
		w := l.Weights.RawMatrix()
		for i := 0; i < w.Rows; i++ {
			row := w.Data[i*w.Stride : i*w.Stride+w.Cols]
			for j := range row {
				if rng.Float64() < rate {
					row[j] += uniform(rng, MutationDelta)
				}
			}
		}
	}
	for _, l := range child.Layers {
		b := l.Biases.RawVector().Data
		for i := range b {
			if rng.Float64() < rate {
				b[i] += uniform(rng, MutationDelta)
			}
		}
	}
	return child, nil
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := &FFNN{
		Layers:     make([]Layer, len(nn.Layers)),
		Activation: nn.Activation,
	}
	for i, l := range nn.Layers {
		clone.Layers[i] = Layer{
			Weights: mat.DenseCopyOf(l.Weights),
			Biases:  mat.VecDenseCopyOf(l.Biases),
		}
	}
	return clone
}

// Equal reports whether both networks have the same topology and parameters.
func (nn *FFNN) Equal(other *FFNN) bool {
	if other == nil || len(nn.Layers) != len(other.Layers) {
		return false
	}
	for i := range nn.Layers {
		ar, ac := nn.Layers[i].Weights.Dims()
		br, bc := other.Layers[i].Weights.Dims()
		if ar != br || ac != bc {
			return false
		}
		if !mat.Equal(nn.Layers[i].Weights, other.Layers[i].Weights) ||
			!mat.Equal(nn.Layers[i].Biases, other.Layers[i].Biases) {
			return false
		}
	}
	return true
}

// LayerWeights is a plain copy of one layer, for export.
type LayerWeights struct {
	Weights [][]float64 `json:"weights"` // neurons x inputs
	Biases  []float64   `json:"biases"`
}

// Export copies every layer's parameters into plain slices.
func (nn *FFNN) Export() []LayerWeights {
	out := make([]LayerWeights, len(nn.Layers))
	for i, l := range nn.Layers {
		neurons, _ := l.Weights.Dims()
		lw := LayerWeights{
			Weights: make([][]float64, neurons),
			Biases:  mat.Col(nil, 0, l.Biases),
		}
		for j := range lw.Weights {
			lw.Weights[j] = mat.Row(nil, j, l.Weights)
		}
		out[i] = lw
	}
	return out
}
