package generator

import (
	"fmt"
	"math/rand/v2"
)

// Spike plants Values once the fill loop reaches index At. Planted values
// are appended after the random body, not written at At.
type Spike struct {
	At     int       `mapstructure:"at"`
	Values []float64 `mapstructure:"values"`
}

type Options struct {
	Min    int       `mapstructure:"min"`
	Max    int       `mapstructure:"max"`
	Spikes []Spike   `mapstructure:"spikes"`
	Tail   []float64 `mapstructure:"tail"`
	Seed   uint64    `mapstructure:"seed"`
}

func DefaultOptions() Options {
	return Options{
		Min: 0,
		Max: 5,
		Spikes: []Spike{
			{At: 1000, Values: []float64{10000, 100000, 100000}},
			{At: 10000, Values: []float64{100000}},
			{At: 500000, Values: []float64{90000}},
		},
		Tail: []float64{90000},
	}
}

func (o Options) Validate() error {
	if o.Min > o.Max {
		return fmt.Errorf("min %d is greater than max %d", o.Min, o.Max)
	}
	for _, s := range o.Spikes {
		if s.At < 0 {
			return fmt.Errorf("spike position cannot be negative: %d", s.At)
		}
	}
	return nil
}

// RandomRange returns a uniform integer in [min, max].
func RandomRange(r *rand.Rand, min, max int) int {
	return r.IntN(max-min+1) + min
}

func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns size random values followed by the planted spikes whose
// position falls inside the body, then the tail.
func Generate(size int, opts Options) ([]float64, error) {
	if size < 0 {
		return nil, fmt.Errorf("size cannot be negative: %d", size)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator options: %w", err)
	}

	planted := Planted(opts, size)
	data := make([]float64, size, size+len(planted))

	r := NewRand(opts.Seed)
	for i := range data {
		data[i] = float64(RandomRange(r, opts.Min, opts.Max))
	}

	return append(data, planted...), nil
}

// Planted lists, in output order, the values Generate appends after a body
// of the given size.
func Planted(opts Options, size int) []float64 {
	var out []float64
	for _, s := range opts.Spikes {
		if s.At < size {
			out = append(out, s.Values...)
		}
	}
	return append(out, opts.Tail...)
}
