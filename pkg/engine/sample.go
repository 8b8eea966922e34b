package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/x448/float16"
)

// maxSampleInt bounds integer sample values to [0, maxSampleInt).
const maxSampleInt = 10

// CreateSampleInputs returns one random tensor per schema, in order.
// Floating point values are uniform in [0, 1).
// Values differ from call to call.
func CreateSampleInputs(schemas []TensorInfo) ([]*Tensor, error) {
	rng, err := newRand()
	if err != nil {
		return nil, err
	}

	inputs := make([]*Tensor, 0, len(schemas))
	for _, info := range schemas {
		if err := info.Validate(); err != nil {
			return nil, ValidationError("create sample inputs", err)
		}
		device, err := ParseDevice(info.Device)
		if err != nil {
			return nil, ValidationError("create sample inputs", fmt.Errorf("tensor %q: %w", info.Name, err))
		}

		tensor, err := NewTensor(info.Sizes, info.ScalarType, device, randomData(rng, info.ScalarType, info.NumElements()))
		if err != nil {
			return nil, ValidationError("create sample inputs", fmt.Errorf("tensor %q: %w", info.Name, err))
		}
		inputs = append(inputs, tensor)
	}
	return inputs, nil
}

func randomData(rng *rand.Rand, scalarType ScalarType, n int64) any {
	switch scalarType {
	case Float32:
		v := make([]float32, n)
		for i := range v {
			v[i] = rng.Float32()
		}
		return v
	case Float16:
		v := make([]float16.Float16, n)
		for i := range v {
			// Fromfloat32 rounds, so draw from the half-precision grid below 1.
			v[i] = float16.Fromfloat32(float32(rng.IntN(1<<11)) / (1 << 11))
		}
		return v
	case Float64:
		v := make([]float64, n)
		for i := range v {
			v[i] = rng.Float64()
		}
		return v
	case Int32:
		v := make([]int32, n)
		for i := range v {
			v[i] = rng.Int32N(maxSampleInt)
		}
		return v
	case Int64:
		v := make([]int64, n)
		for i := range v {
			v[i] = rng.Int64N(maxSampleInt)
		}
		return v
	}
	return nil
}

func newRand() (*rand.Rand, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))), nil
}
