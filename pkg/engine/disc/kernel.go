package disc

import (
	"fmt"

	"k8s.io/examples/AI/enginerunner/pkg/engine"
)

// multiplySum is the host kernel: the elementwise product of all inputs,
// reduced by a full sum.
func multiplySum(inputs []*engine.Tensor) (float64, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("no inputs to reduce")
	}

	product := inputs[0].Float64s()
	for i, input := range inputs[1:] {
		values := input.Float64s()
		if len(values) != len(product) {
			return 0, fmt.Errorf("input %d has %d elements, input 0 has %d", i+1, len(values), len(product))
		}
		for j, v := range values {
			product[j] *= v
		}
	}

	sum := 0.0
	for _, v := range product {
		sum += v
	}
	return sum, nil
}

// broadcastOutput fills a tensor shaped like info with value.
func broadcastOutput(info engine.TensorInfo, value float64) (*engine.Tensor, error) {
	device, err := engine.ParseDevice(info.Device)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", info.Name, err)
	}
	values := make([]float64, info.NumElements())
	for i := range values {
		values[i] = value
	}
	t, err := engine.FromFloat64s(info.Sizes, info.ScalarType, device, values)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", info.Name, err)
	}
	return t, nil
}
