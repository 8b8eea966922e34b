package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/x448/float16"
)

// Tensor is a materialized array: sizes, element type, device and data.
type Tensor struct {
	sizes      []int64
	scalarType ScalarType
	device     Device

	// data is one of []float32, []float16.Float16, []float64, []int32, []int64.
	data any
}

// NewTensor wraps data, which must be a slice of the Go type for scalarType
// with exactly as many elements as sizes implies.
func NewTensor(sizes []int64, scalarType ScalarType, device Device, data any) (*Tensor, error) {
	want, err := checkedNumElements(sizes)
	if err != nil {
		return nil, err
	}

	var n int
	switch scalarType {
	case Float32:
		v, ok := data.([]float32)
		if !ok {
			return nil, fmt.Errorf("%v tensor needs []float32 data, got %T", scalarType, data)
		}
		n = len(v)
	case Float16:
		v, ok := data.([]float16.Float16)
		if !ok {
			return nil, fmt.Errorf("%v tensor needs []float16.Float16 data, got %T", scalarType, data)
		}
		n = len(v)
	case Float64:
		v, ok := data.([]float64)
		if !ok {
			return nil, fmt.Errorf("%v tensor needs []float64 data, got %T", scalarType, data)
		}
		n = len(v)
	case Int32:
		v, ok := data.([]int32)
		if !ok {
			return nil, fmt.Errorf("%v tensor needs []int32 data, got %T", scalarType, data)
		}
		n = len(v)
	case Int64:
		v, ok := data.([]int64)
		if !ok {
			return nil, fmt.Errorf("%v tensor needs []int64 data, got %T", scalarType, data)
		}
		n = len(v)
	default:
		return nil, fmt.Errorf("unsupported scalar type %v", scalarType)
	}

	if int64(n) != want {
		return nil, fmt.Errorf("tensor of sizes %v needs %d elements, got %d", formatSizes(sizes), want, n)
	}

	return &Tensor{
		sizes:      slices.Clone(sizes),
		scalarType: scalarType,
		device:     device,
		data:       data,
	}, nil
}

// FromFloat64s builds a tensor of the given type, converting each value.
func FromFloat64s(sizes []int64, scalarType ScalarType, device Device, values []float64) (*Tensor, error) {
	var data any
	switch scalarType {
	case Float32:
		v := make([]float32, len(values))
		for i, x := range values {
			v[i] = float32(x)
		}
		data = v
	case Float16:
		v := make([]float16.Float16, len(values))
		for i, x := range values {
			v[i] = float16.Fromfloat32(float32(x))
		}
		data = v
	case Float64:
		data = slices.Clone(values)
	case Int32:
		v := make([]int32, len(values))
		for i, x := range values {
			v[i] = int32(x)
		}
		data = v
	case Int64:
		v := make([]int64, len(values))
		for i, x := range values {
			v[i] = int64(x)
		}
		data = v
	default:
		return nil, fmt.Errorf("unsupported scalar type %v", scalarType)
	}
	return NewTensor(sizes, scalarType, device, data)
}

func (t *Tensor) Sizes() []int64 {
	return slices.Clone(t.sizes)
}

func (t *Tensor) ScalarType() ScalarType {
	return t.scalarType
}

func (t *Tensor) Device() Device {
	return t.device
}

func (t *Tensor) NumElements() int64 {
	return numElements(t.sizes)
}

// Data returns the backing slice; callers must not modify it.
func (t *Tensor) Data() any {
	return t.data
}

// Float64s returns a widened copy of the values.
func (t *Tensor) Float64s() []float64 {
	out := make([]float64, t.NumElements())
	switch data := t.data.(type) {
	case []float32:
		for i, v := range data {
			out[i] = float64(v)
		}
	case []float16.Float16:
		for i, v := range data {
			out[i] = float64(v.Float32())
		}
	case []float64:
		copy(out, data)
	case []int32:
		for i, v := range data {
			out[i] = float64(v)
		}
	case []int64:
		for i, v := range data {
			out[i] = float64(v)
		}
	}
	return out
}

// Matches reports whether the tensor has the sizes and type declared by info.
func (t *Tensor) Matches(info TensorInfo) error {
	if t.scalarType != info.ScalarType {
		return fmt.Errorf("tensor %q: scalar type %v, want %v", info.Name, t.scalarType, info.ScalarType)
	}
	if !slices.Equal(t.sizes, info.Sizes) {
		return fmt.Errorf("tensor %q: sizes %v, want %v", info.Name, formatSizes(t.sizes), formatSizes(info.Sizes))
	}
	return nil
}

const summarizeThreshold = 6

// String prints the values the way torch summarizes them: long tensors show
// the first and last three elements.
func (t *Tensor) String() string {
	values := t.formatValues()

	var b strings.Builder
	b.WriteString("tensor(")
	if len(t.sizes) == 0 && len(values) == 1 {
		b.WriteString(values[0])
	} else {
		b.WriteByte('[')
		if len(values) > summarizeThreshold {
			b.WriteString(strings.Join(values[:3], ", "))
			b.WriteString(", ..., ")
			b.WriteString(strings.Join(values[len(values)-3:], ", "))
		} else {
			b.WriteString(strings.Join(values, ", "))
		}
		b.WriteByte(']')
		b.WriteString(", sizes=")
		b.WriteString(formatSizes(t.sizes))
	}
	b.WriteString(", dtype=")
	b.WriteString(t.scalarType.String())
	b.WriteString(", device=")
	b.WriteString(t.device.String())
	b.WriteByte(')')
	return b.String()
}

func (t *Tensor) formatValues() []string {
	var out []string
	switch data := t.data.(type) {
	case []int32:
		for _, v := range data {
			out = append(out, strconv.FormatInt(int64(v), 10))
		}
	case []int64:
		for _, v := range data {
			out = append(out, strconv.FormatInt(v, 10))
		}
	default:
		for _, v := range t.Float64s() {
			out = append(out, strconv.FormatFloat(v, 'f', 4, 64))
		}
	}
	return out
}
