package engine

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// ScalarType is the element type of a tensor.
type ScalarType int

const (
	Float32 ScalarType = iota
	Float16
	Float64
	Int32
	Int64
)

func (s ScalarType) String() string {
	switch s {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("ScalarType(%d)", int(s))
	}
}

// IsFloatingPoint is true for the float types.
func (s ScalarType) IsFloatingPoint() bool {
	return s == Float32 || s == Float16 || s == Float64
}

// ParseScalarType accepts the names torch uses for dtypes.
func ParseScalarType(s string) (ScalarType, error) {
	switch strings.ToLower(strings.TrimPrefix(s, "torch.")) {
	case "float32", "float", "f32":
		return Float32, nil
	case "float16", "half", "f16":
		return Float16, nil
	case "float64", "double", "f64":
		return Float64, nil
	case "int32", "int", "i32":
		return Int32, nil
	case "int64", "long", "i64":
		return Int64, nil
	}
	return 0, fmt.Errorf("unknown scalar type %q", s)
}

const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
)

// Device is where a tensor lives, e.g. cpu or cuda:1.
type Device struct {
	Type string
	// Index is -1 when no index was given.
	Index int
}

// CPU is the host device.
var CPU = Device{Type: DeviceCPU, Index: -1}

func (d Device) String() string {
	if d.Index < 0 {
		return d.Type
	}
	return d.Type + ":" + strconv.Itoa(d.Index)
}

// ParseDevice parses "cpu", "cuda" or "cuda:<index>".
func ParseDevice(s string) (Device, error) {
	deviceType, index, hasIndex := strings.Cut(strings.TrimSpace(s), ":")
	d := Device{Type: strings.ToLower(deviceType), Index: -1}
	switch d.Type {
	case DeviceCPU, DeviceCUDA:
	default:
		return Device{}, fmt.Errorf("unknown device type %q", s)
	}
	if hasIndex {
		n, err := strconv.Atoi(index)
		if err != nil || n < 0 {
			return Device{}, fmt.Errorf("invalid device index in %q", s)
		}
		if d.Type == DeviceCPU && n != 0 {
			return Device{}, fmt.Errorf("invalid device index in %q", s)
		}
		d.Index = n
	}
	return d, nil
}

// TensorInfo describes one tensor without its data.
type TensorInfo struct {
	Name       string
	Sizes      []int64
	ScalarType ScalarType
	Device     string
}

// NumElements is the product of Sizes; a scalar has one element.
func (t TensorInfo) NumElements() int64 {
	return numElements(t.Sizes)
}

// Validate checks the name and sizes; it does not resolve the device.
func (t TensorInfo) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tensor name is required")
	}
	for i, size := range t.Sizes {
		if size < 0 {
			return fmt.Errorf("tensor %q has negative size %d at dimension %d", t.Name, size, i)
		}
	}
	if _, err := checkedNumElements(t.Sizes); err != nil {
		return fmt.Errorf("tensor %q: %w", t.Name, err)
	}
	return nil
}

func (t TensorInfo) String() string {
	return fmt.Sprintf("%s:%v%v@%s", t.Name, t.ScalarType, formatSizes(t.Sizes), t.Device)
}

// ParseTensorInfo parses "name:dtype:dims:device", where dims is like 100x5
// and an empty dims field is a scalar.
func ParseTensorInfo(s string) (TensorInfo, error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) < 4 {
		return TensorInfo{}, fmt.Errorf("tensor info %q: want name:dtype:dims:device", s)
	}
	scalarType, err := ParseScalarType(fields[1])
	if err != nil {
		return TensorInfo{}, fmt.Errorf("tensor info %q: %w", s, err)
	}
	info := TensorInfo{
		Name:       fields[0],
		ScalarType: scalarType,
		Sizes:      []int64{},
		// Rejoin so "cuda:0" survives the split.
		Device: strings.Join(fields[3:], ":"),
	}
	if fields[2] != "" {
		for _, dim := range strings.Split(fields[2], "x") {
			n, err := strconv.ParseInt(dim, 10, 64)
			if err != nil {
				return TensorInfo{}, fmt.Errorf("tensor info %q: invalid dimension %q", s, dim)
			}
			info.Sizes = append(info.Sizes, n)
		}
	}
	if err := info.Validate(); err != nil {
		return TensorInfo{}, fmt.Errorf("tensor info %q: %w", s, err)
	}
	return info, nil
}

// checkedNumElements is numElements for non-negative sizes, failing if the
// count does not fit in an int.
func checkedNumElements(sizes []int64) (int64, error) {
	n := uint64(1)
	for i, size := range sizes {
		if size < 0 {
			return 0, fmt.Errorf("negative size %d at dimension %d", size, i)
		}
		hi, lo := bits.Mul64(n, uint64(size))
		if hi != 0 || lo > math.MaxInt {
			return 0, fmt.Errorf("sizes %v have too many elements", formatSizes(sizes))
		}
		n = lo
	}
	return int64(n), nil
}

func numElements(sizes []int64) int64 {
	n := int64(1)
	for _, size := range sizes {
		n *= size
	}
	return n
}

func formatSizes(sizes []int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, size := range sizes {
		if i != 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(size, 10))
	}
	b.WriteByte(']')
	return b.String()
}
