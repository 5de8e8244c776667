package ncfile

import (
	"errors"
	"fmt"
	"math"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

var ErrShape = errors.New("unexpected variable shape")

// File is a read-only handle on one netCDF file. Callers close it as soon as the
// values they need have been read.
type File struct {
	path string
	nc   api.Group
}

func Open(path string) (*File, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &File{path: path, nc: nc}, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Close() {
	f.nc.Close()
}

func (f *File) Attributes() map[string]any {
	return toMap(f.nc.Attributes())
}

func (f *File) VarAttributes(name string) (map[string]any, error) {
	vg, err := f.nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found in %s: %w", name, f.path, err)
	}
	return toMap(vg.Attributes()), nil
}

// Axis reads a one dimensional coordinate variable as float64 values.
func (f *File) Axis(name string) ([]float64, error) {
	vg, err := f.nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found in %s: %w", name, f.path, err)
	}

	v, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from %s: %w", name, f.path, err)
	}

	values, ok := toFloat64s(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s is %T", ErrShape, name, f.path, v)
	}

	return values, nil
}

// Point extracts name[t0:t1, i, j]. Packed values are unpacked with scale_factor and
// add_offset; fill and missing values are returned as NaN.
func (f *File) Point(name string, t0, t1 int64, i, j int) ([]float64, error) {
	vg, err := f.nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found in %s: %w", name, f.path, err)
	}

	if dims := vg.Dimensions(); len(dims) != 3 {
		return nil, fmt.Errorf("%w: %s in %s has dimensions %v", ErrShape, name, f.path, dims)
	}

	if t1 <= t0 {
		return []float64{}, nil
	}

	raw, err := vg.GetSlice(t0, t1)
	if err != nil {
		return nil, fmt.Errorf("failed to slice %s[%d:%d] from %s: %w", name, t0, t1, f.path, err)
	}

	p := newPacking(toMap(vg.Attributes()))

	var values []float64
	switch v := raw.(type) {
	case [][][]float32:
		values, err = pick(v, i, j, p)
	case [][][]float64:
		values, err = pick(v, i, j, p)
	case [][][]int16:
		values, err = pick(v, i, j, p)
	case [][][]int32:
		values, err = pick(v, i, j, p)
	case [][][]int8:
		values, err = pick(v, i, j, p)
	default:
		err = fmt.Errorf("%w: %s in %s is %T", ErrShape, name, f.path, raw)
	}

	return values, err
}

type number interface {
	~int8 | ~int16 | ~int32 | ~float32 | ~float64
}

func pick[T number](slab [][][]T, i, j int, p packing) ([]float64, error) {
	values := make([]float64, 0, len(slab))
	for _, grid := range slab {
		if i < 0 || i >= len(grid) || j < 0 || j >= len(grid[i]) {
			return nil, fmt.Errorf("%w: index (%d, %d) outside grid", ErrShape, i, j)
		}
		values = append(values, p.unpack(float64(grid[i][j])))
	}
	return values, nil
}

type packing struct {
	scale   float64
	offset  float64
	missing []float64
}

func newPacking(attrs map[string]any) packing {
	p := packing{scale: 1}

	if v, ok := Float(attrs["scale_factor"]); ok {
		p.scale = v
	}
	if v, ok := Float(attrs["add_offset"]); ok {
		p.offset = v
	}
	for _, key := range []string{"_FillValue", "missing_value"} {
		if v, ok := Float(attrs[key]); ok {
			p.missing = append(p.missing, v)
		}
	}

	return p
}

func (p packing) unpack(raw float64) float64 {
	if math.IsNaN(raw) {
		return raw
	}
	for _, m := range p.missing {
		if raw == m {
			return math.NaN()
		}
	}
	return raw*p.scale + p.offset
}

func toMap(am api.AttributeMap) map[string]any {
	result := map[string]any{}
	if am == nil {
		return result
	}
	for _, k := range am.Keys() {
		if v, ok := am.Get(k); ok {
			result[k] = v
		}
	}
	return result
}

// String returns a string attribute value, or "" when absent.
func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}

// Float returns a numeric attribute value. Single element slices are accepted.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	}

	if values, ok := toFloat64s(v); ok && len(values) == 1 {
		return values[0], true
	}

	return 0, false
}

func toFloat64s(v any) ([]float64, bool) {
	switch s := v.(type) {
	case []float64:
		return append([]float64{}, s...), true
	case []float32:
		return convert(s), true
	case []int8:
		return convert(s), true
	case []int16:
		return convert(s), true
	case []int32:
		return convert(s), true
	case []int64:
		return convert(s), true
	case []uint8:
		return convert(s), true
	case []uint16:
		return convert(s), true
	case []uint32:
		return convert(s), true
	}
	return nil, false
}

func convert[T ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~float32](s []T) []float64 {
	result := make([]float64, len(s))
	for i, v := range s {
		result[i] = float64(v)
	}
	return result
}
