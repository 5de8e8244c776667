package ncfile

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrTimeUnits = errors.New("unsupported time units")

var unitsPattern = regexp.MustCompile(`^(days|hours|minutes|seconds)\s+since\s+(\d{1,4})-(\d{1,2})-(\d{1,2})(?:[ T](\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:\.\d*)?)?)?\s*(?:Z|UTC|[+-]0{1,2}:?0{0,2})?$`)

var unitSeconds = map[string]int64{
	"days":    86400,
	"hours":   3600,
	"minutes": 60,
	"seconds": 1,
}

// TimeUnits describes a "<unit> since <epoch>" encoding as a step and an epoch, both
// in seconds.
type TimeUnits struct {
	Step  int64
	Epoch int64
}

func ParseTimeUnits(units string) (TimeUnits, error) {
	m := unitsPattern.FindStringSubmatch(strings.TrimSpace(units))
	if m == nil {
		return TimeUnits{}, fmt.Errorf("%w: %q", ErrTimeUnits, units)
	}

	part := func(i int) int {
		if m[i] == "" {
			return 0
		}
		n, _ := strconv.Atoi(m[i])
		return n
	}

	epoch := time.Date(part(2), time.Month(part(3)), part(4), part(5), part(6), part(7), 0, time.UTC)

	return TimeUnits{Step: unitSeconds[m[1]], Epoch: epoch.Unix()}, nil
}

// Unix converts an encoded offset into seconds since the unix epoch. Integral offsets
// are converted exactly.
func (u TimeUnits) Unix(offset float64) int64 {
	if offset == math.Trunc(offset) && math.Abs(offset) < 1<<53 {
		return int64(offset)*u.Step + u.Epoch
	}
	return int64(math.Round(offset*float64(u.Step))) + u.Epoch
}

// TimeAxis reads a CF time coordinate and returns it as unix seconds.
func (f *File) TimeAxis(name string) ([]int64, error) {
	vg, err := f.nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found in %s: %w", name, f.path, err)
	}

	units, err := ParseTimeUnits(String(toMap(vg.Attributes())["units"]))
	if err != nil {
		return nil, fmt.Errorf("time axis of %s: %w", f.path, err)
	}

	raw, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from %s: %w", name, f.path, err)
	}

	switch v := raw.(type) {
	case []int32:
		return integerAxis(v, units), nil
	case []int64:
		return integerAxis(v, units), nil
	case []int16:
		return integerAxis(v, units), nil
	}

	offsets, ok := toFloat64s(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s is %T", ErrShape, name, f.path, raw)
	}

	result := make([]int64, len(offsets))
	for i, o := range offsets {
		result[i] = units.Unix(o)
	}
	return result, nil
}

func integerAxis[T ~int16 | ~int32 | ~int64](values []T, units TimeUnits) []int64 {
	result := make([]int64, len(values))
	for i, v := range values {
		result[i] = int64(v)*units.Step + units.Epoch
	}
	return result
}
