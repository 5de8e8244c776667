package crs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/wroge/wgs84"
)

const WGS84 = "4326"

type Projected struct {
	X float64
	Y float64
}

type LonLat struct {
	Lon float64
	Lat float64
}

// Transformer converts projected coordinates in one source frame into WGS84 lon/lat.
// All setup happens in NewTransformer so a single Transform call can convert every
// record of a catalog.
type Transformer interface {
	Code() string
	Transform(points []Projected) ([]LonLat, error)
}

// Normalize parses codes such as "25831", "EPSG:25831" or "epsg:25831".
func Normalize(code string) (string, error) {
	c := strings.TrimSpace(code)
	if i := strings.LastIndex(c, ":"); i >= 0 {
		if !strings.EqualFold(c[:i], "EPSG") {
			return "", fmt.Errorf("%w: %q", domain.ErrCoordinateSystem, code)
		}
		c = c[i+1:]
	}

	if _, err := strconv.Atoi(c); err != nil || c == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrCoordinateSystem, code)
	}

	return c, nil
}

type transformFunc func(a, b, c float64) (float64, float64, float64)

func identity(a, b, c float64) (float64, float64, float64) {
	return a, b, c
}

// NewTransformer returns a transformer for the frames the upstream catalogs use:
// WGS84 and ETRS89 geographic, web mercator, WGS84 and ETRS89 UTM and RD New.
func NewTransformer(code string) (Transformer, error) {
	c, err := Normalize(code)
	if err != nil {
		return nil, err
	}

	n, _ := strconv.Atoi(c)

	// ETRS89 and WGS84 are treated as the same frame.
	if n == 4326 || n == 4258 {
		return &transformer{code: c, fn: identity}, nil
	}

	if n == 900913 {
		n = 3857
	}

	if !supported(n) {
		return nil, fmt.Errorf("%w: EPSG:%s", domain.ErrCoordinateSystem, c)
	}

	return &transformer{code: c, fn: transformFunc(wgs84.EPSG().Transform(n, 4326))}, nil
}

func supported(n int) bool {
	switch {
	case n == 3857, n == 28992:
		return true
	case n >= 32601 && n <= 32660:
		return true
	case n >= 32701 && n <= 32760:
		return true
	case n >= 25828 && n <= 25838:
		return true
	}
	return false
}

// Transform is a convenience for one-off conversions.
func Transform(code string, points []Projected) ([]LonLat, error) {
	t, err := NewTransformer(code)
	if err != nil {
		return nil, err
	}
	return t.Transform(points)
}

type transformer struct {
	code string
	fn   transformFunc
}

func (t *transformer) Code() string {
	return t.code
}

func (t *transformer) Transform(points []Projected) ([]LonLat, error) {
	result := make([]LonLat, 0, len(points))

	for _, p := range points {
		if !finite(p.X, p.Y) {
			return nil, fmt.Errorf("%w: coordinate (%v, %v) is not finite", domain.ErrCoordinateSystem, p.X, p.Y)
		}

		lon, lat, _ := t.fn(p.X, p.Y, 0)
		if !finite(lon, lat) {
			return nil, fmt.Errorf("%w: EPSG:%s could not transform (%v, %v)", domain.ErrCoordinateSystem, t.code, p.X, p.Y)
		}

		result = append(result, LonLat{Lon: lon, Lat: lat})
	}

	return result, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
