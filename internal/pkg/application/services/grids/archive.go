package grids

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/ncfile"
	"golang.org/x/exp/slices"
)

// group is the ordered file set of one component. lengths holds the number of time
// steps in each file.
type group struct {
	component Component
	files     []string
	lengths   []int64
}

// descriptor is the aggregated view of every file of a quantity.
type descriptor struct {
	fingerprint uint64
	times       []int64
	lat         []float64
	lon         []float64
	groups      []group
}

func discover(dir string, components []Component) ([]group, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGridArchiveNotFound, err.Error())
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrGridArchiveNotFound, dir)
	}

	groups := make([]group, 0, len(components))

	for _, c := range components {
		files, err := filepath.Glob(filepath.Join(dir, c.Pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %s", domain.ErrGridArchiveNotFound, c.Pattern, err.Error())
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no files matching %s in %s", domain.ErrGridArchiveNotFound, c.Pattern, dir)
		}

		sort.Strings(files)
		groups = append(groups, group{component: c, files: files})
	}

	return groups, nil
}

// fingerprint changes whenever a file is added, removed or rewritten.
func fingerprint(groups []group) (uint64, error) {
	h := xxhash.New()
	for _, g := range groups {
		for _, path := range g.files {
			fi, err := os.Stat(path)
			if err != nil {
				return 0, fmt.Errorf("%w: %s", domain.ErrGridArchiveNotFound, err.Error())
			}
			fmt.Fprintf(h, "%s\x1f%d\x1f%d\n", path, fi.Size(), fi.ModTime().UnixNano())
		}
	}
	return h.Sum64(), nil
}

// describe builds the time axis from the files of the first component and checks that
// every other component has the same time steps and spatial axes.
func describe(a Archive, groups []group) (*descriptor, error) {
	d := &descriptor{groups: groups}
	axes := make([][]int64, len(groups))

	for gi := range d.groups {
		g := &d.groups[gi]
		g.lengths = make([]int64, len(g.files))

		for fi, path := range g.files {
			f, err := ncfile.Open(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", domain.ErrGridArchiveNotFound, err.Error())
			}

			err = func() error {
				defer f.Close()

				times, err := f.TimeAxis(a.TimeVar)
				if err != nil {
					return err
				}
				g.lengths[fi] = int64(len(times))
				axes[gi] = append(axes[gi], times...)

				lat, err := f.Axis(a.LatitudeVar)
				if err != nil {
					return err
				}
				lon, err := f.Axis(a.LongitudeVar)
				if err != nil {
					return err
				}

				if d.lat == nil {
					d.lat, d.lon = lat, lon
					return nil
				}

				if !slices.Equal(d.lat, lat) || !slices.Equal(d.lon, lon) {
					return fmt.Errorf("%w: %s does not share the spatial axes of %s", domain.ErrGridArchiveInconsistent, path, d.groups[0].files[0])
				}

				return nil
			}()
			if err != nil {
				return nil, inconsistent(err)
			}
		}
	}

	d.times = axes[0]

	for i := 1; i < len(d.times); i++ {
		if d.times[i] <= d.times[i-1] {
			return nil, fmt.Errorf("%w: time axis of %s is not strictly increasing at index %d", domain.ErrGridArchiveInconsistent, a.ID, i)
		}
	}

	for gi, g := range d.groups[1:] {
		times := axes[gi+1]
		if len(times) != len(d.times) {
			return nil, fmt.Errorf("%w: component %s has %d time steps, expected %d", domain.ErrGridArchiveInconsistent, g.component.Name, len(times), len(d.times))
		}
		if !slices.Equal(times, d.times) {
			return nil, fmt.Errorf("%w: component %s does not share the time axis of %s", domain.ErrGridArchiveInconsistent, g.component.Name, d.groups[0].component.Name)
		}
	}

	return d, nil
}

func inconsistent(err error) error {
	if errors.Is(err, domain.ErrGridArchiveInconsistent) || errors.Is(err, domain.ErrGridArchiveNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrGridArchiveInconsistent, err.Error())
}

// extract reads variable[t0:t1, i, j] across the files of g. Only files that overlap
// the window are opened.
func (g group) extract(variable string, t0, t1 int64, i, j int) ([]float64, error) {
	values := []float64{}

	var offset int64
	for k, path := range g.files {
		n := g.lengths[k]
		lo, hi := max(t0, offset), min(t1, offset+n)
		offset += n

		if lo >= hi {
			continue
		}

		f, err := ncfile.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrGridArchiveNotFound, err.Error())
		}

		v, err := f.Point(variable, lo-(offset-n), hi-(offset-n), i, j)
		f.Close()

		if err != nil {
			return nil, inconsistent(err)
		}

		values = append(values, v...)
	}

	return values, nil
}

// attributes reads the variable attributes of the component from its first file.
func (g group) attributes() (map[string]any, error) {
	f, err := ncfile.Open(g.files[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGridArchiveNotFound, err.Error())
	}
	defer f.Close()

	attrs, err := f.VarAttributes(g.component.Variable)
	if err != nil {
		return nil, inconsistent(err)
	}

	return attrs, nil
}
