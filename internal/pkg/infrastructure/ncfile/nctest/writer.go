// Package nctest writes small synthetic netCDF files for tests.
package nctest

import (
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
)

type Component struct {
	Variable string
	LongName string
	Units    string
	// Value returns the value stored at time index t (counted across the whole
	// archive), latitude index i and longitude index j.
	Value func(t, i, j int) float32
}

type File struct {
	Path      string
	Title     string
	TimeUnits string
	Hours     []int32
	Lat       []float32
	Lon       []float32
	// First is the archive wide index of the first time step in this file.
	First     int
	Component Component
}

func attributes(keys []string, values map[string]any) (api.AttributeMap, error) {
	return util.NewOrderedMap(keys, values)
}

func Write(f File) error {
	cw, err := cdf.OpenWriter(f.Path)
	if err != nil {
		return err
	}

	global, err := attributes([]string{"title"}, map[string]any{"title": f.Title})
	if err != nil {
		return err
	}
	if err = cw.AddGlobalAttrs(global); err != nil {
		return err
	}

	timeAttrs, err := attributes([]string{"units"}, map[string]any{"units": f.TimeUnits})
	if err != nil {
		return err
	}
	if err = cw.AddVar("time", api.Variable{Values: f.Hours, Dimensions: []string{"time"}, Attributes: timeAttrs}); err != nil {
		return err
	}

	latAttrs, _ := attributes([]string{"units"}, map[string]any{"units": "degrees_north"})
	if err = cw.AddVar("lat", api.Variable{Values: f.Lat, Dimensions: []string{"lat"}, Attributes: latAttrs}); err != nil {
		return err
	}

	lonAttrs, _ := attributes([]string{"units"}, map[string]any{"units": "degrees_east"})
	if err = cw.AddVar("lon", api.Variable{Values: f.Lon, Dimensions: []string{"lon"}, Attributes: lonAttrs}); err != nil {
		return err
	}

	data := make([][][]float32, len(f.Hours))
	for t := range f.Hours {
		data[t] = make([][]float32, len(f.Lat))
		for i := range f.Lat {
			data[t][i] = make([]float32, len(f.Lon))
			for j := range f.Lon {
				data[t][i][j] = f.Component.Value(f.First+t, i, j)
			}
		}
	}

	varAttrs, err := attributes(
		[]string{"long_name", "units"},
		map[string]any{"long_name": f.Component.LongName, "units": f.Component.Units},
	)
	if err != nil {
		return err
	}

	err = cw.AddVar(f.Component.Variable, api.Variable{
		Values:     data,
		Dimensions: []string{"time", "lat", "lon"},
		Attributes: varAttrs,
	})
	if err != nil {
		return err
	}

	return cw.Close()
}
