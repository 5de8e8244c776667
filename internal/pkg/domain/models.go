package domain

import "time"

type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func NewPoint(latitude, longitude float64) *Point {
	return &Point{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func (p Point) Latitude() float64 {
	return p.Coordinates[1]
}

func (p Point) Longitude() float64 {
	return p.Coordinates[0]
}

// StationRecord is one row of a normalized station catalog: a location paired with
// one measured quantity.
type StationRecord struct {
	Code             string  `json:"code"`
	Name             string  `json:"name,omitempty"`
	Location         Point   `json:"location"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	CoordinateSystem string  `json:"coordinateSystem"`
	Quantity         string  `json:"quantity"`
	StandardName     string  `json:"standardName"`
	Units            string  `json:"units"`
	Qualifier        string  `json:"qualifier,omitempty"`
	Compartment      string  `json:"compartment,omitempty"`
}

// Catalog is the result of merging the upstream location and metadata collections.
// Dropped counts raw locations that did not survive the join.
type Catalog struct {
	Dataset   string          `json:"dataset"`
	Records   []StationRecord `json:"records"`
	Locations int             `json:"locations"`
	Joined    int             `json:"joined"`
	Dropped   int             `json:"dropped"`
}

type Observation struct {
	Time      time.Time `json:"t"`
	Value     float64   `json:"v"`
	Validated bool      `json:"validated,omitempty"`
}

type Series struct {
	Data         []Observation  `json:"data"`
	Name         string         `json:"name"`
	Units        string         `json:"units"`
	StandardName string         `json:"standardName,omitempty"`
	Station      string         `json:"station,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type SeriesCollection struct {
	Series []Series `json:"series"`
}

type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Geometry   Point          `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
}

type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type GridComponent struct {
	Name     string `json:"name"`
	Variable string `json:"variable"`
	Pattern  string `json:"pattern"`
	Files    int    `json:"files"`
}

type GridInfo struct {
	ID         string                     `json:"id"`
	Title      string                     `json:"title"`
	Attributes map[string]any             `json:"attributes,omitempty"`
	Start      time.Time                  `json:"start"`
	End        time.Time                  `json:"end"`
	TimeSteps  int                        `json:"timeSteps"`
	Latitude   Extent                     `json:"latitude"`
	Longitude  Extent                     `json:"longitude"`
	Quantities map[string][]GridComponent `json:"quantities"`
}
