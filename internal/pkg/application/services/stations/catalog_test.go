package stations

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
	"github.com/matryer/is"
)

func TestThatUnlinkedLocationsAreDropped(t *testing.T) {
	is := is.New(t)

	catalog, err := MergeCatalog("rws", parseCatalog(is, catalogJson))
	is.NoErr(err)

	is.Equal(catalog.Locations, 3)
	is.Equal(catalog.Joined, 3)
	is.Equal(catalog.Dropped, 1) // DELFZL has no metadata link
	is.Equal(len(catalog.Records), 3)

	is.Equal(catalog.Records[0].Code, "HOEKVHLD")
	is.Equal(catalog.Records[0].Quantity, "WATHTE")
	is.Equal(catalog.Records[0].StandardName, "sea_surface_height")
	is.Equal(catalog.Records[0].Units, "cm")
	is.Equal(catalog.Records[0].Qualifier, "NAP")
	is.Equal(catalog.Records[0].Name, "Hoek van Holland")

	for _, r := range catalog.Records {
		is.True(r.Code != "")
		is.Equal(r.CoordinateSystem, "25831")
	}
}

func TestThatDroppedEqualsLocationsMinusJoinedWhenEachLocationHasOneRow(t *testing.T) {
	is := is.New(t)

	raw := parseCatalog(is, catalogJson)
	raw.AquoMetadataLocatieLijst = raw.AquoMetadataLocatieLijst[:2] // only HOEKVHLD and VLISSGN links

	catalog, err := MergeCatalog("rws", raw)
	is.NoErr(err)
	is.Equal(catalog.Joined, 2)
	is.Equal(catalog.Dropped, catalog.Locations-catalog.Joined)
}

func TestThatLocationsAreTransformedToWGS84(t *testing.T) {
	is := is.New(t)

	catalog, err := MergeCatalog("rws", parseCatalog(is, catalogJson))
	is.NoErr(err)

	// Hoek van Holland, EPSG:25831 (576925.9754, 5759128.0304)
	p := catalog.Records[0].Location
	is.True(math.Abs(p.Latitude()-51.9775) < 1e-6)
	is.True(math.Abs(p.Longitude()-4.1200) < 1e-6)
}

func TestThatMixedCoordinateSystemsViolateTheJoinInvariant(t *testing.T) {
	is := is.New(t)

	raw := parseCatalog(is, catalogJson)
	raw.LocatieLijst[1]["Coordinatenstelsel"] = json.RawMessage(`"4326"`)

	_, err := MergeCatalog("rws", raw)
	is.True(errors.Is(err, domain.ErrCatalogJoinInvariant))
}

func TestThatAnEmptyJoinViolatesTheJoinInvariant(t *testing.T) {
	is := is.New(t)

	raw := parseCatalog(is, catalogJson)
	raw.AquoMetadataLijst = []rws.Row{{"AquoMetadata_MessageID": json.RawMessage(`999`)}}

	_, err := MergeCatalog("rws", raw)
	is.True(errors.Is(err, domain.ErrCatalogJoinInvariant))
}

func TestThatAnUnsupportedCoordinateSystemAbortsTheMerge(t *testing.T) {
	is := is.New(t)

	raw := parseCatalog(is, catalogJson)
	for _, l := range raw.LocatieLijst {
		l["Coordinatenstelsel"] = json.RawMessage(`"2154"`)
	}

	catalog, err := MergeCatalog("rws", raw)
	is.True(errors.Is(err, domain.ErrCoordinateSystem))
	is.Equal(len(catalog.Records), 0)
}

func TestThatNumericKeysMatchRegardlessOfNotation(t *testing.T) {
	is := is.New(t)

	left := newTable([]rws.Row{{"ID": json.RawMessage(`1`), "A": json.RawMessage(`"x"`)}})
	right := newTable([]rws.Row{{"id": json.RawMessage(`1.0`), "B": json.RawMessage(`"y"`)}})

	joined, err := naturalJoin(left, right)
	is.NoErr(err)
	is.Equal(len(joined.rows), 1)
	is.Equal(string(joined.rows[0]["b"]), `"y"`)
}

func TestThatRelationsWithoutSharedColumnsCannotBeJoined(t *testing.T) {
	is := is.New(t)

	left := newTable([]rws.Row{{"a": json.RawMessage(`1`)}})
	right := newTable([]rws.Row{{"b": json.RawMessage(`1`)}})

	_, err := naturalJoin(left, right)
	is.True(errors.Is(err, domain.ErrCatalogJoinInvariant))
}

func TestFilterCatalog(t *testing.T) {
	is := is.New(t)

	catalog, err := MergeCatalog("rws", parseCatalog(is, catalogJson))
	is.NoErr(err)

	codes, ok := FilterCodes("wind")
	is.True(ok)

	wind := FilterCatalog(catalog, codes)
	is.Equal(len(wind.Records), 2)
	for _, r := range wind.Records {
		is.True(r.Quantity == "WINDSHD" || r.Quantity == "WINDRTG")
	}

	is.Equal(len(FilterCatalog(catalog, nil).Records), 3)
}

func TestVocabulary(t *testing.T) {
	is := is.New(t)

	is.Equal(StandardName("WATHTBRKD"), "sea_surface_height")
	is.Equal(StandardName("NOPE"), "")

	codes, ok := FilterCodes("WATERLEVEL")
	is.True(ok)
	is.Equal(codes, []string{"WATHTBRKD", "WATHTE"})

	_, ok = FilterCodes("TEMPERATUREZ")
	is.True(!ok)
}

func parseCatalog(is *is.I, body string) *rws.CatalogResponse {
	raw := &rws.CatalogResponse{}
	is.NoErr(json.Unmarshal([]byte(body), raw))
	return raw
}

const catalogJson string = `{
	"Succesvol": true,
	"LocatieLijst": [
		{"Locatie_MessageID": 1, "Coordinatenstelsel": "25831", "X": 576925.9754, "Y": 5759128.0304, "Naam": "Hoek van Holland", "Code": "HOEKVHLD"},
		{"Locatie_MessageID": 2, "Coordinatenstelsel": "25831", "X": 541425.082717457, "Y": 5699181.90706335, "Naam": "Vlissingen", "Code": "VLISSGN"},
		{"Locatie_MessageID": 3, "Coordinatenstelsel": "25831", "X": 761899.770959577, "Y": 5915790.48491405, "Naam": "Delfzijl", "Code": "DELFZL"}
	],
	"AquoMetadataLocatieLijst": [
		{"locatie_messageid": 1, "AquoMetaData_MessageID": 10},
		{"Locatie_MessageID": 2, "AquoMetaData_MessageID": 20},
		{"Locatie_MessageID": 2, "AquoMetaData_MessageID": 21}
	],
	"AquoMetadataLijst": [
		{"AquoMetadata_MessageID": 10, "Eenheid": {"Code": "cm"}, "Grootheid": {"Code": "WATHTE"}, "Hoedanigheid": {"Code": "NAP"}},
		{"AquoMetadata_MessageID": 20, "Eenheid": {"Code": "m/s"}, "Grootheid": {"Code": "WINDSHD"}, "Hoedanigheid": {"Code": "NVT"}},
		{"AquoMetadata_MessageID": 21, "Eenheid": {"Code": "graad"}, "Grootheid": {"Code": "WINDRTG"}, "Hoedanigheid": {"Code": "NVT"}}
	]
}`
