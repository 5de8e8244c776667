package stations

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/crs"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
)

type codeRef struct {
	Code         string `json:"code"`
	Omschrijving string `json:"omschrijving"`
}

type catalogRow struct {
	Code               string          `json:"code"`
	Naam               string          `json:"naam"`
	Coordinatenstelsel json.RawMessage `json:"coordinatenstelsel"`
	X                  float64         `json:"x"`
	Y                  float64         `json:"y"`
	Grootheid          *codeRef        `json:"grootheid"`
	Eenheid            *codeRef        `json:"eenheid"`
	Hoedanigheid       *codeRef        `json:"hoedanigheid"`
	Compartiment       *codeRef        `json:"compartiment"`
}

func (r *codeRef) code() string {
	if r == nil {
		return ""
	}
	return r.Code
}

const locationColumn = "_location"

// MergeCatalog joins the three collections of a raw catalog pull into station records.
// Every record of the result shares one coordinate system.
func MergeCatalog(dataset string, raw *rws.CatalogResponse) (domain.Catalog, error) {
	if raw == nil {
		return domain.Catalog{}, fmt.Errorf("%w: empty catalog", domain.ErrCatalogJoinInvariant)
	}

	locations := newTable(raw.LocatieLijst)
	for i, row := range locations.rows {
		row[locationColumn] = json.RawMessage(fmt.Sprintf("%d", i))
	}
	locations.columns = append(locations.columns, locationColumn)

	joined := locations
	for _, next := range []table{newTable(raw.AquoMetadataLocatieLijst), newTable(raw.AquoMetadataLijst)} {
		var err error
		joined, err = naturalJoin(joined, next)
		if err != nil {
			return domain.Catalog{}, err
		}
	}

	catalog := domain.Catalog{
		Dataset:   dataset,
		Records:   []domain.StationRecord{},
		Locations: len(locations.rows),
		Joined:    len(joined.rows),
	}

	if len(joined.rows) == 0 {
		return catalog, fmt.Errorf("%w: join of %d locations produced no rows", domain.ErrCatalogJoinInvariant, catalog.Locations)
	}

	rows := make([]catalogRow, 0, len(joined.rows))
	systems := map[string]bool{}
	matched := map[string]bool{}

	for _, r := range joined.rows {
		matched[string(r[locationColumn])] = true

		row := catalogRow{}
		if err := decodeRow(r, &row); err != nil {
			return catalog, fmt.Errorf("%w: undecodable row: %s", domain.ErrCatalogJoinInvariant, err.Error())
		}

		systems[systemCode(row.Coordinatenstelsel)] = true
		rows = append(rows, row)
	}

	catalog.Dropped = catalog.Locations - len(matched)

	if len(systems) != 1 {
		return catalog, fmt.Errorf("%w: expected one coordinate system, found %d", domain.ErrCatalogJoinInvariant, len(systems))
	}

	var system string
	for s := range systems {
		system = s
	}

	transformer, err := crs.NewTransformer(system)
	if err != nil {
		return catalog, err
	}

	points := make([]crs.Projected, 0, len(rows))
	for _, row := range rows {
		points = append(points, crs.Projected{X: row.X, Y: row.Y})
	}

	lonlats, err := transformer.Transform(points)
	if err != nil {
		return catalog, err
	}

	for i, row := range rows {
		if row.Code == "" {
			continue
		}

		quantity := row.Grootheid.code()

		catalog.Records = append(catalog.Records, domain.StationRecord{
			Code:             row.Code,
			Name:             row.Naam,
			Location:         *domain.NewPoint(lonlats[i].Lat, lonlats[i].Lon),
			X:                row.X,
			Y:                row.Y,
			CoordinateSystem: system,
			Quantity:         quantity,
			StandardName:     StandardName(quantity),
			Units:            row.Eenheid.code(),
			Qualifier:        row.Hoedanigheid.code(),
			Compartment:      row.Compartiment.code(),
		})
	}

	return catalog, nil
}

// systemCode accepts the coordinate system as either a json string or number.
func systemCode(v json.RawMessage) string {
	c := canonical(v)
	if len(c) > 2 && (strings.HasPrefix(c, "s:") || strings.HasPrefix(c, "n:")) {
		return c[2:]
	}
	return c
}

// FilterCatalog keeps the records whose quantity is one of codes. A nil codes slice
// keeps everything.
func FilterCatalog(c domain.Catalog, codes []string) domain.Catalog {
	if codes == nil {
		return c
	}

	allowed := map[string]bool{}
	for _, code := range codes {
		allowed[code] = true
	}

	filtered := c
	filtered.Records = []domain.StationRecord{}
	for _, r := range c.Records {
		if allowed[r.Quantity] {
			filtered.Records = append(filtered.Records, r)
		}
	}

	return filtered
}
