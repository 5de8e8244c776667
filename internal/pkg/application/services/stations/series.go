package stations

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
	"golang.org/x/exp/slices"
)

const (
	validatedMarker = "Gecontroleerd"
	// the observation service reports absent values with this sentinel
	missingValue = 999999999
)

func observationsRequest(record domain.StationRecord, start, end time.Time) rws.ObservationsRequest {
	return rws.ObservationsRequest{
		AquoPlusWaarnemingMetadata: rws.AquoPlusWaarnemingMetadata{
			AquoMetadata: rws.AquoMetadataFilter{
				Grootheid: &rws.Code{Code: record.Quantity},
			},
		},
		Locatie: rws.Locatie{
			X:    record.X,
			Y:    record.Y,
			Code: record.Code,
		},
		Periode: rws.Periode{
			Begindatumtijd: start.UTC().Format(rws.PeriodLayout),
			Einddatumtijd:  end.UTC().Format(rws.PeriodLayout),
		},
	}
}

// toSeries reduces an observations response to one series. Measurement order is kept
// as received.
func toSeries(record domain.StationRecord, resp *rws.ObservationsResponse, validatedOnly bool) (domain.Series, error) {
	if !resp.Succesvol {
		return domain.Series{}, fmt.Errorf("%w: %s at %s: %s", domain.ErrNoData, record.Quantity, record.Code, resp.Foutmelding)
	}

	metadata := map[string]any{}
	series := domain.Series{
		Data:         []domain.Observation{},
		Station:      record.Code,
		Name:         record.Quantity,
		Units:        record.Units,
		StandardName: record.StandardName,
	}

	for _, group := range resp.WaarnemingenLijst {
		mergeMetadata(metadata, group.AquoMetadata)
		mergeMetadata(metadata, group.Locatie)

		for _, m := range group.MetingenLijst {
			validated := slices.Contains(m.WaarnemingMetadata.StatuswaardeLijst, validatedMarker)
			if validatedOnly && !validated {
				continue
			}

			if m.Meetwaarde.WaardeNumeriek == nil || *m.Meetwaarde.WaardeNumeriek == missingValue {
				continue
			}

			t, err := time.Parse(time.RFC3339, m.Tijdstip)
			if err != nil {
				return domain.Series{}, fmt.Errorf("%w: invalid timestamp %q: %s", domain.ErrUpstream, m.Tijdstip, err.Error())
			}

			series.Data = append(series.Data, domain.Observation{
				Time:      t.UTC(),
				Value:     *m.Meetwaarde.WaardeNumeriek,
				Validated: validated,
			})
		}
	}

	if name := describe(metadata["Grootheid"]); name != "" {
		series.Name = name
	}
	if series.Units == "" {
		series.Units = code(metadata["Eenheid"])
	}
	if series.StandardName == "" {
		series.StandardName = StandardName(code(metadata["Grootheid"]))
	}
	metadata["standard_name"] = series.StandardName

	series.Metadata = metadata

	return series, nil
}

// mergeMetadata overwrites earlier values, the upstream repeats constant metadata per group.
func mergeMetadata(dst map[string]any, src rws.Row) {
	for k, raw := range src {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			dst[k] = v
		}
	}
}

func code(v any) string {
	if m, ok := v.(map[string]any); ok {
		if s, ok := m["Code"].(string); ok {
			return s
		}
	}
	return ""
}

func describe(v any) string {
	if m, ok := v.(map[string]any); ok {
		if s, ok := m["Omschrijving"].(string); ok {
			return s
		}
	}
	return ""
}
