package rws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput

func TestThatCatalogIsDecoded(t *testing.T) {
	is, ms := testSetup(t, http.StatusOK, catalogJson)

	c := NewClient(WithURLs(ms.URL(), ms.URL()), WithRetries(0, time.Millisecond, time.Millisecond))

	catalog, err := c.Catalog(context.Background())
	is.NoErr(err)
	is.Equal(len(catalog.LocatieLijst), 1)
	is.Equal(len(catalog.AquoMetadataLocatieLijst), 1)
	is.Equal(len(catalog.AquoMetadataLijst), 1)
	is.Equal(string(catalog.LocatieLijst[0]["Code"]), `"HOEKVHLD"`)
}

func TestThatObservationsAreDecoded(t *testing.T) {
	is, ms := testSetup(t, http.StatusOK, observationsJson)

	c := NewClient(WithURLs(ms.URL(), ms.URL()), WithRetries(0, time.Millisecond, time.Millisecond))

	obs, err := c.Observations(context.Background(), ObservationsRequest{})
	is.NoErr(err)
	is.True(obs.Succesvol)
	is.Equal(len(obs.WaarnemingenLijst), 1)
	is.Equal(len(obs.WaarnemingenLijst[0].MetingenLijst), 2)
	is.Equal(*obs.WaarnemingenLijst[0].MetingenLijst[0].Meetwaarde.WaardeNumeriek, -12.0)
}

func TestThatObservationsRequestIsPosted(t *testing.T) {
	is := is.New(t)

	var received ObservationsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Method, http.MethodPost)
		is.Equal(r.Header.Get("Content-Type"), "application/json")
		b, _ := io.ReadAll(r.Body)
		is.NoErr(json.Unmarshal(b, &received))
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(`{"Succesvol":true,"WaarnemingenLijst":[]}`))
	}))
	defer srv.Close()

	c := NewClient(WithURLs(srv.URL, srv.URL))

	req := ObservationsRequest{
		AquoPlusWaarnemingMetadata: AquoPlusWaarnemingMetadata{AquoMetadata: AquoMetadataFilter{Grootheid: &Code{Code: "WATHTE"}}},
		Locatie:                    Locatie{X: 576917.6, Y: 5759136.2, Code: "HOEKVHLD"},
		Periode:                    Periode{Begindatumtijd: "2023-03-01T00:00:00.000+00:00", Einddatumtijd: "2023-03-02T00:00:00.000+00:00"},
	}

	_, err := c.Observations(context.Background(), req)
	is.NoErr(err)
	is.Equal(received.Locatie.Code, "HOEKVHLD")
	is.Equal(received.AquoPlusWaarnemingMetadata.AquoMetadata.Grootheid.Code, "WATHTE")
}

func TestThatServerErrorsAreRetried(t *testing.T) {
	is := is.New(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(`{"Succesvol":true,"WaarnemingenLijst":[]}`))
	}))
	defer srv.Close()

	c := NewClient(WithURLs(srv.URL, srv.URL), WithRetries(3, time.Millisecond, 5*time.Millisecond))

	_, err := c.Observations(context.Background(), ObservationsRequest{})
	is.NoErr(err)
	is.Equal(atomic.LoadInt32(&calls), int32(3))
}

func TestThatMalformedJSONIsRetriedAndThenReported(t *testing.T) {
	is := is.New(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"Succesvol":`))
	}))
	defer srv.Close()

	c := NewClient(WithURLs(srv.URL, srv.URL), WithRetries(2, time.Millisecond, time.Millisecond))

	_, err := c.Observations(context.Background(), ObservationsRequest{})
	is.True(errors.Is(err, domain.ErrUpstream))
	is.Equal(atomic.LoadInt32(&calls), int32(3))
}

func TestThatClientErrorsAreNotRetried(t *testing.T) {
	is := is.New(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(WithURLs(srv.URL, srv.URL), WithRetries(3, time.Millisecond, time.Millisecond))

	_, err := c.Catalog(context.Background())
	is.True(errors.Is(err, domain.ErrUpstream))
	is.Equal(atomic.LoadInt32(&calls), int32(1))
}

func TestThatAStalledUpstreamTimesOut(t *testing.T) {
	is := is.New(t)

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(WithURLs(srv.URL, srv.URL), WithTimeout(50*time.Millisecond), WithRetries(0, time.Millisecond, time.Millisecond))

	started := time.Now()
	_, err := c.Catalog(context.Background())
	is.True(errors.Is(err, domain.ErrUpstream))
	is.True(time.Since(started) < 5*time.Second)
}

func testSetup(t *testing.T, statusCode int, responseBody string) (*is.I, testutils.MockService) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(statusCode),
			response.ContentType("application/json"),
			response.Body([]byte(responseBody)),
		),
	)

	return is, ms
}

const catalogJson string = `{
	"Succesvol": true,
	"LocatieLijst": [
		{"Locatie_MessageID": 84020, "Coordinatenstelsel": "25831", "X": 576917.669784283, "Y": 5759136.15818497, "Naam": "Hoek van Holland", "Code": "HOEKVHLD"}
	],
	"AquoMetadataLocatieLijst": [
		{"Locatie_MessageID": 84020, "AquoMetaData_MessageID": 1}
	],
	"AquoMetadataLijst": [
		{"AquoMetadata_MessageID": 1, "Eenheid": {"Code": "cm"}, "Grootheid": {"Code": "WATHTE"}, "Hoedanigheid": {"Code": "NAP"}, "Compartiment": {"Code": "OW"}}
	]
}`

const observationsJson string = `{
	"Succesvol": true,
	"WaarnemingenLijst": [
		{
			"Locatie": {"Code": "HOEKVHLD", "X": 576917.669784283, "Y": 5759136.15818497},
			"AquoMetadata": {"Grootheid": {"Code": "WATHTE", "Omschrijving": "Waterhoogte"}, "Eenheid": {"Code": "cm"}},
			"MetingenLijst": [
				{"Tijdstip": "2023-03-01T00:00:00.000+01:00", "Meetwaarde": {"Waarde_Numeriek": -12.0}, "WaarnemingMetadata": {"StatuswaardeLijst": ["Gecontroleerd"]}},
				{"Tijdstip": "2023-03-01T00:10:00.000+01:00", "Meetwaarde": {"Waarde_Numeriek": -9.0}, "WaarnemingMetadata": {"StatuswaardeLijst": ["Ongecontroleerd"]}}
			]
		}
	]
}`
