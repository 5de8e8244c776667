package rws

import (
	"encoding/json"
)

// Row is one untyped record of a catalog collection. Column names are kept as
// received; callers normalise them before joining.
type Row map[string]json.RawMessage

type CatalogRequest struct {
	CatalogusFilter CatalogusFilter `json:"CatalogusFilter"`
}

type CatalogusFilter struct {
	Eenheden       bool `json:"Eenheden"`
	Grootheden     bool `json:"Grootheden"`
	Hoedanigheden  bool `json:"Hoedanigheden"`
	Compartimenten bool `json:"Compartimenten,omitempty"`
}

type CatalogResponse struct {
	Succesvol                *bool  `json:"Succesvol,omitempty"`
	Foutmelding              string `json:"Foutmelding,omitempty"`
	LocatieLijst             []Row  `json:"LocatieLijst"`
	AquoMetadataLocatieLijst []Row  `json:"AquoMetadataLocatieLijst"`
	AquoMetadataLijst        []Row  `json:"AquoMetadataLijst"`
}

type Code struct {
	Code         string `json:"Code"`
	Omschrijving string `json:"Omschrijving,omitempty"`
}

type AquoMetadataFilter struct {
	Grootheid    *Code `json:"Grootheid,omitempty"`
	Hoedanigheid *Code `json:"Hoedanigheid,omitempty"`
	Compartiment *Code `json:"Compartiment,omitempty"`
}

type AquoPlusWaarnemingMetadata struct {
	AquoMetadata AquoMetadataFilter `json:"AquoMetadata"`
}

type Locatie struct {
	X    float64 `json:"X"`
	Y    float64 `json:"Y"`
	Code string  `json:"Code"`
}

type Periode struct {
	Begindatumtijd string `json:"Begindatumtijd"`
	Einddatumtijd  string `json:"Einddatumtijd"`
}

type ObservationsRequest struct {
	AquoPlusWaarnemingMetadata AquoPlusWaarnemingMetadata `json:"AquoPlusWaarnemingMetadata"`
	Locatie                    Locatie                    `json:"Locatie"`
	Periode                    Periode                    `json:"Periode"`
}

type Meetwaarde struct {
	WaardeNumeriek *float64 `json:"Waarde_Numeriek"`
}

type WaarnemingMetadata struct {
	StatuswaardeLijst         []string `json:"StatuswaardeLijst"`
	KwaliteitswaardecodeLijst []string `json:"KwaliteitswaardecodeLijst,omitempty"`
}

type Meting struct {
	Tijdstip           string             `json:"Tijdstip"`
	Meetwaarde         Meetwaarde         `json:"Meetwaarde"`
	WaarnemingMetadata WaarnemingMetadata `json:"WaarnemingMetadata"`
}

type Waarneming struct {
	AquoMetadata  Row      `json:"AquoMetadata"`
	Locatie       Row      `json:"Locatie"`
	MetingenLijst []Meting `json:"MetingenLijst"`
}

type ObservationsResponse struct {
	Succesvol         bool         `json:"Succesvol"`
	Foutmelding       string       `json:"Foutmelding,omitempty"`
	WaarnemingenLijst []Waarneming `json:"WaarnemingenLijst"`
}
