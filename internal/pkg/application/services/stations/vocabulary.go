package stations

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed vocabulary.yaml
var vocabularyFile []byte

type vocabulary struct {
	StandardNames map[string]string   `yaml:"standardNames"`
	Filters       map[string][]string `yaml:"filters"`
}

// loaded once at start up and never mutated
var vocab = mustLoadVocabulary(vocabularyFile)

func loadVocabulary(b []byte) (*vocabulary, error) {
	v := &vocabulary{}
	if err := yaml.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %s", err.Error())
	}

	filters := make(map[string][]string, len(v.Filters))
	for name, codes := range v.Filters {
		filters[strings.ToUpper(name)] = codes
	}
	v.Filters = filters

	return v, nil
}

func mustLoadVocabulary(b []byte) *vocabulary {
	v, err := loadVocabulary(b)
	if err != nil {
		panic(err)
	}
	return v
}

// StandardName returns the CF standard name for an Aquo quantity code, or "" when the
// code is not mapped.
func StandardName(code string) string {
	return vocab.StandardNames[code]
}

// FilterCodes returns the quantity codes of a named filter group.
func FilterCodes(filter string) ([]string, bool) {
	codes, ok := vocab.Filters[strings.ToUpper(filter)]
	if !ok {
		return nil, false
	}
	return append([]string{}, codes...), true
}

func Filters() []string {
	names := make([]string, 0, len(vocab.Filters))
	for name := range vocab.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
