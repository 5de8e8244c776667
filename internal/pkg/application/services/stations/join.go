package stations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
)

// table is a relation with lowercased, sorted column names.
type table struct {
	columns []string
	rows    []map[string]json.RawMessage
}

func newTable(rows []rws.Row) table {
	t := table{
		columns: []string{},
		rows:    make([]map[string]json.RawMessage, 0, len(rows)),
	}

	seen := map[string]bool{}

	for _, r := range rows {
		row := make(map[string]json.RawMessage, len(r))
		for k, v := range r {
			col := strings.ToLower(k)
			if existing, ok := row[col]; ok && !isNull(existing) {
				continue
			}
			row[col] = v
		}

		for col := range row {
			if !seen[col] {
				seen[col] = true
				t.columns = append(t.columns, col)
			}
		}

		t.rows = append(t.rows, row)
	}

	sort.Strings(t.columns)

	return t
}

func (t table) has(col string) bool {
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

// naturalJoin returns the inner join of left and right on every column they share.
// Rows keep the order of the left relation; rows with a missing or null key are dropped.
func naturalJoin(left, right table) (table, error) {
	common := []string{}
	for _, c := range left.columns {
		if right.has(c) {
			common = append(common, c)
		}
	}

	if len(common) == 0 {
		return table{}, fmt.Errorf("%w: relations share no columns", domain.ErrCatalogJoinInvariant)
	}

	index := map[string][]int{}
	for i, row := range right.rows {
		if key, ok := joinKey(row, common); ok {
			index[key] = append(index[key], i)
		}
	}

	result := table{columns: append([]string{}, left.columns...)}
	for _, c := range right.columns {
		if !left.has(c) {
			result.columns = append(result.columns, c)
		}
	}

	for _, l := range left.rows {
		key, ok := joinKey(l, common)
		if !ok {
			continue
		}

		for _, i := range index[key] {
			merged := make(map[string]json.RawMessage, len(l)+len(right.rows[i]))
			for k, v := range l {
				merged[k] = v
			}
			for k, v := range right.rows[i] {
				if _, ok := merged[k]; !ok {
					merged[k] = v
				}
			}
			result.rows = append(result.rows, merged)
		}
	}

	return result, nil
}

func joinKey(row map[string]json.RawMessage, columns []string) (string, bool) {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		v, ok := row[c]
		if !ok || isNull(v) {
			return "", false
		}
		parts = append(parts, canonical(v))
	}
	return strings.Join(parts, "\x1f"), true
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// canonical renders a json value so that equal values compare equal as strings,
// e.g. 1 and 1.0. Strings and numbers never match each other.
func canonical(v json.RawMessage) string {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return "s:" + s
		}
	case '{', '[', 't', 'f':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return "j:" + buf.String()
		}
	default:
		if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
			return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
		}
	}

	return "r:" + string(trimmed)
}

func decodeRow(row map[string]json.RawMessage, v any) error {
	b, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
