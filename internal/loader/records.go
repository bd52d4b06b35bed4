package loader

import (
	"encoding/json"
	"github.com/myrjola/dialogtree/internal/errors"
	"log/slog"
	"os"
	"strconv"
)

// record is one flat source object. Field access goes through the helpers
// below so that every entity decoder shares the same missing-field and
// type-coercion tolerance.
type record map[string]any

// readRecords reads a JSON export that is either a bare array of flat objects
// or, in the fixed export variant, a single-key wrapper object whose sole
// value is that array. Elements that are not objects count as skipped.
func readRecords(path string) ([]record, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, errors.Wrap(ErrMissingFile, "read export", slog.String("path", path))
		}
		return nil, 0, errors.Wrap(err, "read export", slog.String("path", path))
	}

	var raw any
	if err = json.Unmarshal(data, &raw); err != nil {
		return nil, 0, errors.Wrap(ErrParse, err.Error(), slog.String("path", path))
	}

	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case map[string]any:
		if len(v) != 1 {
			return nil, 0, errors.Wrap(ErrParse, "wrapper object must have exactly one key",
				slog.String("path", path), slog.Int("keys", len(v)))
		}
		for _, inner := range v {
			innerList, ok := inner.([]any)
			if !ok {
				return nil, 0, errors.Wrap(ErrParse, "wrapper value is not an array", slog.String("path", path))
			}
			list = innerList
		}
	default:
		return nil, 0, errors.Wrap(ErrParse, "export is neither an array nor a wrapper object",
			slog.String("path", path))
	}

	records := make([]record, 0, len(list))
	skipped := 0
	for _, element := range list {
		obj, ok := element.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record(obj))
	}
	return records, skipped, nil
}

// text returns the first present string value among the given keys. Alternate
// keys exist because the export variants disagree on field naming.
func (r record) text(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString {
			return s, true
		}
	}
	return "", false
}

// integer returns the first present integral value among the given keys.
// Exports deliver numbers as JSON floats and occasionally as strings.
func (r record) integer(keys ...string) (int64, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int64(n), true
		case json.Number:
			if parsed, err := n.Int64(); err == nil {
				return parsed, true
			}
		case string:
			if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}
