package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/tabular"
)

// Normalize round-trips a value through JSON so every downstream
// consumer sees the same shape: maps, slices, strings, float64s, bools,
// nil. Handler structs become maps keyed by their JSON tags.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRender, "data is not serializable")
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, errors.ErrRender, "data is not serializable")
	}
	return out, nil
}

// Serialize renders data in a structured mode. The tabular spec only
// matters for CSV, where it selects and orders the columns; pass nil to
// flatten by dotted paths instead.
func Serialize(data any, mode Mode, spec []tabular.Column) (string, error) {
	norm, err := Normalize(data)
	if err != nil {
		return "", err
	}
	switch mode {
	case Json:
		return toJSON(norm)
	case Yaml:
		return toYAML(norm)
	case Xml:
		return toXML(norm)
	case Csv:
		return toCSV(norm, spec)
	default:
		return "", errors.Newf(errors.ErrInternal, "mode %s is not structured", mode)
	}
}

func toJSON(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "json serialization failed")
	}
	return string(raw), nil
}

func toYAML(v any) (string, error) {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "yaml serialization failed")
	}
	return strings.TrimRight(string(raw), "\n"), nil
}

// toXML wraps the value in a single <result> root. Map keys become
// child elements in sorted order, slice elements become <item> nodes,
// scalars become text content.
func toXML(v any) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("result")
	xmlValue(root, v)
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "xml serialization failed")
	}
	return strings.TrimRight(out, "\n"), nil
}

func xmlValue(parent *etree.Element, v any) {
	switch t := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(t) {
			xmlValue(parent.CreateElement(key), t[key])
		}
	case []any:
		for _, item := range t {
			xmlValue(parent.CreateElement("item"), item)
		}
	case nil:
	default:
		parent.SetText(scalarString(t))
	}
}

// toCSV emits a header row plus data rows. A slice serializes one row
// per element; anything else is a single row. With a tabular spec the
// columns come from the spec; without one, nested objects flatten to
// dotted-path columns, the header set being the sorted union across
// rows.
func toCSV(v any, spec []tabular.Column) (string, error) {
	var records []any
	if list, ok := v.([]any); ok {
		records = list
	} else {
		records = []any{v}
	}

	var headers []string
	var rows [][]string
	if len(spec) > 0 {
		headers = specHeaders(spec)
		for _, rec := range records {
			rows = append(rows, specRow(spec, rec))
		}
	} else {
		flat := make([]map[string]string, len(records))
		seen := make(map[string]bool)
		for i, rec := range records {
			flat[i] = make(map[string]string)
			flattenValue("", rec, flat[i])
			for key := range flat[i] {
				if !seen[key] {
					seen[key] = true
					headers = append(headers, key)
				}
			}
		}
		sort.Strings(headers)
		for _, m := range flat {
			row := make([]string, len(headers))
			for j, key := range headers {
				row[j] = m[key]
			}
			rows = append(rows, row)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "csv serialization failed")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, errors.ErrRender, "csv serialization failed")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "csv serialization failed")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func specHeaders(spec []tabular.Column) []string {
	headers := make([]string, len(spec))
	for i, col := range spec {
		switch {
		case col.Header != "":
			headers[i] = col.Header
		case col.Key != "":
			headers[i] = col.Key
		default:
			headers[i] = "column_" + strconv.Itoa(i)
		}
	}
	return headers
}

func specRow(spec []tabular.Column, rec any) []string {
	row := make([]string, len(spec))
	obj, isMap := rec.(map[string]any)
	list, isList := rec.([]any)
	for i, col := range spec {
		var v any
		switch {
		case isMap:
			key := col.Key
			if key == "" {
				key = strings.ToLower(col.Header)
			}
			v = lookupPath(obj, key)
		case isList && i < len(list):
			v = list[i]
		case !isList && i == 0:
			v = rec
		}
		if v == nil {
			row[i] = col.NullRepr
		} else {
			row[i] = scalarString(v)
		}
	}
	return row
}

// lookupPath follows a dotted key path through nested maps.
func lookupPath(obj map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = obj
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// flattenValue records every leaf under its dotted path. Slice indexes
// join the path like map keys; a bare scalar lands under "value".
func flattenValue(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(t) {
			flattenValue(joinPath(prefix, key), t[key], out)
		}
	case []any:
		for i, item := range t {
			flattenValue(joinPath(prefix, strconv.Itoa(i)), item, out)
		}
	default:
		key := prefix
		if key == "" {
			key = "value"
		}
		out[key] = scalarString(t)
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// scalarString formats a normalized leaf. JSON numbers arrive as
// float64; integral values print without the decimal point.
func scalarString(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return cast.ToString(v)
}
