package tabular

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// toSlice normalizes any slice or array value to []any. cast only
// understands []interface{}, but template data can surface typed slices.
func toSlice(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Newf(errors.ErrInvalidInput, "expected a list, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// ParseColumns converts a template-level column list into specs. Each
// element is an integer (fixed width), a width string ("fill", "2fr", or
// a number), or a map with any of the column fields:
//
//	width, min, max, fraction, align, overflow, style, style_from_value,
//	null_repr, header, key, right_anchor, sub_columns, sub_separator
func ParseColumns(v any) ([]Column, error) {
	if cols, ok := v.([]Column); ok {
		return cols, nil
	}
	items, err := toSlice(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "columns must be a list")
	}
	cols := make([]Column, 0, len(items))
	for i, item := range items {
		col, err := ParseColumn(item)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "column %d", i)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// ParseColumn converts a single column spec value.
func ParseColumn(v any) (Column, error) {
	col := NewColumn()

	switch spec := v.(type) {
	case Column:
		return spec, nil
	case nil:
		return col, nil
	case string:
		w, err := parseWidthString(spec)
		if err != nil {
			return col, err
		}
		col.Width = w
		return col, nil
	}

	if n, err := cast.ToIntE(v); err == nil {
		col.Width = Fixed(n)
		return col, nil
	}

	m, err := cast.ToStringMapE(v)
	if err != nil {
		return col, errors.Newf(errors.ErrInvalidInput, "invalid column spec %v", v)
	}
	return parseColumnMap(m)
}

func parseColumnMap(m map[string]any) (Column, error) {
	col := NewColumn()

	if w, ok := m["width"]; ok {
		parsed, err := parseWidth(w)
		if err != nil {
			return col, err
		}
		col.Width = parsed
	}
	if f, ok := m["fraction"]; ok {
		k, err := cast.ToIntE(f)
		if err != nil || k < 1 {
			return col, errors.Newf(errors.ErrInvalidInput, "invalid fraction %v", f)
		}
		col.Width = Fraction(k)
	}
	if col.Width.Kind == WidthBounded {
		if v, ok := m["min"]; ok {
			n, err := cast.ToIntE(v)
			if err != nil {
				return col, errors.Wrap(err, errors.ErrInvalidInput, "invalid min")
			}
			col.Width.Min = n
		}
		if v, ok := m["max"]; ok {
			n, err := cast.ToIntE(v)
			if err != nil {
				return col, errors.Wrap(err, errors.ErrInvalidInput, "invalid max")
			}
			col.Width.Max = n
		}
	}

	if v, ok := m["align"]; ok {
		align, err := textfmt.ParseAlign(cast.ToString(v))
		if err != nil {
			return col, err
		}
		col.Align = align
	}
	if v, ok := m["overflow"]; ok {
		overflow, err := ParseOverflow(v)
		if err != nil {
			return col, err
		}
		col.Overflow = overflow
	}

	col.Style = cast.ToString(m["style"])
	col.StyleFromValue = cast.ToBool(m["style_from_value"])
	col.NullRepr = cast.ToString(m["null_repr"])
	col.Header = cast.ToString(m["header"])
	col.Key = cast.ToString(m["key"])
	col.RightAnchor = cast.ToBool(m["right_anchor"])

	if v, ok := m["sub_columns"]; ok {
		sub, err := ParseColumns(v)
		if err != nil {
			return col, errors.Wrap(err, errors.ErrInvalidInput, "sub_columns")
		}
		col.Sub = sub
		col.SubSeparator = " "
		if sep, ok := m["sub_separator"]; ok {
			col.SubSeparator = cast.ToString(sep)
		}
	}
	return col, nil
}

func parseWidth(v any) (Width, error) {
	if s, ok := v.(string); ok {
		return parseWidthString(s)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return Width{}, errors.Newf(errors.ErrInvalidInput, "invalid width %v", v)
	}
	return Fixed(n), nil
}

func parseWidthString(s string) (Width, error) {
	if s == "fill" {
		return Fill(), nil
	}
	if rest, ok := strings.CutSuffix(s, "fr"); ok {
		k, err := cast.ToIntE(rest)
		if err != nil || k < 1 {
			return Width{}, errors.Newf(errors.ErrInvalidInput, "invalid fraction width %q", s)
		}
		return Fraction(k), nil
	}
	n, err := cast.ToIntE(s)
	if err != nil {
		return Width{}, errors.Newf(errors.ErrInvalidInput, "invalid width %q", s)
	}
	return Fixed(n), nil
}

// ParseOverflow converts an overflow spec value. Short strings name a
// strategy; maps configure one:
//
//	"truncate" | "truncate_start" | "truncate_middle" | "wrap" | "clip" | "expand"
//	{"truncate": {"at": "middle", "marker": "~"}}
//	{"wrap": {"indent": 2}}
func ParseOverflow(v any) (Overflow, error) {
	if s, ok := v.(string); ok {
		return parseOverflowString(s)
	}

	m, err := cast.ToStringMapE(v)
	if err != nil {
		return Overflow{}, errors.Newf(errors.ErrInvalidInput, "invalid overflow spec %v", v)
	}
	if cfg, ok := m["truncate"]; ok {
		o := TruncateOverflow()
		opts, err := cast.ToStringMapE(cfg)
		if err != nil {
			return o, errors.Newf(errors.ErrInvalidInput, "invalid truncate options %v", cfg)
		}
		if at, ok := opts["at"]; ok {
			pos, err := textfmt.ParseTruncatePos(cast.ToString(at))
			if err != nil {
				return o, err
			}
			o.At = pos
		}
		if marker, ok := opts["marker"]; ok {
			o.Marker = cast.ToString(marker)
		}
		return o, nil
	}
	if cfg, ok := m["wrap"]; ok {
		o := Overflow{Kind: OverflowWrap}
		opts, err := cast.ToStringMapE(cfg)
		if err != nil {
			return o, errors.Newf(errors.ErrInvalidInput, "invalid wrap options %v", cfg)
		}
		o.Indent = cast.ToInt(opts["indent"])
		return o, nil
	}
	return Overflow{}, errors.Newf(errors.ErrInvalidInput, "invalid overflow spec %v", v)
}

func parseOverflowString(s string) (Overflow, error) {
	switch s {
	case "truncate", "":
		return TruncateOverflow(), nil
	case "truncate_start":
		o := TruncateOverflow()
		o.At = textfmt.TruncateStart
		return o, nil
	case "truncate_middle":
		o := TruncateOverflow()
		o.At = textfmt.TruncateMiddle
		return o, nil
	case "wrap":
		return Overflow{Kind: OverflowWrap}, nil
	case "clip":
		return Overflow{Kind: OverflowClip}, nil
	case "expand":
		return Overflow{Kind: OverflowExpand}, nil
	default:
		return Overflow{}, errors.Newf(errors.ErrInvalidInput, "invalid overflow %q", s)
	}
}
