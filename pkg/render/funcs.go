package render

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cast"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/tabular"
	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// FuncMap builds the template function set for one render call. The
// sprig text functions come for free; on top of them sit the styling
// and layout filters, bound to the resolved theme, the effective mode
// (Auto has already been narrowed to Term or Text by the facade), and
// the line width.
func FuncMap(res *style.Resolved, mode Mode, width int) template.FuncMap {
	fm := sprig.TxtFuncMap()

	fm["style"] = func(value any, name string) string {
		text := cast.ToString(value)
		switch mode {
		case Text:
			return res.ApplyPlain(name, text)
		case TermDebug:
			return res.ApplyDebug(name, text)
		default:
			return res.Apply(name, text)
		}
	}

	fm["style_as"] = func(value any, name string) string {
		text := cast.ToString(value)
		if name == "" {
			return text
		}
		return "[" + name + "]" + text + "[/" + name + "]"
	}

	fm["nl"] = func(value ...any) string {
		var b strings.Builder
		for _, v := range value {
			b.WriteString(cast.ToString(v))
		}
		b.WriteString("\n")
		return b.String()
	}

	fm["col"] = func(value any, colWidth any, opts ...any) (string, error) {
		text := cast.ToString(value)
		w, err := colWidthOf(colWidth, width)
		if err != nil {
			return "", err
		}
		align := textfmt.AlignLeft
		pos := textfmt.TruncateEnd
		marker := textfmt.DefaultMarker
		if len(opts) > 0 {
			if align, err = textfmt.ParseAlign(cast.ToString(opts[0])); err != nil {
				return "", err
			}
		}
		if len(opts) > 1 {
			if pos, err = textfmt.ParseTruncatePos(cast.ToString(opts[1])); err != nil {
				return "", err
			}
		}
		if len(opts) > 2 {
			marker = cast.ToString(opts[2])
		}
		if textfmt.DisplayWidth(text) > w {
			return textfmt.Truncate(text, w, pos, marker), nil
		}
		return textfmt.Pad(text, w, align), nil
	}

	fm["pad_left"] = func(value any, n int) string {
		return textfmt.PadLeft(cast.ToString(value), n)
	}
	fm["pad_right"] = func(value any, n int) string {
		return textfmt.PadRight(cast.ToString(value), n)
	}
	fm["pad_center"] = func(value any, n int) string {
		return textfmt.PadCenter(cast.ToString(value), n)
	}

	fm["truncate_at"] = func(value any, w int, opts ...any) (string, error) {
		pos := textfmt.TruncateEnd
		marker := textfmt.DefaultMarker
		var err error
		if len(opts) > 0 {
			if pos, err = textfmt.ParseTruncatePos(cast.ToString(opts[0])); err != nil {
				return "", err
			}
		}
		if len(opts) > 1 {
			marker = cast.ToString(opts[1])
		}
		return textfmt.Truncate(cast.ToString(value), w, pos, marker), nil
	}

	fm["display_width"] = func(value any) int {
		return textfmt.DisplayWidth(cast.ToString(value))
	}

	fm["tabular"] = func(columns any, opts ...any) (*tabular.Formatter, error) {
		cols, err := tabular.ParseColumns(columns)
		if err != nil {
			return nil, err
		}
		o, err := formatterOpts(opts, width)
		if err != nil {
			return nil, err
		}
		return tabular.NewFormatter(cols, o), nil
	}

	fm["table"] = func(columns any, opts ...any) (*tabular.Table, error) {
		cols, err := tabular.ParseColumns(columns)
		if err != nil {
			return nil, err
		}
		o, err := tableOpts(opts, width)
		if err != nil {
			return nil, err
		}
		return tabular.NewTable(cols, o), nil
	}

	return fm
}

// colWidthOf interprets the width argument of the col filter: an
// integer, or "fill" to take the whole line.
func colWidthOf(v any, line int) (int, error) {
	if s, ok := v.(string); ok && s == "fill" {
		return line, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, "invalid column width %v", v)
	}
	return n, nil
}

// formatterOpts accepts either a single option map or positional
// separator and width arguments.
func formatterOpts(opts []any, width int) (tabular.Options, error) {
	o := tabular.Options{Width: width}
	if len(opts) == 1 {
		if m, err := cast.ToStringMapE(opts[0]); err == nil {
			return formatterOptsMap(m, width)
		}
	}
	if len(opts) > 0 {
		o.Separator = cast.ToString(opts[0])
	}
	if len(opts) > 1 {
		n, err := cast.ToIntE(opts[1])
		if err != nil {
			return o, errors.Newf(errors.ErrInvalidInput, "invalid width %v", opts[1])
		}
		o.Width = n
	}
	return o, nil
}

func formatterOptsMap(m map[string]any, width int) (tabular.Options, error) {
	o := tabular.Options{Width: width}
	for key, v := range m {
		var err error
		switch key {
		case "separator":
			o.Separator = cast.ToString(v)
		case "prefix":
			o.Prefix = cast.ToString(v)
		case "suffix":
			o.Suffix = cast.ToString(v)
		case "width":
			o.Width, err = cast.ToIntE(v)
		default:
			err = errors.Newf(errors.ErrInvalidInput, "unknown tabular option %q", key)
		}
		if err != nil {
			return o, err
		}
	}
	return o, nil
}

// tableOpts accepts either a single option map or positional separator,
// border, and header-flag arguments.
func tableOpts(opts []any, width int) (tabular.TableOptions, error) {
	o := tabular.TableOptions{Width: width}
	if len(opts) == 1 {
		if m, err := cast.ToStringMapE(opts[0]); err == nil {
			return tableOptsMap(m, width)
		}
	}
	var err error
	if len(opts) > 0 {
		o.Separator = cast.ToString(opts[0])
	}
	if len(opts) > 1 {
		if o.Border, err = tabular.ParseBorder(cast.ToString(opts[1])); err != nil {
			return o, err
		}
	}
	if len(opts) > 2 {
		if o.Header, err = cast.ToBoolE(opts[2]); err != nil {
			return o, errors.Newf(errors.ErrInvalidInput, "invalid header flag %v", opts[2])
		}
	}
	return o, nil
}

func tableOptsMap(m map[string]any, width int) (tabular.TableOptions, error) {
	o := tabular.TableOptions{Width: width}
	for key, v := range m {
		var err error
		switch key {
		case "separator":
			o.Separator = cast.ToString(v)
		case "border":
			o.Border, err = tabular.ParseBorder(cast.ToString(v))
		case "header":
			o.Header, err = cast.ToBoolE(v)
		case "header_style":
			o.HeaderStyle = cast.ToString(v)
		case "row_separator":
			o.RowSeparator, err = cast.ToBoolE(v)
		case "width":
			o.Width, err = cast.ToIntE(v)
		default:
			err = errors.Newf(errors.ErrInvalidInput, "unknown table option %q", key)
		}
		if err != nil {
			return o, err
		}
	}
	return o, nil
}
