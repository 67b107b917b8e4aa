package metadata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"movietag/internal/services"
)

const dateLayout = "2006-01-02"

// formatField renders raw according to spec. The boolean is false when the
// value is present but empty (zero amounts, blank strings, empty lists).
func formatField(spec FieldSpec, raw any) (Value, bool, error) {
	switch spec.Shape {
	case ShapeCurrency:
		return formatCurrency(spec, raw)
	case ShapeDate:
		return formatDate(spec, raw)
	case ShapeList:
		return formatList(spec, raw)
	case ShapeScalar:
		return formatScalar(spec, raw)
	default:
		return formatAuto(spec, raw)
	}
}

func formatAuto(spec FieldSpec, raw any) (Value, bool, error) {
	switch v := raw.(type) {
	case []any:
		return formatList(spec, v)
	case map[string]any:
		if name := pickItemKey(v, spec.ItemKeys); name != "" {
			return Text(name), true, nil
		}
		return Value{}, false, shapeError(spec, "object value has no displayable name")
	default:
		return formatScalar(spec, raw)
	}
}

func formatCurrency(spec FieldSpec, raw any) (Value, bool, error) {
	amount, ok := toInt64(raw)
	if !ok {
		return Value{}, false, shapeError(spec, fmt.Sprintf("expected a number, got %T", raw))
	}
	if amount == 0 {
		return Value{}, false, nil
	}
	return Text(FormatCurrency(amount)), true, nil
}

// FormatCurrency renders a whole-dollar amount as "$15,000,000".
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

func formatDate(spec FieldSpec, raw any) (Value, bool, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, false, shapeError(spec, fmt.Sprintf("expected a date string, got %T", raw))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, false, nil
	}
	if parsed, err := time.Parse(dateLayout, s); err == nil {
		return Text(parsed.Format(dateLayout)), true, nil
	}
	return Text(s), true, nil
}

func formatList(spec FieldSpec, raw any) (Value, bool, error) {
	items, ok := raw.([]any)
	if !ok {
		return Value{}, false, shapeError(spec, fmt.Sprintf("expected a list, got %T", raw))
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		var text string
		switch v := item.(type) {
		case map[string]any:
			text = pickItemKey(v, spec.ItemKeys)
		default:
			text, _ = scalarString(v)
		}
		if text = strings.TrimSpace(text); text != "" {
			values = append(values, text)
		}
	}
	if len(values) == 0 {
		return Value{}, false, nil
	}
	if spec.Separator != "" && spec.Separator != ListSeparator {
		return Text(strings.Join(values, spec.Separator)), true, nil
	}
	return List(values...), true, nil
}

func formatScalar(spec FieldSpec, raw any) (Value, bool, error) {
	text, ok := scalarString(raw)
	if !ok {
		return Value{}, false, shapeError(spec, fmt.Sprintf("unsupported value type %T", raw))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Value{}, false, nil
	}
	return Text(text), true, nil
}

func scalarString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return int64(math.Round(f)), true
	case float64:
		return int64(math.Round(v)), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func pickItemKey(obj map[string]any, keys []string) string {
	if len(keys) == 0 {
		keys = nameKeys
	}
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func shapeError(spec FieldSpec, message string) error {
	return services.Wrap(services.ErrPartialField, "metadata", "format "+spec.Path, message, nil)
}
