package flexfield

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

type ScalarKind uint8

const (
	ScalarAbsent ScalarKind = iota
	ScalarText
	ScalarNumber
)

// Scalar holds a value the feeds send either as text or as a non-negative
// integer. Comparisons against text go through String, so 1610612750 and
// "1610612750" match the same team id.
type Scalar struct {
	kind   ScalarKind
	text   string
	number uint64
}

func Text(v string) Scalar {
	return Scalar{kind: ScalarText, text: v}
}

func Number(v uint64) Scalar {
	return Scalar{kind: ScalarNumber, number: v}
}

// ScalarFrom converts a decoded JSON value. Fractional or negative numbers
// are rejected.
func ScalarFrom(v any) (Scalar, bool) {
	switch value := v.(type) {
	case Scalar:
		return value, value.kind != ScalarAbsent
	case string:
		return Text(value), true
	case json.Number:
		n, err := strconv.ParseUint(value.String(), 10, 64)
		if err != nil {
			return Scalar{}, false
		}
		return Number(n), true
	case float64:
		if value < 0 || value != math.Trunc(value) || value > 1<<53 {
			return Scalar{}, false
		}
		return Number(uint64(value)), true
	case int:
		if value < 0 {
			return Scalar{}, false
		}
		return Number(uint64(value)), true
	case int64:
		if value < 0 {
			return Scalar{}, false
		}
		return Number(uint64(value)), true
	case uint64:
		return Number(value), true
	case uint32:
		return Number(uint64(value)), true
	case uint16:
		return Number(uint64(value)), true
	case uint8:
		return Number(uint64(value)), true
	default:
		return Scalar{}, false
	}
}

func (s Scalar) Kind() ScalarKind {
	return s.kind
}

func (s Scalar) IsZero() bool {
	return s.kind == ScalarAbsent
}

func (s Scalar) String() string {
	switch s.kind {
	case ScalarText:
		return s.text
	case ScalarNumber:
		return strconv.FormatUint(s.number, 10)
	default:
		return ""
	}
}

func (s Scalar) EqualString(other string) bool {
	return s.kind != ScalarAbsent && s.String() == other
}

// Uint reads the scalar as a number, parsing text forms such as "104".
func (s Scalar) Uint() (uint64, bool) {
	switch s.kind {
	case ScalarNumber:
		return s.number, true
	case ScalarText:
		n, err := strconv.ParseUint(strings.TrimSpace(s.text), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScalarText:
		return sonic.Marshal(s.text)
	case ScalarNumber:
		return []byte(strconv.FormatUint(s.number, 10)), nil
	default:
		return []byte("null"), nil
	}
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*s = Scalar{}
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Text(text)
		return nil
	default:
		n, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "number " + trimmed, Type: reflect.TypeOf(Scalar{})}
		}
		*s = Number(n)
		return nil
	}
}
