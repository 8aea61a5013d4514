package flexfield

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

var decodeAPI = sonic.Config{UseNumber: true}.Froze()

// Object is one decoded JSON object. Every accessor takes a prioritized alias
// list: the first alias present (and not null) wins, and its value must have
// the expected shape or the lookup fails.
type Object map[string]any

// Decode parses raw JSON keeping numbers as json.Number.
func Decode(data []byte) (any, error) {
	var out any
	if err := decodeAPI.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func DecodeObject(data []byte) (Object, bool) {
	raw, err := Decode(data)
	if err != nil {
		return nil, false
	}
	return AsObject(raw)
}

func AsObject(v any) (Object, bool) {
	switch value := v.(type) {
	case Object:
		return value, value != nil
	case map[string]any:
		return Object(value), value != nil
	default:
		return nil, false
	}
}

func (o Object) Lookup(aliases ...string) (any, bool) {
	for _, alias := range aliases {
		value, ok := o[alias]
		if ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func (o Object) Has(aliases ...string) bool {
	_, ok := o.Lookup(aliases...)
	return ok
}

func (o Object) String(aliases ...string) (string, bool) {
	value, ok := o.Lookup(aliases...)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

func (o Object) StringOr(fallback string, aliases ...string) string {
	if text, ok := o.String(aliases...); ok {
		return text
	}
	return fallback
}

func (o Object) Scalar(aliases ...string) (Scalar, bool) {
	value, ok := o.Lookup(aliases...)
	if !ok {
		return Scalar{}, false
	}
	return ScalarFrom(value)
}

func (o Object) Uint(aliases ...string) (uint64, bool) {
	value, ok := o.Scalar(aliases...)
	if !ok {
		return 0, false
	}
	return value.Uint()
}

// UintOr returns fallback when the field is absent or not numeric.
func (o Object) UintOr(fallback uint64, aliases ...string) uint64 {
	if n, ok := o.Uint(aliases...); ok {
		return n
	}
	return fallback
}

func (o Object) Bool(aliases ...string) (bool, bool) {
	value, ok := o.Lookup(aliases...)
	if !ok {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return parsed, err == nil
	default:
		n, ok := ScalarFrom(v)
		if !ok {
			return false, false
		}
		u, _ := n.Uint()
		return u != 0, u <= 1
	}
}

func (o Object) Time(aliases ...string) (time.Time, bool) {
	text, ok := o.String(aliases...)
	if !ok {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

func (o Object) Object(aliases ...string) (Object, bool) {
	value, ok := o.Lookup(aliases...)
	if !ok {
		return nil, false
	}
	return AsObject(value)
}

func (o Object) Array(aliases ...string) ([]any, bool) {
	value, ok := o.Lookup(aliases...)
	if !ok {
		return nil, false
	}
	items, ok := value.([]any)
	return items, ok
}
