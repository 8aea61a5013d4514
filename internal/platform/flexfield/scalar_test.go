package flexfield

import (
	"encoding/json"
	"testing"

	"github.com/bytedance/sonic"
)

func TestScalar_NumberAndTextCompareEqualToString(t *testing.T) {
	t.Parallel()

	fromNumber, ok := ScalarFrom(json.Number("1610612750"))
	if !ok {
		t.Fatalf("expected numeric scalar")
	}
	fromText, ok := ScalarFrom("1610612750")
	if !ok {
		t.Fatalf("expected text scalar")
	}

	if !fromNumber.EqualString("1610612750") || !fromText.EqualString("1610612750") {
		t.Fatalf("both forms must equal the text id: number=%q text=%q", fromNumber, fromText)
	}
	if fromNumber.Kind() != ScalarNumber || fromText.Kind() != ScalarText {
		t.Fatalf("unexpected kinds: %d %d", fromNumber.Kind(), fromText.Kind())
	}
	if fromNumber == fromText {
		t.Fatalf("structural equality must still distinguish the two forms")
	}
}

func TestScalarFrom_RejectsNonIntegers(t *testing.T) {
	t.Parallel()

	for _, v := range []any{json.Number("1.5"), json.Number("-3"), 2.25, -1.0, true, map[string]any{}, nil} {
		if _, ok := ScalarFrom(v); ok {
			t.Fatalf("expected %v (%T) to be rejected", v, v)
		}
	}
	if s, ok := ScalarFrom(float64(104)); !ok || !s.EqualString("104") {
		t.Fatalf("integral float should be accepted, got %q ok=%v", s, ok)
	}
}

func TestScalar_Uint(t *testing.T) {
	t.Parallel()

	if n, ok := Text(" 98 ").Uint(); !ok || n != 98 {
		t.Fatalf("expected 98 from text, got %d ok=%v", n, ok)
	}
	if _, ok := Text("W").Uint(); ok {
		t.Fatalf("non-numeric text must not parse")
	}
	if _, ok := (Scalar{}).Uint(); ok {
		t.Fatalf("absent scalar must not parse")
	}
}

func TestScalar_JSONKeepsWireForm(t *testing.T) {
	t.Parallel()

	type holder struct {
		ID    Scalar `json:"id"`
		Score Scalar `json:"score"`
		Bonus Scalar `json:"bonus"`
	}

	raw, err := sonic.Marshal(holder{ID: Text("0022600101"), Score: Number(112)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"id":"0022600101","score":112,"bonus":null}` {
		t.Fatalf("unexpected json: %s", raw)
	}

	var back holder
	if err := sonic.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != Text("0022600101") || back.Score != Number(112) || !back.Bonus.IsZero() {
		t.Fatalf("unexpected decoded holder: %+v", back)
	}

	var bad Scalar
	if err := bad.UnmarshalJSON([]byte("-4")); err == nil {
		t.Fatalf("expected negative number to fail")
	}
}
