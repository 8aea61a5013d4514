package display

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// Size selects one of the three fonts of the panel.
type Size uint8

const (
	Small Size = iota
	Medium
	Large
)

func (s Size) String() string {
	switch s {
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "small"
	}
}

// Tag is the single-character size prefix used by the tagged encoding.
func (s Size) Tag() byte {
	return '0' + byte(s)
}

// Budgets is the fixed number of characters each font fits across the panel.
type Budgets struct {
	Small  int `validate:"gt=0"`
	Medium int `validate:"gt=0"`
	Large  int `validate:"gt=0"`
}

// DefaultBudgets fits a 250px wide panel with 8/16/24pt fonts.
func DefaultBudgets() Budgets {
	return Budgets{Small: 48, Medium: 24, Large: 16}
}

func (b Budgets) Width(s Size) int {
	switch s {
	case Medium:
		return b.Medium
	case Large:
		return b.Large
	default:
		return b.Small
	}
}

func (b Budgets) Validate() error {
	if b.Small <= 0 || b.Medium <= 0 || b.Large <= 0 {
		return fmt.Errorf("display budgets must be > 0, got %+v", b)
	}
	return nil
}

type Line struct {
	Size Size   `json:"size"`
	Text string `json:"text"`
}

// Frame is one full screen of lines, top to bottom.
type Frame struct {
	Lines []Line `json:"lines"`
}

func (f Frame) Text() string {
	return string(f.Encode(false))
}

// Encode writes one line per row. Tagged output prefixes each row with its
// size tag (0 small, 1 medium, 2 large).
func (f Frame) Encode(tagged bool) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, line := range f.Lines {
		if tagged {
			_ = buf.WriteByte(line.Size.Tag())
		}
		_, _ = buf.WriteString(line.Text)
		_ = buf.WriteByte('\n')
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}
