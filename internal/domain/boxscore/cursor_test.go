package boxscore

import "testing"

func TestCursor_RoundRobinOverPopulatedCategories(t *testing.T) {
	t.Parallel()

	var box BoxScore
	box.observe(CategoryBlocks, "Gobert", 3)
	box.observe(CategoryPoints, "Edwards", 31)
	box.observe(CategoryDefensiveRebounds, "Gobert", 11)

	var cursor Cursor
	var seen []Category
	for range 5 {
		c, _, next, ok := box.Next(cursor)
		if !ok {
			t.Fatalf("expected a populated category")
		}
		seen = append(seen, c)
		cursor = next
	}

	want := []Category{CategoryBlocks, CategoryPoints, CategoryDefensiveRebounds, CategoryBlocks, CategoryPoints}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d: got %s want %s (all=%v)", i, seen[i], want[i], seen)
		}
	}
}

func TestCursor_EmptyBoxScore(t *testing.T) {
	t.Parallel()

	cursor := Cursor{Index: 7}
	_, _, next, ok := BoxScore{}.Next(cursor)
	if ok {
		t.Fatalf("empty box score has nothing to show")
	}
	if next != cursor {
		t.Fatalf("cursor must not move, got %+v", next)
	}
}

func TestCategory_Labels(t *testing.T) {
	t.Parallel()

	want := []string{"Assists", "Blocks", "Fouled", "Fouler", "Steals", "Turnovers", "Points", "Paint Pts", "Threes", "Rebounds(*)", "Rebounds(o)", "Rebounds(d)"}
	for i, label := range want {
		if got := Category(i).Label(); got != label {
			t.Fatalf("category %d: got %q want %q", i, got, label)
		}
	}
	if Category(CategoryCount).Valid() {
		t.Fatalf("out of range category must be invalid")
	}
}
