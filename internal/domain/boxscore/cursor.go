package boxscore

// Cursor walks the populated categories round-robin across renders. The zero
// value starts at assists.
type Cursor struct {
	Index uint8 `json:"index"`
}

// Next returns the first populated category at or after the cursor, wrapping
// around, and the cursor positioned just past it.
func (b BoxScore) Next(c Cursor) (Category, TopPlayer, Cursor, bool) {
	start := int(c.Index) % CategoryCount
	for step := 0; step < CategoryCount; step++ {
		idx := (start + step) % CategoryCount
		if leader, ok := b.Leader(Category(idx)); ok {
			return Category(idx), leader, Cursor{Index: uint8((idx + 1) % CategoryCount)}, true
		}
	}
	return 0, TopPlayer{}, c, false
}
