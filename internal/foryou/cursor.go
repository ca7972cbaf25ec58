package foryou

import "time"

// Cursors are opaque to clients but are really the createdAt of the last item
// of the previous page, RFC3339 with nanoseconds.
const cursorLayout = time.RFC3339Nano

// parseCursor returns nil for an absent or unparseable cursor: a bad cursor
// means "first page", never a rejected request.
func parseCursor(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(cursorLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatCursor(t time.Time) string {
	return t.Format(cursorLayout)
}
