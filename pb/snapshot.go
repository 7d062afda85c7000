package pb

import (
	"errors"
	"fmt"
	"strings"

	"touchtris/tetris"

	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot is what the mirror sees of a session. Rows hold one digit per
// cell, the color index of the board with the falling piece on top.
type Snapshot struct {
	Session string
	State   string
	Width   int
	Height  int
	Rows    []string
	Lines   int
}

func NewSnapshot(session string, t *tetris.Tetris) *Snapshot {
	w, h := t.Board.Width(), t.Board.Height()
	rows := make([]string, h)
	var b strings.Builder
	for y := range h {
		b.Reset()
		for x := range w {
			b.WriteByte('0' + byte(t.Color(x, y)))
		}
		rows[y] = b.String()
	}
	return &Snapshot{
		Session: session,
		State:   t.State.String(),
		Width:   w,
		Height:  h,
		Rows:    rows,
		Lines:   t.LinesClear,
	}
}

func (s *Snapshot) Proto() (*structpb.Struct, error) {
	rows := make([]any, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = r
	}
	return structpb.NewStruct(map[string]any{
		"session": s.Session,
		"state":   s.State,
		"width":   s.Width,
		"height":  s.Height,
		"rows":    rows,
		"lines":   s.Lines,
	})
}

var ErrMalformed = errors.New("malformed snapshot")

// SnapshotFromProto decodes and validates a snapshot.
func SnapshotFromProto(m *structpb.Struct) (*Snapshot, error) {
	f := m.GetFields()
	s := &Snapshot{
		Session: f["session"].GetStringValue(),
		State:   f["state"].GetStringValue(),
		Width:   int(f["width"].GetNumberValue()),
		Height:  int(f["height"].GetNumberValue()),
		Lines:   int(f["lines"].GetNumberValue()),
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrMalformed, s.Width, s.Height)
	}
	values := f["rows"].GetListValue().GetValues()
	if len(values) != s.Height {
		return nil, fmt.Errorf("%w: %d rows for height %d", ErrMalformed, len(values), s.Height)
	}
	s.Rows = make([]string, len(values))
	for i, v := range values {
		r := v.GetStringValue()
		if len(r) != s.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformed, i, len(r))
		}
		for _, c := range []byte(r) {
			if c < '0' || c > '0'+tetris.Colors {
				return nil, fmt.Errorf("%w: row %d has color %q", ErrMalformed, i, c)
			}
		}
		s.Rows[i] = r
	}
	return s, nil
}
