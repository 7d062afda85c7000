package pb

import (
	"errors"
	"testing"

	"touchtris/tetris"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestNewSnapshot(t *testing.T) {
	tts := tetris.NewTestTetris(tetris.T)
	tts.Board.Merge(tetris.Piece{Shape: tetris.I, X: 0, Y: 19, Color: 4})
	tts.LinesClear = 3

	got := NewSnapshot("abc", tts)
	if got.State != "running" || got.Width != 10 || got.Height != 20 || got.Lines != 3 {
		t.Errorf("unexpected header %+v", got)
	}
	want := map[int]string{
		0:  "0000010000",
		1:  "0000111000",
		2:  "0000000000",
		19: "4444000000",
	}
	for y, row := range want {
		if got.Rows[y] != row {
			t.Errorf("row %d: want %q, got %q", y, row, got.Rows[y])
		}
	}

	m, err := got.Proto()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := SnapshotFromProto(m)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(got, back); diff != "" {
		t.Errorf("snapshot changed on the wire (-want +got):\n%s", diff)
	}
}

func TestSnapshotFromProtoRejects(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
	}{
		{name: "empty", fields: map[string]any{}},
		{name: "missing rows", fields: map[string]any{"width": 2, "height": 1}},
		{name: "short row", fields: map[string]any{"width": 2, "height": 1, "rows": []any{"0"}}},
		{name: "bad color", fields: map[string]any{"width": 2, "height": 1, "rows": []any{"07"}}},
		{name: "not a digit", fields: map[string]any{"width": 2, "height": 1, "rows": []any{"0x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := structpb.NewStruct(tt.fields)
			if err != nil {
				t.Fatalf("building struct: %v", err)
			}
			if _, err := SnapshotFromProto(m); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
