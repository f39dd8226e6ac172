package measure

import (
	"errors"
	"testing"
)

func TestRecord_SavedSpace(t *testing.T) {
	tests := []struct {
		original, compressed int
		want                 int64
	}{
		{1000, 29, 971},
		{10, 10, 0},
		{0, 20, -20},
	}

	for _, tt := range tests {
		rec := Record{OriginalSize: tt.original, CompressedSize: tt.compressed}
		got := rec.SavedSpace()
		if got != tt.want {
			t.Errorf("SavedSpace(%d, %d) = %d, want %d", tt.original, tt.compressed, got, tt.want)
		}
		if int64(rec.CompressedSize)+got != int64(rec.OriginalSize) {
			t.Errorf("compressed + saved != original for %+v", rec)
		}
	}
}

func TestMulti(t *testing.T) {
	var a, b []Record
	sink := Multi(
		SinkFunc(func(r Record) error { a = append(a, r); return nil }),
		SinkFunc(func(r Record) error { b = append(b, r); return nil }),
	)

	if err := sink.Emit(Record{Iterations: 7}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("got %d and %d records, want 1 and 1", len(a), len(b))
	}
	if a[0].Iterations != 7 || b[0].Iterations != 7 {
		t.Error("record not forwarded unchanged")
	}
}

func TestMulti_JoinsErrors(t *testing.T) {
	errFirst := errors.New("first")
	var reached bool
	sink := Multi(
		SinkFunc(func(Record) error { return errFirst }),
		SinkFunc(func(Record) error { reached = true; return nil }),
	)

	err := sink.Emit(Record{})
	if !errors.Is(err, errFirst) {
		t.Errorf("Emit() error = %v, want %v", err, errFirst)
	}
	if !reached {
		t.Error("second sink was skipped")
	}
}

func TestMulti_Degenerate(t *testing.T) {
	if _, ok := Multi().(Nop); !ok {
		t.Error("Multi() should return Nop")
	}

	single := SinkFunc(func(Record) error { return nil })
	if _, ok := Multi(single).(SinkFunc); !ok {
		t.Error("Multi(s) should return s")
	}
}
