package core

import (
	"errors"
	"testing"
	"time"
)

func TestSignalDuration(t *testing.T) {
	s := NewSignal(make([]float64, 22050), 44100)
	if s.Len() != 22050 {
		t.Fatalf("Len() = %d, want 22050", s.Len())
	}
	if s.Duration() != 0.5 {
		t.Fatalf("Duration() = %v, want 0.5", s.Duration())
	}
	if s.TimeDuration() != 500*time.Millisecond {
		t.Fatalf("TimeDuration() = %v, want 500ms", s.TimeDuration())
	}
	if (Signal{}).Duration() != 0 {
		t.Fatal("zero signal should have zero duration")
	}
}

func TestSignalValidate(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want error
	}{
		{name: "ok", sig: NewSignal([]float64{1}, 8000)},
		{name: "empty", sig: NewSignal(nil, 8000), want: ErrEmptySignal},
		{name: "rate", sig: NewSignal([]float64{1}, 0), want: ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sig.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSignalSliceClamps(t *testing.T) {
	s := NewSignal([]float64{0, 1, 2, 3, 4}, 10)

	if got := s.Slice(3, 10).Samples; len(got) != 2 || got[0] != 3 {
		t.Fatalf("Slice(3, 10) = %v", got)
	}
	if got := s.Slice(-1, 2).Samples; len(got) != 2 || got[0] != 0 {
		t.Fatalf("Slice(-1, 2) = %v", got)
	}
	if got := s.Slice(9, 2).Samples; len(got) != 0 {
		t.Fatalf("Slice(9, 2) = %v, want empty", got)
	}
	if got := s.Head(256); len(got) != 5 {
		t.Fatalf("Head(256) len = %d, want 5", len(got))
	}
}

func TestSignalSliceSharesStorage(t *testing.T) {
	s := NewSignal([]float64{1, 2, 3}, 10)
	v := s.Slice(1, 1)
	v.Samples[0] = 9
	if s.Samples[1] != 9 {
		t.Fatal("Slice should share the backing array")
	}
}

func TestSignalClone(t *testing.T) {
	s := NewSignal([]float64{1, 2, 3}, 10)
	c := s.Clone()
	c.Samples[0] = 7
	if s.Samples[0] != 1 {
		t.Fatal("Clone should not share the backing array")
	}
	if c.SampleRate != 10 {
		t.Fatalf("SampleRate = %d, want 10", c.SampleRate)
	}
}
