package params

import (
	"errors"
	"strings"
	"testing"
)

func TestKeysOrderAndCount(t *testing.T) {
	keys := Keys()
	if len(keys) != 20 {
		t.Fatalf("expected 20 keys, got %d", len(keys))
	}
	if keys[0] != Levels || keys[len(keys)-1] != TrunkLength {
		t.Errorf("unexpected key order: first=%s last=%s", keys[0], keys[len(keys)-1])
	}

	// Mutating the returned slice must not affect the registry
	keys[0] = "bogus"
	if Keys()[0] != Levels {
		t.Error("Keys() exposed internal state")
	}
}

func TestRangesWellFormed(t *testing.T) {
	for _, d := range Definitions() {
		if d.Range.Min > d.Range.Max {
			t.Errorf("%s: min %v > max %v", d.Key, d.Range.Min, d.Range.Max)
		}
	}
}

func TestRangeOf(t *testing.T) {
	tests := []struct {
		key      Key
		min, max float64
	}{
		{Levels, 0.1, 5},
		{BranchFactor, 2, 4},
		{GrowAmount, -0.5, 1},
		{TwistRate, 0, 10},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			r, err := RangeOf(tt.key)
			if err != nil {
				t.Fatalf("RangeOf(%s): %v", tt.key, err)
			}
			if r.Min != tt.min || r.Max != tt.max {
				t.Errorf("RangeOf(%s) = %+v, want [%v, %v]", tt.key, r, tt.min, tt.max)
			}
		})
	}
}

func TestRangeOfUnknown(t *testing.T) {
	_, err := RangeOf("trunkLenght")
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParameterError, got %v", err)
	}
	if unknown.Key != "trunkLenght" {
		t.Errorf("error key = %q", unknown.Key)
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: -1, Max: 1}
	tests := []struct {
		in, want float64
	}{
		{-5, -1},
		{0.25, 0.25},
		{7, 1},
		{-1, -1},
	}
	for _, tt := range tests {
		if got := r.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetGetAndNormalized(t *testing.T) {
	var s Set
	for i := 0; i < Count; i++ {
		s.Values[i] = At(i).Range.Max
	}
	if got := s.Get(TrunkLength); got != 5 {
		t.Errorf("Get(trunkLength) = %v, want 5", got)
	}
	if got := s.Get("missing"); got != 0 {
		t.Errorf("Get(missing) = %v, want 0", got)
	}
	for i, v := range s.Normalized() {
		if v != 1 {
			t.Errorf("normalized[%d] = %v, want 1", i, v)
		}
	}
	if !s.InRange() {
		t.Error("set at max bounds should be in range")
	}
	s.Values[0] = 99
	if s.InRange() {
		t.Error("set with levels=99 should be out of range")
	}
}

func TestSetFormatIsOrdered(t *testing.T) {
	s := Set{Seed: 262, Segments: 6}
	for i := 0; i < Count; i++ {
		s.Values[i] = At(i).Range.Min
	}
	text := s.Format()

	if !strings.HasPrefix(text, "seed: 262\nsegments: 6\nlevels: 0.100\n") {
		t.Errorf("unexpected prefix:\n%s", text)
	}
	if strings.Index(text, "branchFactor") > strings.Index(text, "trunkLength") {
		t.Error("keys should appear in declaration order")
	}
}
