package random

import "testing"

func TestNewSeedVaries(t *testing.T) {
	first, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	second, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct seeds, got %d twice", first)
	}
}

func TestNewRandIsDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 10; i++ {
		if x, y := a.Intn(100), b.Intn(100); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestParseSeed(t *testing.T) {
	tcs := []struct {
		in      string
		want    int64
		wantOK  bool
		wantErr bool
	}{
		{in: "", wantOK: false},
		{in: "  ", wantOK: false},
		{in: "12", want: 12, wantOK: true},
		{in: "-7", want: -7, wantOK: true},
		{in: "nope", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tc := range tcs {
		got, ok, err := ParseSeed(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseSeed(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSeed(%q) error = %v", tc.in, err)
		}
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseSeed(%q) = (%d, %t), want (%d, %t)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}
