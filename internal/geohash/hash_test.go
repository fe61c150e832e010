package geohash

import (
	"math"
	"testing"
)

func TestEncodeInvalidCoordinate(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
	}{
		{"lon too high", Coordinate{X: 200, Y: 0}},
		{"lon too low", Coordinate{X: -200, Y: 0}},
		{"lat too high", Coordinate{X: 0, Y: 95}},
		{"lat too low", Coordinate{X: 0, Y: -95}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.c, 10); err == nil {
				t.Fatal("expected InvalidCoordinateError, got nil")
			} else if _, ok := err.(*InvalidCoordinateError); !ok {
				t.Fatalf("expected *InvalidCoordinateError, got %T", err)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	c := Coordinate{X: -126.4, Y: 45.3}
	h1, err := Encode(c, 12)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Encode(c, 12)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("encode not deterministic: %q != %q", h1, h2)
	}
	if len(h1) != 12 {
		t.Fatalf("expected length 12, got %d (%q)", len(h1), h1)
	}
}

// TestDecodeCenterWithinArea checks property 4: decode_center(encode(c,r))
// lies within decode_area(encode(c,r)).
func TestDecodeCenterWithinArea(t *testing.T) {
	coords := []Coordinate{
		{X: -126.4, Y: 45.3},
		{X: 0, Y: 0},
		{X: 179.999, Y: 89.999},
		{X: -179.999, Y: -89.999},
		{X: 2.3522, Y: 48.8566},
	}
	for _, c := range coords {
		for _, res := range []int{1, 5, 8, 12, 16} {
			h, err := Encode(c, res)
			if err != nil {
				t.Fatal(err)
			}
			area, err := DecodeArea(h)
			if err != nil {
				t.Fatal(err)
			}
			center, err := DecodeCenter(h)
			if err != nil {
				t.Fatal(err)
			}
			if center.X < area.MinX || center.X > area.MaxX || center.Y < area.MinY || center.Y > area.MaxY {
				t.Fatalf("center %v not within area %v for hash %q", center, area, h)
			}
			// Original coordinate must fall within the decoded cell too.
			if c.X < area.MinX || c.X > area.MaxX || c.Y < area.MinY || c.Y > area.MaxY {
				t.Fatalf("original coord %v not within decoded area %v for hash %q (res %d)", c, area, h, res)
			}
		}
	}
}

func TestDecodeAreaShrinksWithResolution(t *testing.T) {
	c := Coordinate{X: -126.4, Y: 45.3}
	var prevWidth float64 = math.Inf(1)
	for res := 1; res <= 16; res++ {
		h, err := Encode(c, res)
		if err != nil {
			t.Fatal(err)
		}
		area, err := DecodeArea(h)
		if err != nil {
			t.Fatal(err)
		}
		width := area.MaxX - area.MinX
		if width > prevWidth {
			t.Fatalf("resolution %d area wider than resolution %d: %f > %f", res, res-1, width, prevWidth)
		}
		prevWidth = width
	}
}

func TestMatchClasses(t *testing.T) {
	tests := []struct {
		a, b     Hash
		maxLen   int
		class    MatchClass
		aTail    Hash
		bTail    Hash
	}{
		{"abcde", "abcde", 5, MatchSame, "", ""},
		{"", "abcde", 5, MatchGlobal, "", "abcde"},
		{"abc", "abcde", 5, MatchChild, "", "de"},
		{"abcde", "abcpq", 5, MatchSplit, "de", "pq"},
		{"abc", "1abc", 5, MatchNone, "abc", "1abc"},
	}
	for _, tt := range tests {
		t.Run(string(tt.a)+"_"+string(tt.b), func(t *testing.T) {
			class, aTail, bTail := Match(tt.a, tt.b, tt.maxLen)
			if class != tt.class {
				t.Errorf("class = %v, want %v", class, tt.class)
			}
			if aTail != tt.aTail {
				t.Errorf("aTail = %q, want %q", aTail, tt.aTail)
			}
			if bTail != tt.bTail {
				t.Errorf("bTail = %q, want %q", bTail, tt.bTail)
			}
		})
	}
}

func TestCommonLength(t *testing.T) {
	tests := []struct {
		a, b   Hash
		maxLen int
		want   int
	}{
		{"abcdef", "abc", 3, 3},
		{"abc", "abcdef", 3, 3},
		{"abc", "", 3, 0},
		{"abcdef", "abcdef", 2, 2},
		{"abc", "1abc", 3, -1},
	}
	for _, tt := range tests {
		got := CommonLength(tt.a, tt.b, tt.maxLen)
		if got != tt.want {
			t.Errorf("CommonLength(%q,%q,%d) = %d, want %d", tt.a, tt.b, tt.maxLen, got, tt.want)
		}
	}
}

func TestValidateRejectsBadCharacters(t *testing.T) {
	if err := Validate(Hash("ab!de")); err == nil {
		t.Fatal("expected error for invalid character")
	}
	if err := Validate(Hash("")); err != nil {
		t.Fatalf("empty hash should be valid, got %v", err)
	}
}

func TestValidateRejectsTooLong(t *testing.T) {
	long := make([]byte, MaxLength+1)
	for i := range long {
		long[i] = '0'
	}
	if err := Validate(Hash(long)); err == nil {
		t.Fatal("expected error for over-length hash")
	}
}
