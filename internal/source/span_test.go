package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 2, End: 10}, Span{File: 1, Start: 4, End: 5}, Span{File: 1, Start: 2, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContainsAndLen(t *testing.T) {
	outer := Span{File: 3, Start: 10, End: 20}
	if !outer.Contains(Span{File: 3, Start: 10, End: 20}) {
		t.Errorf("span should contain itself")
	}
	if outer.Contains(Span{File: 3, Start: 9, End: 12}) {
		t.Errorf("span should not contain a range starting before it")
	}
	if outer.Len() != 10 {
		t.Errorf("Len = %d", outer.Len())
	}
	if z := outer.ZeroAt(); !z.Empty() || z.Start != 20 {
		t.Errorf("ZeroAt = %v", z)
	}
}
