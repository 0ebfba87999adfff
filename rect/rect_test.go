package rect

import "testing"

func TestSplitVerticalTilesExactly(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 80, H: 24}
	first, second := Split(area, Vertical, 0.5)

	if first.W+second.W != area.W {
		t.Fatalf("widths do not sum: %d + %d != %d", first.W, second.W, area.W)
	}
	if first != (Rect{X: 0, Y: 0, W: 40, H: 24}) {
		t.Fatalf("unexpected first rect: %+v", first)
	}
	if second != (Rect{X: 40, Y: 0, W: 40, H: 24}) {
		t.Fatalf("unexpected second rect: %+v", second)
	}
}

func TestSplitHorizontalFloorsFirstChild(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 80, H: 13}
	first, second := Split(area, Horizontal, 0.5)

	if first.H != 6 || second.H != 7 {
		t.Fatalf("expected floor(13*0.5)=6 first and remainder 7, got %d/%d", first.H, second.H)
	}
	if first.H+second.H != area.H {
		t.Fatalf("heights do not sum to area height")
	}
}

func TestFitsMinimum(t *testing.T) {
	cases := []struct {
		r    Rect
		fits bool
	}{
		{Rect{W: 5, H: 2}, true},
		{Rect{W: 4, H: 2}, false},
		{Rect{W: 5, H: 1}, false},
	}
	for _, c := range cases {
		if got := FitsMinimum(c.r); got != c.fits {
			t.Errorf("FitsMinimum(%+v) = %v, want %v", c.r, got, c.fits)
		}
	}
}

func TestAdjacentRight(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 40, H: 24}
	b := Rect{X: 40, Y: 0, W: 40, H: 24}
	if !Adjacent(a, b, Right) {
		t.Fatalf("expected b adjacent to a on the right")
	}
	if Adjacent(a, b, Left) {
		t.Fatalf("b should not be adjacent to a on the left")
	}
}
