package inventory

import "testing"

func TestNeedsReorder(t *testing.T) {
	cases := []struct {
		stock, threshold int
		want             bool
	}{
		{0, 0, true},
		{0, 5, true},
		{5, 5, true},
		{6, 5, false},
		{100, 10, false},
	}
	for _, c := range cases {
		if got := NeedsReorder(c.stock, c.threshold); got != c.want {
			t.Errorf("NeedsReorder(%d, %d) = %v, want %v", c.stock, c.threshold, got, c.want)
		}
	}
}

func TestReorderQuantity(t *testing.T) {
	if got := ReorderQuantity(15); got != 30 {
		t.Errorf("ReorderQuantity(15) = %d, want 30", got)
	}
	if got := ReorderQuantity(0); got != 0 {
		t.Errorf("ReorderQuantity(0) = %d, want 0", got)
	}
}
