package geom

import (
	"testing"
)

func TestIdxAndCoords(t *testing.T) {
	table := []struct {
		origin, width [3]int
		x, y, z       int
		idx           int
	}{
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 0, 0, 0, 0},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 3, 0, 0, 3},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 0, 3, 0, 30},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 0, 0, 3, 300},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 9, 9, 9, 999},
		{[3]int{5, 5, 5}, [3]int{10, 10, 10}, 5, 5, 5, 0},
		{[3]int{5, 5, 5}, [3]int{10, 10, 10}, 7, 6, 5, 12},
		{[3]int{0, 0, 0}, [3]int{4, 5, 6}, 1, 2, 3, 69},
	}

	for i, test := range table {
		g := NewGrid(test.origin, test.width)

		idx := g.Idx(test.x, test.y, test.z)
		if idx != test.idx {
			t.Errorf("%d) Expected index %d, got %d", i, test.idx, idx)
		}

		if test.origin == ([3]int{0, 0, 0}) {
			x, y, z := g.Coords(idx)
			if x != test.x || y != test.y || z != test.z {
				t.Errorf("%d) Expected coords (%d %d %d), got (%d %d %d)",
					i, test.x, test.y, test.z, x, y, z)
			}
		}
	}
}

func TestBoundsCheck(t *testing.T) {
	table := []struct {
		origin, width [3]int
		x, y, z       int
		ok            bool
	}{
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 0, 0, 0, true},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 9, 9, 9, true},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 10, 9, 9, false},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 9, 10, 9, false},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, 9, 9, 10, false},
		{[3]int{0, 0, 0}, [3]int{10, 10, 10}, -1, 0, 0, false},
		{[3]int{5, 5, 5}, [3]int{10, 10, 10}, 4, 5, 5, false},
		{[3]int{5, 5, 5}, [3]int{10, 10, 10}, 14, 14, 14, true},
		{[3]int{5, 5, 5}, [3]int{10, 10, 10}, 15, 14, 14, false},
	}

	for i, test := range table {
		g := NewGrid(test.origin, test.width)

		if ok := g.BoundsCheck(test.x, test.y, test.z); ok != test.ok {
			t.Errorf("%d) Expected BoundsCheck(%d, %d, %d) = %v, got %v",
				i, test.x, test.y, test.z, test.ok, ok)
		}

		idx, ok := g.IdxCheck(test.x, test.y, test.z)
		if ok != test.ok {
			t.Errorf("%d) Expected IdxCheck ok = %v, got %v", i, test.ok, ok)
		}
		if !ok && idx != -1 {
			t.Errorf("%d) Expected invalid index -1, got %d", i, idx)
		}
	}
}

func TestCubeGrid(t *testing.T) {
	g := NewCubeGrid(8)
	if g.Volume != 512 {
		t.Errorf("Expected volume 512, got %d", g.Volume)
	}
	for _, idx := range []int{0, 1, 8, 64, 511, 137} {
		x, y, z := g.Coords(idx)
		if g.Idx(x, y, z) != idx {
			t.Errorf("Coords/Idx round trip failed for %d", idx)
		}
	}
}
