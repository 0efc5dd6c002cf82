package internal

import "testing"

func TestPadExtent(t *testing.T) {
	tests := []struct {
		extent, width, expected int
	}{
		{extent: 0, width: 64, expected: 0},
		{extent: 1, width: 64, expected: 64},
		{extent: 64, width: 64, expected: 64},
		{extent: 65, width: 64, expected: 128},
		{extent: 1000, width: 64, expected: 1024},
		{extent: 7, width: 4, expected: 8},
	}
	for _, tt := range tests {
		if got := PadExtent(tt.extent, tt.width); got != tt.expected {
			t.Errorf("PadExtent(%d, %d) = %d, want %d", tt.extent, tt.width, got, tt.expected)
		}
	}
}

func TestTileCount(t *testing.T) {
	if got := TileCount(1000, 64); got != 16 {
		t.Errorf("TileCount(1000, 64) = %d, want 16", got)
	}
	if got := TileCount(0, 64); got != 0 {
		t.Errorf("TileCount(0, 64) = %d, want 0", got)
	}
}

func TestPadExtentPanics(t *testing.T) {
	for _, tt := range []struct{ extent, width int }{
		{extent: -1, width: 64},
		{extent: 10, width: 0},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("PadExtent(%d, %d) did not panic", tt.extent, tt.width)
				}
			}()
			PadExtent(tt.extent, tt.width)
		}()
	}
}
