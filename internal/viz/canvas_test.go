package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("expected blank after unset, got %U", c.Grid[0][0])
	}

	// Out of range dots are dropped.
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][0] != brailleBlank {
		t.Error("out of range set leaked into the grid")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("expected 3 cells, got %q", line)
		}
	}
}

func countDots(c *Canvas) int {
	cw, ch := c.Dots()
	n := 0
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestDrawCircleOutline(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 5)

	for _, p := range [][2]int{{15, 10}, {5, 10}, {10, 15}, {10, 5}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected rim dot at %v", p)
		}
	}
	if c.IsSet(10, 10) {
		t.Error("outline must not set the centre")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 5)

	if !c.IsSet(10, 10) || !c.IsSet(15, 10) || !c.IsSet(10, 5) {
		t.Error("filled circle missing centre or rim")
	}
	if c.IsSet(14, 14) {
		t.Error("corner of bounding box should be outside the circle")
	}

	outline := NewCanvas(10, 5)
	outline.DrawCircle(10, 10, 5)
	if countDots(c) <= countDots(outline) {
		t.Error("filled circle should cover more dots than its outline")
	}
}

func TestCircleZeroRadius(t *testing.T) {
	c := NewCanvas(2, 1)
	c.FillCircle(1, 1, 0)
	c.DrawCircle(2, 2, 0)
	if countDots(c) != 2 {
		t.Errorf("expected 2 dots, got %d", countDots(c))
	}
}

func TestDrawScene(t *testing.T) {
	c := NewCanvas(20, 10)
	bodies := []dynamo.Body{{X: 20, Y: 20, Radius: 5}}

	DrawScene(c, 80, 80, bodies, Filled)
	vp := Fit(c, 80, 80)
	cx, cy := vp.Point(20, 20)
	if !c.IsSet(cx, cy) {
		t.Error("filled ball should cover its centre")
	}
	if !c.IsSet(vp.OffsetX, vp.OffsetY) {
		t.Error("arena outline missing")
	}

	DrawScene(c, 80, 80, bodies, Outlined)
	if c.IsSet(cx, cy) {
		t.Error("outlined ball should leave its centre empty")
	}
}

func TestStyleToggle(t *testing.T) {
	if Filled.Toggle() != Outlined || Outlined.Toggle() != Filled {
		t.Error("toggle should alternate styles")
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4)
	if got != "▁▃▅█" {
		t.Errorf("expected last four levels, got %q", got)
	}
	if Sparkline(nil, 3) != "───" {
		t.Error("empty sparkline should be a rule")
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("theme cycling should wrap")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back")
	}
}
