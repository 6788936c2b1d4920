package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

func TestWriteSVG(t *testing.T) {
	sc := scene.New()
	sc.Add(
		scene.NewRect("box", 2, 1, scene.Filled(scene.White, scene.Blue, 0.5, 2)),
		scene.NewArrow("arrow", geom.V(-2, 0), geom.V(2, 0), scene.Stroked(scene.Red, 4), 0.25),
		scene.NewText("label", "σ₃ = 100", 24, scene.White),
	)
	hidden := scene.NewCircle("hidden", 1, scene.Stroked(scene.White, 2))
	hidden.Opacity = 0
	sc.Add(hidden)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc, 640, 360, scene.Black); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	tests := []struct {
		name string
		want string
	}{
		{"document", "<svg"},
		{"background", "fill:#000000"},
		{"rect group", `id="box"`},
		{"arrow group", `id="arrow"`},
		{"unicode text", "σ₃ = 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q", tt.want)
			}
		})
	}
	if strings.Contains(out, `id="hidden"`) {
		t.Error("transparent mobject was written")
	}
}

func TestViewportCentresFrame(t *testing.T) {
	vp := newViewport(1280, 720)
	x, y := vp.point(geom.Origin)
	if x != 640 || y != 360 {
		t.Errorf("origin at (%d, %d), want (640, 360)", x, y)
	}
	x, y = vp.point(geom.V(-scene.FrameWidth/2, scene.FrameHeight/2))
	if x != 0 || y != 0 {
		t.Errorf("top-left at (%d, %d), want (0, 0)", x, y)
	}
}

func TestTraceSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := TraceSVG(&buf, []float64{0, 1, 2}, []float64{0, 1, 0}, 200, 100, "#00ff00"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "polyline") {
		t.Error("no polyline in trace")
	}
	if err := TraceSVG(&buf, []float64{0}, []float64{0}, 200, 100, "#00ff00"); err == nil {
		t.Error("expected error for a single point")
	}
}

func TestCurveChart(t *testing.T) {
	c, err := curves.Lookup("clay")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "charts", "clay.png")
	if err := CurveChart(path, c, 50); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty chart")
	}
}

func TestChartRejectsRaggedSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	err := Chart(path, "bad", "x", "y", Series{Name: "s", X: []float64{0, 1}, Y: []float64{0}})
	if err == nil {
		t.Fatal("expected error")
	}
}
