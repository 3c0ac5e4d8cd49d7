package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Density: [][]float64{
			{1, 2},
			{3, 4},
		},
		Tracers: []complex128{complex(0.5, -0.5)},
		Finger:  complex(-0.5, 0.5),
		Lx:      2, Ly: 2,
	}
}

func TestDensitySVG(t *testing.T) {
	svg := DensitySVG(testSnapshot())

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated SVG")
	}
	// 4 density cells, 1 tracer, 1 finger ring.
	if got := strings.Count(svg, "<rect"); got != 5 { // 4 cells + background
		t.Errorf("rect count: got %d, want 5", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circle count: got %d, want 2", got)
	}
}

func TestDensitySVGEmpty(t *testing.T) {
	if svg := DensitySVG(Snapshot{}); svg != "" {
		t.Errorf("empty snapshot should render nothing, got %d bytes", len(svg))
	}
}

func TestWriteDensitySVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.svg")
	if err := WriteDensitySVG(path, testSnapshot()); err != nil {
		t.Fatalf("WriteDensitySVG failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("file does not contain SVG markup")
	}
}
