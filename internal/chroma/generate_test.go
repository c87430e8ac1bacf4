package chroma

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func referenceFamily() LineFamily {
	return LineFamily{
		NumSurfaces:      5,
		PointsPerSurface: 50,
		XMin:             0,
		XMax:             5,
		Slope:            0.5,
		Offsets:          []float64{0, 1, 2, 3, 4},
	}
}

func TestEvenOffsets(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		lo, hi float64
		want   []float64
	}{
		{"zero", 0, 0, 4, nil},
		{"single", 1, 2, 4, []float64{2}},
		{"reference", 5, 0, 4, []float64{0, 1, 2, 3, 4}},
		{"descending", 3, 1, -1, []float64{1, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvenOffsets(tt.n, tt.lo, tt.hi)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EvenOffsets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateSurfaces_Reference(t *testing.T) {
	lf := referenceFamily()
	surfaces, err := GenerateSurfaces(lf)
	if err != nil {
		t.Fatalf("GenerateSurfaces: %v", err)
	}
	if len(surfaces) != 5 {
		t.Fatalf("expected 5 surfaces, got %d", len(surfaces))
	}

	for i, s := range surfaces {
		if s.ID != i+1 {
			t.Errorf("surface %d: ID = %d, want %d", i, s.ID, i+1)
		}
		if s.Offset != lf.Offsets[i] {
			t.Errorf("surface %d: offset = %v, want %v", i, s.Offset, lf.Offsets[i])
		}
		if len(s.Points) != 50 {
			t.Fatalf("surface %d: %d points, want 50", i, len(s.Points))
		}
		if s.Points[0].X != 0 || s.Points[49].X != 5 {
			t.Errorf("surface %d: x range = [%v, %v], want [0, 5]", i, s.Points[0].X, s.Points[49].X)
		}
		for j, p := range s.Points {
			if want := lf.Slope*p.X + s.Offset; math.Abs(p.Y-want) > 1e-12 {
				t.Errorf("surface %d point %d: y = %v, want %v", i, j, p.Y, want)
			}
		}
	}
}

func TestGenerateSurfaces_SharedGrid(t *testing.T) {
	surfaces, err := GenerateSurfaces(referenceFamily())
	if err != nil {
		t.Fatalf("GenerateSurfaces: %v", err)
	}

	step := 5.0 / 49.0
	for j := range surfaces[0].Points {
		x := surfaces[0].Points[j].X
		if math.Abs(x-step*float64(j)) > 1e-12 {
			t.Errorf("point %d: x = %v, want %v", j, x, step*float64(j))
		}
		for _, s := range surfaces[1:] {
			if s.Points[j].X != x {
				t.Errorf("surface %d point %d: x = %v, want shared %v", s.ID, j, s.Points[j].X, x)
			}
		}
	}
}

func TestGenerateSurfaces_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LineFamily)
	}{
		{"no surfaces", func(lf *LineFamily) { lf.NumSurfaces = 0; lf.Offsets = nil }},
		{"negative surfaces", func(lf *LineFamily) { lf.NumSurfaces = -1 }},
		{"one point", func(lf *LineFamily) { lf.PointsPerSurface = 1 }},
		{"zero points", func(lf *LineFamily) { lf.PointsPerSurface = 0 }},
		{"duplicate offsets", func(lf *LineFamily) { lf.Offsets = []float64{0, 1, 2, 1, 4} }},
		{"too few offsets", func(lf *LineFamily) { lf.Offsets = []float64{0, 1} }},
		{"too many offsets", func(lf *LineFamily) { lf.Offsets = []float64{0, 1, 2, 3, 4, 5} }},
		{"zero slope", func(lf *LineFamily) { lf.Slope = 0 }},
		{"nan slope", func(lf *LineFamily) { lf.Slope = math.NaN() }},
		{"inf slope", func(lf *LineFamily) { lf.Slope = math.Inf(1) }},
		{"nan offset", func(lf *LineFamily) { lf.Offsets[2] = math.NaN() }},
		{"empty x range", func(lf *LineFamily) { lf.XMax = lf.XMin }},
		{"reversed x range", func(lf *LineFamily) { lf.XMin, lf.XMax = 5, 0 }},
		{"infinite x", func(lf *LineFamily) { lf.XMax = math.Inf(1) }},
		{"x range overflows", func(lf *LineFamily) { lf.XMin, lf.XMax = -1e308, 1e308 }},
		{"offset spread overflows", func(lf *LineFamily) { lf.Offsets = []float64{-1.7e308, -1, 0, 1, 1.7e308} }},
		{"y overflows at x_max", func(lf *LineFamily) { lf.XMax = 1e308; lf.Slope = 10 }},
		{"y overflows at x_min", func(lf *LineFamily) { lf.XMin = -1e308; lf.Slope = -10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := referenceFamily()
			tt.mutate(&lf)

			surfaces, err := GenerateSurfaces(lf)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
			if surfaces != nil {
				t.Errorf("expected no surfaces on failure, got %d", len(surfaces))
			}
		})
	}
}

func TestGenerateSurfaces_WideButFiniteRange(t *testing.T) {
	surfaces, err := GenerateSurfaces(LineFamily{
		NumSurfaces:      2,
		PointsPerSurface: 3,
		XMin:             -4e307,
		XMax:             4e307,
		Slope:            0.5,
		Offsets:          []float64{0, 1e307},
	})
	if err != nil {
		t.Fatalf("GenerateSurfaces: %v", err)
	}
	for _, s := range surfaces {
		for j, p := range s.Points {
			if !isFinite(p.X) || !isFinite(p.Y) {
				t.Errorf("surface %d point %d not finite: %+v", s.ID, j, p)
			}
		}
	}
}

func TestGenerateSurfaces_SingleSurface(t *testing.T) {
	surfaces, err := GenerateSurfaces(LineFamily{
		NumSurfaces:      1,
		PointsPerSurface: 2,
		XMin:             -1,
		XMax:             1,
		Slope:            -2,
		Offsets:          []float64{3},
	})
	if err != nil {
		t.Fatalf("GenerateSurfaces: %v", err)
	}
	want := []Surface{{ID: 1, Offset: 3, Points: []Point{{X: -1, Y: 5}, {X: 1, Y: 1}}}}
	if diff := cmp.Diff(want, surfaces); diff != "" {
		t.Errorf("surfaces mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemblePointCloud_Order(t *testing.T) {
	surfaces := []Surface{
		{ID: 1, Offset: 0, Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{ID: 2, Offset: 5, Points: []Point{{X: 0, Y: 5}, {X: 1, Y: 6}}},
	}
	pc := AssemblePointCloud(surfaces)

	wantPoints := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 5}, {X: 1, Y: 6}}
	if diff := cmp.Diff(wantPoints, pc.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1, 2, 2}, pc.SurfaceIDs); diff != "" {
		t.Errorf("surface ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemblePointCloud_Empty(t *testing.T) {
	pc := AssemblePointCloud(nil)
	if pc.Len() != 0 || len(pc.SurfaceIDs) != 0 {
		t.Errorf("expected empty cloud, got %d points and %d tags", pc.Len(), len(pc.SurfaceIDs))
	}
}

func TestGenerate_PointCount(t *testing.T) {
	pc, err := Generate(referenceFamily())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if pc.Len() != 250 {
		t.Errorf("expected 250 points, got %d", pc.Len())
	}
	if len(pc.SurfaceIDs) != pc.Len() {
		t.Errorf("tag count %d != point count %d", len(pc.SurfaceIDs), pc.Len())
	}
	for i, id := range pc.SurfaceIDs {
		if want := i/50 + 1; id != want {
			t.Fatalf("point %d tagged %d, want %d", i, id, want)
		}
	}
}

func TestGenerate_Invalid(t *testing.T) {
	lf := referenceFamily()
	lf.Slope = 0
	pc, err := Generate(lf)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	if pc.Len() != 0 {
		t.Errorf("expected empty cloud on failure, got %d points", pc.Len())
	}
}
