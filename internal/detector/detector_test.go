package detector

import (
	"errors"
	"math"
	"testing"
)

func TestHandSize(t *testing.T) {
	lm := OpenPalmLandmarks()

	// Wrist (0.50, 0.80) to middle MCP (0.50, 0.66)
	got := lm.HandSize()
	want := 0.14
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("HandSize() = %f, want %f", got, want)
	}
}

func TestHandSize_Degenerate(t *testing.T) {
	var lm HandLandmarks // all points at origin
	if got := lm.HandSize(); got != 0 {
		t.Errorf("HandSize() of zero landmarks = %f, want 0", got)
	}
}

func TestPalmCenter(t *testing.T) {
	lm := OpenPalmLandmarks()
	c := lm.PalmCenter()

	// Centroid of wrist + four MCPs, computed by hand from the fixture
	wantX := (0.50 + 0.55 + 0.50 + 0.45 + 0.40) / 5
	wantY := (0.80 + 0.68 + 0.66 + 0.68 + 0.70) / 5

	if math.Abs(c.X-wantX) > 1e-9 {
		t.Errorf("PalmCenter().X = %f, want %f", c.X, wantX)
	}
	if math.Abs(c.Y-wantY) > 1e-9 {
		t.Errorf("PalmCenter().Y = %f, want %f", c.Y, wantY)
	}
}

func TestPalmCenter_TracksShift(t *testing.T) {
	base := OpenPalmLandmarks()
	moved := Shifted(base, 0.05, -0.02)

	c0 := base.PalmCenter()
	c1 := moved.PalmCenter()

	if math.Abs((c1.X-c0.X)-0.05) > 1e-9 {
		t.Errorf("palm center dx = %f, want 0.05", c1.X-c0.X)
	}
	if math.Abs((c1.Y-c0.Y)+0.02) > 1e-9 {
		t.Errorf("palm center dy = %f, want -0.02", c1.Y-c0.Y)
	}
}

func TestDistance2D_IgnoresDepth(t *testing.T) {
	a := Point3D{X: 0, Y: 0, Z: 5}
	b := Point3D{X: 3, Y: 4, Z: -5}

	if got := Distance2D(a, b); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance2D() = %f, want 5", got)
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("expected no hands by default, got %d", len(hands))
	}

	m.SetHands([]HandLandmarks{OpenPalmLandmarks()})
	hands, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}
	if hands[0].Handedness != "Right" {
		t.Errorf("Handedness = %q, want %q", hands[0].Handedness, "Right")
	}

	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestJSONHandConversion(t *testing.T) {
	jh := jsonHand{
		Handedness: "Left",
		Score:      0.87,
		Points: []jsonPoint{
			{X: 0.1, Y: 0.2, Z: 0.3},
			{X: 0.4, Y: 0.5, Z: 0.6},
		},
	}

	lm := jh.toHandLandmarks()

	if lm.Handedness != "Left" {
		t.Errorf("Handedness = %q, want %q", lm.Handedness, "Left")
	}
	if lm.Points[0] != (Point3D{X: 0.1, Y: 0.2, Z: 0.3}) {
		t.Errorf("Points[0] = %+v", lm.Points[0])
	}
	if lm.Points[1] != (Point3D{X: 0.4, Y: 0.5, Z: 0.6}) {
		t.Errorf("Points[1] = %+v", lm.Points[1])
	}
	// Missing points stay zeroed
	if lm.Points[2] != (Point3D{}) {
		t.Errorf("Points[2] = %+v, want zero", lm.Points[2])
	}
}
