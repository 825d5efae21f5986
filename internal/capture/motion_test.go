package capture

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// solidFrame builds a single-color BGR frame.
func solidFrame(t *testing.T, c color.RGBA) *gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		120, 160, gocv.MatTypeCV8UC3,
	)
	return &mat
}

// frameWithBlock builds a dark frame with a bright rectangle in one corner.
func frameWithBlock(t *testing.T) *gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(0, 0, 0, 0),
		120, 160, gocv.MatTypeCV8UC3,
	)
	region := mat.Region(image.Rect(0, 0, 80, 60))
	region.SetTo(gocv.NewScalar(255, 255, 255, 0))
	region.Close()
	return &mat
}

func TestMotionDetector_FirstFrameIsBaseline(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	frame := solidFrame(t, color.RGBA{R: 10, G: 10, B: 10})
	defer frame.Close()

	detected, percent := m.Detect(frame)
	if detected {
		t.Error("first frame should never report motion")
	}
	if percent != 0 {
		t.Errorf("first frame change percent = %f, want 0", percent)
	}
}

func TestMotionDetector_StaticSceneNoMotion(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	for i := 0; i < 3; i++ {
		frame := solidFrame(t, color.RGBA{R: 40, G: 40, B: 40})
		detected, _ := m.Detect(frame)
		frame.Close()

		if i > 0 && detected {
			t.Errorf("frame %d: identical frames reported motion", i)
		}
	}
}

func TestMotionDetector_DetectsLargeChange(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	base := solidFrame(t, color.RGBA{})
	m.Detect(base)
	base.Close()

	changed := frameWithBlock(t)
	defer changed.Close()

	detected, percent := m.Detect(changed)
	if !detected {
		t.Errorf("expected motion, change percent = %f", percent)
	}
	if percent <= 1.0 {
		t.Errorf("change percent = %f, want > 1.0", percent)
	}
}

func TestMotionDetector_NilAndEmptyFrames(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	if detected, _ := m.Detect(nil); detected {
		t.Error("nil frame reported motion")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if detected, _ := m.Detect(&empty); detected {
		t.Error("empty frame reported motion")
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	base := solidFrame(t, color.RGBA{})
	m.Detect(base)
	base.Close()

	m.Reset()

	// After reset the next frame is a baseline again, even if different
	changed := frameWithBlock(t)
	defer changed.Close()
	if detected, _ := m.Detect(changed); detected {
		t.Error("frame after Reset should establish a new baseline")
	}
}

func TestMockCamera_Playback(t *testing.T) {
	f1 := solidFrame(t, color.RGBA{R: 1})
	f2 := solidFrame(t, color.RGBA{R: 2})
	defer f1.Close()
	defer f2.Close()

	cam := NewMockCamera([]*gocv.Mat{f1, f2}, false)

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error reading from closed camera")
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after frame sequence is exhausted")
	}

	cam.Reset()
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Reset error = %v", err)
	}
	frame.Close()
}

func TestMockCamera_Loop(t *testing.T) {
	f := solidFrame(t, color.RGBA{R: 7})
	defer f.Close()

	cam := NewMockCamera([]*gocv.Mat{f}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}
}
