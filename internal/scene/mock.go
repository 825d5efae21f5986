package scene

import "sync"

// MockScene is a test implementation of the Scene interface. It records
// every call and applies the same clamping contract as the Globe so tests
// can assert on bound properties.
type MockScene struct {
	mu sync.Mutex

	RotateXCalls []float64
	RotateYCalls []float64
	zoom         float64
	minZoom      float64
	maxZoom      float64
	autoRotate   bool
	MoveCalls    [][2]float64
	Resets       int
}

// NewMockScene creates a MockScene with the default zoom bounds, starting
// mid-range with auto-rotate on, matching a fresh Globe.
func NewMockScene() *MockScene {
	return &MockScene{
		zoom:       (DefaultMinZoom + DefaultMaxZoom) / 2,
		minZoom:    DefaultMinZoom,
		maxZoom:    DefaultMaxZoom,
		autoRotate: true,
	}
}

func (m *MockScene) RotateX(angle float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RotateXCalls = append(m.RotateXCalls, angle)
}

func (m *MockScene) RotateY(angle float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RotateYCalls = append(m.RotateYCalls, angle)
}

func (m *MockScene) SetZoom(distance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zoom = clamp(distance, m.minZoom, m.maxZoom)
}

func (m *MockScene) GetZoom() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zoom
}

func (m *MockScene) SetAutoRotate(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoRotate = enabled
}

// AutoRotate reports the last value passed to SetAutoRotate.
func (m *MockScene) AutoRotate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoRotate
}

func (m *MockScene) MovePosition(dx, dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MoveCalls = append(m.MoveCalls, [2]float64{dx, dy})
}

func (m *MockScene) ResetPosition() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets++
}

// TotalRotation returns the summed yaw and pitch applied so far.
func (m *MockScene) TotalRotation() (x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.RotateXCalls {
		x += v
	}
	for _, v := range m.RotateYCalls {
		y += v
	}
	return x, y
}
