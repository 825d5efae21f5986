// Package scene models the rendered globe as seen by the control core and
// relays its state to the renderer over WebSocket. The actual drawing
// (sphere mesh, textures, starfield) happens in the browser frontend; this
// side owns the authoritative camera state and all of its clamping.
package scene

import (
	"math"
	"sync"
)

// Scene is the surface the motion mapper drives. Rotations are incremental
// and in radians; zoom is an absolute camera distance. Implementations own
// their bounds: pitch is clamped to ±π/2 and zoom to the configured range,
// so callers never need to pre-clamp.
type Scene interface {
	RotateX(angle float64)
	RotateY(angle float64)
	SetZoom(distance float64)
	GetZoom() float64
	SetAutoRotate(enabled bool)
	MovePosition(dx, dy float64)
	ResetPosition()
}

// Default camera limits.
const (
	DefaultMinZoom = 1.8
	DefaultMaxZoom = 8.0

	// autoRotateStep is the yaw advance per tick while auto-rotating.
	autoRotateStep = 0.004

	// positionSmoothing is the one-pole factor easing the screen offset
	// toward its target each tick.
	positionSmoothing = 0.15

	maxPitch = math.Pi / 2
)

// State is a broadcast snapshot of the globe camera.
type State struct {
	RotationX  float64 `json:"rotationX"`
	RotationY  float64 `json:"rotationY"`
	Zoom       float64 `json:"zoom"`
	AutoRotate bool    `json:"autoRotate"`
	PositionX  float64 `json:"positionX"`
	PositionY  float64 `json:"positionY"`
}

// Globe holds the camera state for the rendered globe. All mutators clamp;
// Tick advances time-based behavior (auto-rotation, position easing) and is
// driven by the broadcast loop.
type Globe struct {
	mu         sync.Mutex
	rotX       float64
	rotY       float64
	zoom       float64
	minZoom    float64
	maxZoom    float64
	autoRotate bool

	// Screen-space pan. The target moves instantly; the visible position
	// eases toward it with its own one-pole filter.
	posX, posY       float64
	targetX, targetY float64
}

// NewGlobe creates a Globe with the given zoom bounds. Non-positive or
// inverted bounds fall back to the defaults. The globe starts auto-rotating
// at the middle of its zoom range.
func NewGlobe(minZoom, maxZoom float64) *Globe {
	if minZoom <= 0 || maxZoom <= minZoom {
		minZoom = DefaultMinZoom
		maxZoom = DefaultMaxZoom
	}
	return &Globe{
		zoom:       (minZoom + maxZoom) / 2,
		minZoom:    minZoom,
		maxZoom:    maxZoom,
		autoRotate: true,
	}
}

// RotateX applies an incremental pitch rotation, clamped to ±π/2.
func (g *Globe) RotateX(angle float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotX = clamp(g.rotX+angle, -maxPitch, maxPitch)
}

// RotateY applies an incremental yaw rotation. Yaw wraps so the value stays
// bounded over long sessions.
func (g *Globe) RotateY(angle float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotY = math.Mod(g.rotY+angle, 2*math.Pi)
}

// SetZoom sets the camera distance, clamped to the globe's zoom bounds.
func (g *Globe) SetZoom(distance float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.zoom = clamp(distance, g.minZoom, g.maxZoom)
}

// GetZoom returns the current camera distance.
func (g *Globe) GetZoom() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.zoom
}

// SetAutoRotate enables or disables the idle auto-rotation.
func (g *Globe) SetAutoRotate(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoRotate = enabled
}

// AutoRotate reports whether the globe is auto-rotating.
func (g *Globe) AutoRotate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.autoRotate
}

// MovePosition shifts the pan target by (dx, dy) in normalized screen
// units. The visible position follows smoothly on subsequent ticks.
func (g *Globe) MovePosition(dx, dy float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.targetX += dx
	g.targetY += dy
}

// ResetPosition sends the pan target back to center.
func (g *Globe) ResetPosition() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.targetX = 0
	g.targetY = 0
}

// Tick advances one animation frame: auto-rotation yaw and position easing.
func (g *Globe) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.autoRotate {
		g.rotY = math.Mod(g.rotY+autoRotateStep, 2*math.Pi)
	}

	g.posX += (g.targetX - g.posX) * positionSmoothing
	g.posY += (g.targetY - g.posY) * positionSmoothing
}

// Snapshot returns the current camera state for broadcasting.
func (g *Globe) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		RotationX:  g.rotX,
		RotationY:  g.rotY,
		Zoom:       g.zoom,
		AutoRotate: g.autoRotate,
		PositionX:  g.posX,
		PositionY:  g.posY,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
