// Package app wires the capture, detection and gesture layers into the
// running Orbital pipeline and publishes hand state snapshots for the
// control loop.
package app

import (
	"log"
	"sync"

	"github.com/asheem/orbital/internal/capture"
	"github.com/asheem/orbital/internal/detector"
	"github.com/asheem/orbital/internal/gesture"
	"github.com/asheem/orbital/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// StateCallback receives every published hand state snapshot.
type StateCallback func(gesture.HandState)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	CameraID       int
	MotionThresh   float64
	DebounceFrames int
}

// App owns the frame pipeline: camera, motion gate, landmark detector and
// gesture debouncer. The most recent confirmed hand state is kept as a
// snapshot that the control loop reads at its own pace.
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionDetector
	detector  detector.Detector
	debouncer *gesture.Debouncer
	callbacks []StateCallback

	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	latest    gesture.HandState
	hasLatest bool

	session    *store.Session
	lastLogged gesture.Label
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	debounceFrames := config.DebounceFrames
	if debounceFrames <= 0 {
		debounceFrames = gesture.DefaultDebounceFrames
	}

	a := &App{
		config:    config,
		camera:    capture.NewCamera(config.CameraID),
		motion:    capture.NewMotionDetector(motionThreshold),
		debouncer: gesture.NewDebouncer(debounceFrames),
		enabled:   false,
		stopCh:    nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture control.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// SetDebounceFrames updates the gesture confirmation window at runtime.
func (a *App) SetDebounceFrames(frames int) {
	a.debouncer.SetThreshold(frames)
}

// RegisterStateCallback registers a callback invoked on every published
// hand state snapshot. Callbacks run on the pipeline goroutine and must
// return quickly.
func (a *App) RegisterStateCallback(cb StateCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = append(a.callbacks, cb)
}

// Latest returns the most recent hand state snapshot. The second return is
// false while control is disabled or before the first frame is processed,
// which tells the control loop to skip the frame entirely.
func (a *App) Latest() (gesture.HandState, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.enabled || !a.hasLatest {
		return gesture.HandState{}, false
	}
	return a.latest, true
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Session history is best-effort; the pipeline runs without a store
	if a.config.Store != nil {
		session, err := a.config.Store.Sessions().Start()
		if err != nil {
			log.Printf("Failed to record session start: %v", err)
		} else {
			a.session = session
		}
	}
	a.lastLogged = gesture.None

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.session != nil {
		if err := a.config.Store.Sessions().End(a.session.ID); err != nil {
			log.Printf("Failed to record session end: %v", err)
		}
		a.session = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Observe runs one hand observation through the classifier and debouncer
// and publishes the resulting snapshot. A nil hand means no usable hand
// was seen this frame. The pipeline calls this for every frame; tests and
// headless setups can call it directly.
func (a *App) Observe(hand *detector.HandLandmarks) gesture.HandState {
	state := gesture.Classify(hand)
	state.Label = a.debouncer.Observe(state.Label)

	a.publish(state)
	return state
}

// publish stores the snapshot, records confirmed transitions in the
// session history and notifies callbacks.
func (a *App) publish(state gesture.HandState) {
	a.mu.Lock()
	a.latest = state
	a.hasLatest = true

	var callbacks []StateCallback
	var logTransition bool
	if state.Label != a.lastLogged {
		logTransition = state.Label != gesture.None && a.session != nil
		a.lastLogged = state.Label
	}
	sessionID := ""
	if a.session != nil {
		sessionID = a.session.ID
	}
	callbacks = append(callbacks, a.callbacks...)
	a.mu.Unlock()

	if logTransition {
		if err := a.config.Store.Sessions().LogGesture(sessionID, state.Label.String()); err != nil {
			log.Printf("Failed to record gesture event: %v", err)
		}
	}

	for _, cb := range callbacks {
		cb(state)
	}
}
