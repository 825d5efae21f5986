package app

import (
	"log"
	"time"
)

// runPipeline is the main loop that processes frames from the camera and
// turns them into hand state snapshots.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand landmark detection on active frames
// 4. Classify and debounce the gesture, publish the snapshot
// 5. After 2s without motion, switch back to idle mode
// 6. Idle frames publish a no-hand observation so the globe can settle
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if control is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Idle frames still feed the debouncer so a vanished hand
			// confirms to the no-hand state and the globe can settle
			d := a.Detector()
			if !activeMode || d == nil {
				frame.Close()
				a.Observe(nil)
				continue
			}

			// Step 2: Hand landmark detection
			hands, err := d.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Step 3: Classify, debounce and publish. Only the first hand
			// drives the globe; a second hand in frame is ignored.
			if len(hands) == 0 {
				a.Observe(nil)
				continue
			}
			a.Observe(&hands[0])
		}
	}
}
