package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It adjusts the capture rate as the motion gate switches between idle and
// active.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS)
// 2. On motion, the gate activates and capture switches to activeFPS
// 3. Run hand detection on each frame while the gate is active
// 4. Classify the landmarks into a raw gesture
// 5. Feed the raw gesture to the stabilizer
// 6. On a confirmed command, record it and execute its bound action
// 7. After 2s without motion the gate idles, capture slows back down, and
//    recognition state is dropped
func (a *App) runPipeline() {
	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(a.idleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion gating
			active, changed := a.motion.Observe(frame, time.Now())
			if changed {
				if active {
					a.camera.SetFPS(a.activeFPS)
					frameInterval = time.Second / time.Duration(a.activeFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				} else {
					a.camera.SetFPS(a.idleFPS)
					frameInterval = time.Second / time.Duration(a.idleFPS)
					ticker.Reset(frameInterval)
					a.resetRecognition() // Stale observations must not feed a later confirmation
					log.Println("Switched to idle mode")
				}
			}

			// Skip further processing while idle or without a detector
			if !active || a.detector == nil {
				frame.Close()
				continue
			}

			a.processFrame(frame, time.Now())
		}
	}
}

// processFrame runs hand detection on a single frame and advances the
// recognition state machine. The frame is closed before returning.
func (a *App) processFrame(frame *gocv.Mat, now time.Time) {
	// Step 2: Hand detection
	hands, err := a.detector.Detect(frame)
	frame.Close() // Done with the frame

	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return
	}

	// Step 3: Classify the landmarks and feed the stabilizer. Frames with
	// no hands still count: the stabilizer needs neutral frames to re-arm.
	a.mu.Lock()
	raw := a.classifier.Classify(hands)
	cmd, confirmed := a.stabilizer.Update(raw, now)

	var callbacks []func(gesture.Command)
	if confirmed {
		a.lastCommand = cmd
		a.lastCommandAt = now
		callbacks = make([]func(gesture.Command), len(a.callbacks))
		copy(callbacks, a.callbacks)
	}
	a.mu.Unlock()

	if !confirmed {
		return
	}

	// Step 4: Act on the confirmed command
	log.Printf("Command confirmed: %s", cmd.Description())
	a.recordCommand(cmd)
	a.executeBinding(cmd)

	for _, callback := range callbacks {
		callback(cmd)
	}
}

// resetRecognition clears the classifier and stabilizer state.
func (a *App) resetRecognition() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.classifier.Reset()
	a.stabilizer.Reset()
}

// recordCommand persists a confirmed command to the event log.
func (a *App) recordCommand(cmd gesture.Command) {
	if a.config.Store == nil {
		return
	}

	if err := a.config.Store.Events().Insert(string(cmd)); err != nil {
		log.Printf("Error recording command %s: %v", cmd, err)
	}
}

// executeBinding looks up the action bound to a command and runs it through
// the plugin layer. Unbound and disabled commands are skipped silently.
func (a *App) executeBinding(cmd gesture.Command) {
	if a.config.Store == nil {
		return
	}

	binding, err := a.config.Store.Bindings().GetByCommand(string(cmd))
	if err != nil {
		log.Printf("Error loading binding for %s: %v", cmd, err)
		return
	}
	if binding == nil || !binding.Enabled {
		return
	}

	p, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		log.Printf("Plugin %s not found for command %s: %v", binding.PluginName, cmd, err)
		return
	}

	resp, err := a.pluginExec.Execute(p, &plugin.Request{
		Action:  binding.ActionName,
		Command: string(cmd),
		Config:  binding.Config,
	})
	if err != nil {
		log.Printf("Error executing plugin %s for command %s: %v", binding.PluginName, cmd, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %s failed for command %s: %s", binding.PluginName, cmd, resp.Error)
	}
}
