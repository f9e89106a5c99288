// Package app provides the main application logic for the Mudra presentation control daemon.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
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

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64

	// IdleFPS and ActiveFPS override the default capture rates when > 0.
	IdleFPS   int
	ActiveFPS int

	// Detector overrides the hand detector settings. The zero value
	// selects detector.DefaultConfig().
	Detector detector.Config
}

// App is the main application that orchestrates command recognition and action execution.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionGate
	detector   detector.Detector
	classifier *gesture.Classifier
	stabilizer *gesture.Stabilizer
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	idleFPS    int
	activeFPS  int

	enabled       bool
	lastCommand   gesture.Command
	lastCommandAt time.Time
	callbacks     []func(gesture.Command)
	mu            sync.RWMutex
	stopCh        chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	idleFPS := config.IdleFPS
	if idleFPS <= 0 {
		idleFPS = IdleFPS
	}
	activeFPS := config.ActiveFPS
	if activeFPS <= 0 {
		activeFPS = ActiveFPS
	}

	detectorConfig := config.Detector
	if detectorConfig.MaxHands == 0 {
		detectorConfig = detector.DefaultConfig()
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionGate(motionThreshold, time.Duration(IdleTimeoutMs)*time.Millisecond),
		classifier: gesture.NewClassifier(),
		stabilizer: gesture.NewStabilizer(gesture.DefaultStabilizerConfig()),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(plugin.DefaultTimeout),
		idleFPS:    idleFPS,
		activeFPS:  activeFPS,
		enabled:    false,
		stopCh:     nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detectorConfig); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables command detection. Disabling drops any
// partially tracked gesture so a later enable starts from a clean slate.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	if !enabled {
		a.classifier.Reset()
		a.stabilizer.Reset()
	}
}

// IsEnabled returns whether command detection is currently enabled.
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

// SetCamera sets the camera implementation to use. Must be called before
// Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// LastCommand returns the most recently confirmed command, the time it was
// confirmed, and whether any command has been confirmed yet.
func (a *App) LastCommand() (gesture.Command, time.Time, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastCommand, a.lastCommandAt, a.lastCommand != ""
}

// RegisterCommandCallback registers a function invoked for every confirmed
// command. Callbacks run on the pipeline goroutine and should return quickly.
func (a *App) RegisterCommandCallback(callback func(gesture.Command)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = append(a.callbacks, callback)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
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
	a.camera.SetFPS(a.idleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

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

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close the motion gate
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionGate returns the motion gate instance.
func (a *App) MotionGate() *capture.MotionGate {
	return a.motion
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
