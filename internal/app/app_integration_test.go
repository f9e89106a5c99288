package app

import (
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/store"
)

func TestApp_IdleActiveModeSwitching(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	// Script a burst of motion followed by a long still period.
	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	frames := []*gocv.Mat{&black, &white, &black, &white}
	for i := 0; i < 120; i++ {
		frames = append(frames, &black)
	}

	camera := capture.NewMockCamera(frames, false)

	a := New(Config{Store: s, PluginDir: tmpDir, MotionThresh: 1.0})
	a.SetCamera(camera)
	a.SetDetector(detector.NewMockDetector())
	a.SetEnabled(true)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	if got := camera.FPS(); got != IdleFPS {
		t.Fatalf("initial FPS = %d, want %d", got, IdleFPS)
	}

	// The black to white transitions should push the pipeline into active mode.
	deadline := time.Now().Add(2 * time.Second)
	for camera.FPS() != ActiveFPS && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if got := camera.FPS(); got != ActiveFPS {
		t.Fatalf("FPS after motion = %d, want %d", got, ActiveFPS)
	}

	// Once the frames stop changing the pipeline falls back to idle.
	deadline = time.Now().Add(2 * time.Duration(IdleTimeoutMs) * time.Millisecond)
	for camera.FPS() != IdleFPS && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	if got := camera.FPS(); got != IdleFPS {
		t.Errorf("FPS after still period = %d, want %d", got, IdleFPS)
	}
}

func TestApp_DisabledPipelineStaysIdle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	// Endless motion, but detection is disabled.
	camera := capture.NewMockCamera([]*gocv.Mat{&black, &white}, true)

	a := New(Config{Store: s, PluginDir: tmpDir, MotionThresh: 1.0})
	a.SetCamera(camera)
	mock := detector.NewMockDetector()
	a.SetDetector(mock)
	a.SetEnabled(false)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	time.Sleep(600 * time.Millisecond)

	if calls := mock.Calls(); calls != 0 {
		t.Errorf("detector ran %d times while disabled, want 0", calls)
	}
	if got := camera.FPS(); got != IdleFPS {
		t.Errorf("FPS = %d, want %d while disabled", got, IdleFPS)
	}
}
