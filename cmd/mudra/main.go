package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/mqtt"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Gesture Presentation Control")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if err := st.Bindings().EnsureDefaults(defaultBindings()); err != nil {
		log.Fatalf("Failed to seed default bindings: %v", err)
	}

	// Restore the persisted detection toggle; first run starts enabled
	enabled := true
	if v, err := st.Settings().Get(store.SettingDetectionEnabled); err == nil {
		enabled = v == "true"
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to read detection state: %v", err)
	}

	pluginDir := cfg.Plugins.Dir
	if pluginDir == "" {
		pluginDir = findPluginDir()
	}

	a := app.New(app.Config{
		Store:        st,
		PluginDir:    pluginDir,
		CameraID:     cfg.Camera.ID,
		MotionThresh: cfg.Motion.Threshold,
		IdleFPS:      cfg.Motion.IdleFPS,
		ActiveFPS:    cfg.Motion.ActiveFPS,
		Detector: detector.Config{
			MaxHands:        cfg.Detector.MaxHands,
			MinConfidence:   cfg.Detector.MinDetectionConfidence,
			MinTrackingConf: cfg.Detector.MinTrackingConfidence,
			ScriptPath:      cfg.Detector.ScriptPath,
		},
	})
	a.Camera().SetMirror(cfg.Camera.Mirror)
	a.SetEnabled(enabled)

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	ctl := &controller{app: a}

	var tr *tray.Tray
	if cfg.Tray.Enabled {
		tr = tray.New(a.IsEnabled())
		ctl.tray = tr
	}

	// Find web directory
	webDir := cfg.Server.StaticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Camera:     a.Camera(),
		Detector:   a.Detector(),
		Controller: ctl,
	})

	// Confirmed commands fan out to websocket clients
	a.RegisterCommandCallback(func(cmd gesture.Command) {
		srv.Hub().Broadcast(cmd)
	})

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
		})
		if err != nil {
			log.Printf("MQTT publisher unavailable: %v", err)
		} else {
			defer pub.Close()
			a.RegisterCommandCallback(func(cmd gesture.Command) {
				if err := pub.Publish(cmd); err != nil {
					log.Printf("MQTT publish failed: %v", err)
				}
			})
			log.Printf("Publishing commands to MQTT topic %s", cfg.MQTT.Topic)
		}
	}

	// A missing camera should not take the control surface down with it
	if err := a.Start(); err != nil {
		log.Printf("Detection pipeline not started: %v", err)
	}
	defer a.Stop()

	addr := cfg.Server.Addr
	fmt.Printf("Starting server on %s\n", addr)

	if tr == nil {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		persistEnabled(st, enabled)
	})
	tr.OnSettings(func() {
		openBrowser(settingsURL(addr))
	})
	tr.OnQuit(a.Stop)
	a.RegisterCommandCallback(tr.SetLastCommand)

	// Blocks until Quit is chosen from the menu
	tr.Run()
}

// controller adapts the app for the HTTP server and keeps the tray menu
// in sync with state changes made over the API.
type controller struct {
	app  *app.App
	tray *tray.Tray
}

func (c *controller) IsEnabled() bool {
	return c.app.IsEnabled()
}

func (c *controller) SetEnabled(enabled bool) {
	c.app.SetEnabled(enabled)
	if c.tray != nil {
		c.tray.SetEnabled(enabled)
	}
}

func (c *controller) LastCommand() (gesture.Command, time.Time, bool) {
	return c.app.LastCommand()
}

// defaultBindings maps each command to the stock presentation plugin.
// EnsureDefaults only inserts commands the user has not already bound.
func defaultBindings() []*store.Binding {
	return []*store.Binding{
		{Command: string(gesture.CommandNext), PluginName: "presentation", ActionName: "next-slide", Enabled: true},
		{Command: string(gesture.CommandPrev), PluginName: "presentation", ActionName: "prev-slide", Enabled: true},
		{Command: string(gesture.CommandStart), PluginName: "presentation", ActionName: "start-presentation", Enabled: true},
		{Command: string(gesture.CommandPause), PluginName: "presentation", ActionName: "blank-screen", Enabled: true},
		{Command: string(gesture.CommandZoomIn), PluginName: "presentation", ActionName: "zoom-in", Enabled: true},
		{Command: string(gesture.CommandZoomOut), PluginName: "presentation", ActionName: "zoom-out", Enabled: true},
	}
}

func persistEnabled(st *store.Store, enabled bool) {
	if err := st.Settings().Set(store.SettingDetectionEnabled, strconv.FormatBool(enabled)); err != nil {
		log.Printf("Failed to persist detection state: %v", err)
	}
}

// findPluginDir searches for the plugin directory in common locations.
// It checks: "plugins", "../plugins", "../../plugins", and ~/.mudra/plugins.
// The home directory location is created when nothing else exists.
func findPluginDir() string {
	relativePaths := []string{"plugins", "../plugins", "../../plugins"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	dir := filepath.Join(config.Dir(), "plugins")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return dir
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(config.Dir(), "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// settingsURL converts a listen address into a browsable URL.
func settingsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the settings UI in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
