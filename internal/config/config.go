// Package config loads and saves the daemon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all daemon settings.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Camera   CameraConfig   `mapstructure:"camera"`
	Detector DetectorConfig `mapstructure:"detector"`
	Motion   MotionConfig   `mapstructure:"motion"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Plugins  PluginsConfig  `mapstructure:"plugins"`
	Tray     TrayConfig     `mapstructure:"tray"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	StaticDir string `mapstructure:"static_dir"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CameraConfig holds capture settings.
type CameraConfig struct {
	ID     int  `mapstructure:"id"`
	Mirror bool `mapstructure:"mirror"`
}

// DetectorConfig holds hand detection settings.
type DetectorConfig struct {
	MaxHands               int     `mapstructure:"max_hands"`
	MinDetectionConfidence float64 `mapstructure:"min_detection_confidence"`
	MinTrackingConfidence  float64 `mapstructure:"min_tracking_confidence"`
	ScriptPath             string  `mapstructure:"script_path"`
}

// MotionConfig holds motion gating settings.
type MotionConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	IdleFPS   int     `mapstructure:"idle_fps"`
	ActiveFPS int     `mapstructure:"active_fps"`
}

// MQTTConfig holds the optional command publisher settings.
type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

// PluginsConfig holds plugin discovery settings. An empty Dir means the
// daemon searches its well-known plugin locations.
type PluginsConfig struct {
	Dir string `mapstructure:"dir"`
}

// TrayConfig holds system tray settings.
type TrayConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Dir returns the directory for mudra data and config files.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

// Load reads configuration from file and env. Env var overrides use prefix MUDRA_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("database.path", filepath.Join(Dir(), "mudra.db"))
	v.SetDefault("camera.id", 0)
	v.SetDefault("camera.mirror", true)
	v.SetDefault("detector.max_hands", 2)
	v.SetDefault("detector.min_detection_confidence", 0.7)
	v.SetDefault("detector.min_tracking_confidence", 0.5)
	v.SetDefault("detector.script_path", "")
	v.SetDefault("motion.threshold", 1.0)
	v.SetDefault("motion.idle_fps", 5)
	v.SetDefault("motion.active_fps", 15)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "mudra")
	v.SetDefault("mqtt.topic", "mudra/commands")
	v.SetDefault("plugins.dir", "")
	v.SetDefault("tray.enabled", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MUDRA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MUDRA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("MUDRA_CONFIG")
	if path == "" {
		path = filepath.Join(Dir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.static_dir", cfg.Server.StaticDir)
	v.Set("database.path", cfg.Database.Path)
	v.Set("camera.id", cfg.Camera.ID)
	v.Set("camera.mirror", cfg.Camera.Mirror)
	v.Set("detector.max_hands", cfg.Detector.MaxHands)
	v.Set("detector.min_detection_confidence", cfg.Detector.MinDetectionConfidence)
	v.Set("detector.min_tracking_confidence", cfg.Detector.MinTrackingConfidence)
	v.Set("detector.script_path", cfg.Detector.ScriptPath)
	v.Set("motion.threshold", cfg.Motion.Threshold)
	v.Set("motion.idle_fps", cfg.Motion.IdleFPS)
	v.Set("motion.active_fps", cfg.Motion.ActiveFPS)
	v.Set("mqtt.enabled", cfg.MQTT.Enabled)
	v.Set("mqtt.broker", cfg.MQTT.Broker)
	v.Set("mqtt.client_id", cfg.MQTT.ClientID)
	v.Set("mqtt.topic", cfg.MQTT.Topic)
	v.Set("plugins.dir", cfg.Plugins.Dir)
	v.Set("tray.enabled", cfg.Tray.Enabled)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
