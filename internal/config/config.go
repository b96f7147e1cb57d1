package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/scene"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Scene
	ScenePath   string `json:"scene_path" toml:"scene_path" yaml:"scene_path"`
	SceneFormat string `json:"scene_format" toml:"scene_format" yaml:"scene_format"`
	Seed        uint64 `json:"seed" toml:"seed" yaml:"seed"`

	// Render settings
	Width         int        `json:"width" toml:"width" yaml:"width"`
	Height        int        `json:"height" toml:"height" yaml:"height"`
	RotationSpeed float32    `json:"rotation_speed" toml:"rotation_speed" yaml:"rotation_speed"`
	ColorSpeed    float32    `json:"color_speed" toml:"color_speed" yaml:"color_speed"`
	Light         [3]float32 `json:"light" toml:"light" yaml:"light"`
	Workers       int        `json:"workers" toml:"workers" yaml:"workers"`
	TileSize      int        `json:"tile_size" toml:"tile_size" yaml:"tile_size"`

	// Snapshots
	OutputDir   string  `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	Frames      int     `json:"frames" toml:"frames" yaml:"frames"`
	FrameStep   float32 `json:"frame_step" toml:"frame_step" yaml:"frame_step"`
	Format      string  `json:"format" toml:"format" yaml:"format"`
	Supersample int     `json:"supersample" toml:"supersample" yaml:"supersample"`

	// Streaming
	Addr      string `json:"addr" toml:"addr" yaml:"addr"`
	StreamFPS int    `json:"stream_fps" toml:"stream_fps" yaml:"stream_fps"`
}

// Load reads a JSON, TOML or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ScenePath   string
	SceneFormat string
	OutputDir   string
	Format      string
	Width       int
	Height      int
	Workers     int
	Frames      int
	Addr        string
}

// Resolve applies non-zero CLI flags over the file values, then fills any
// remaining empty field with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.ScenePath != "" {
		c.ScenePath = flags.ScenePath
	}
	if flags.SceneFormat != "" {
		c.SceneFormat = flags.SceneFormat
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Addr != "" {
		c.Addr = flags.Addr
	}

	if c.ScenePath == "" {
		c.ScenePath = findScene()
	}
	if c.SceneFormat == "" {
		c.SceneFormat = string(scene.FormatAuto)
	}
	if c.Seed == 0 {
		c.Seed = scene.DefaultSeed
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.RotationSpeed == 0 {
		c.RotationSpeed = 0.25
	}
	if c.ColorSpeed == 0 {
		c.ColorSpeed = 0.1
	}
	if c.Light == [3]float32{} {
		c.Light = [3]float32{1.0, -0.5, 0.7}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TileSize <= 0 {
		c.TileSize = raster.DefaultTileSize
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Frames <= 0 {
		c.Frames = 60
	}
	if c.FrameStep <= 0 {
		c.FrameStep = 1.0 / 30
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}

	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.StreamFPS <= 0 {
		c.StreamFPS = 30
	}
}

// LightDir returns the configured light, normalized.
func (c *Config) LightDir() raster.Light {
	return raster.NewLight(c.Light[0], c.Light[1], c.Light[2])
}

// DefaultSceneFile is the point file looked up when no scene is configured.
const DefaultSceneFile = "sphere_sample_points.txt"

func findScene() string {
	candidates := []string{DefaultSceneFile, filepath.Join("data", DefaultSceneFile)}

	// Try relative to executable
	if exe, _ := os.Executable(); exe != "" {
		dir := filepath.Dir(exe)
		candidates = append(candidates, filepath.Join(dir, DefaultSceneFile), filepath.Join(dir, "data", DefaultSceneFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}
