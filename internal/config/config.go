package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaSource string

// Duration is a time.Duration that reads "16ms" style strings or integer
// nanoseconds from JSON and YAML.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration().String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	switch v := v.(type) {
	case nil:
		*d = 0
		return nil
	case string:
		return d.parse(v)
	case float64:
		if v != float64(int64(v)) {
			return fmt.Errorf("duration: %v is not whole nanoseconds", v)
		}
		*d = Duration(int64(v))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", b)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.Duration().String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		*d = Duration(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.parse(s)
}

// parse treats the empty string as zero.
func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters of the terrain streamer and its frame loop.
type Config struct {
	Terrain TerrainConfig `json:"terrain" yaml:"terrain"`
	View    ViewConfig    `json:"view" yaml:"view"`
	Camera  CameraConfig  `json:"camera" yaml:"camera"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Loop    LoopConfig    `json:"loop" yaml:"loop"`
	Trace   TraceConfig   `json:"trace" yaml:"trace"`
}

type TerrainConfig struct {
	ChunkSize      int           `json:"chunkSize" yaml:"chunkSize"`           // columns per chunk side
	TerrainScale   float32       `json:"terrainScale" yaml:"terrainScale"`     // world units per noise uv unit
	BaselineOffset float32       `json:"baselineOffset" yaml:"baselineOffset"` // subtracted from every surface height
	Primitive      string        `json:"primitive" yaml:"primitive"`           // "gradient" or "simplex"
	Seed           int64         `json:"seed" yaml:"seed"`                     // simplex only
	Occlusion      bool          `json:"occlusion" yaml:"occlusion"`
	Layers         []LayerConfig `json:"layers" yaml:"layers"`
}

type LayerConfig struct {
	Scale  float32 `json:"scale" yaml:"scale"`
	Weight float32 `json:"weight" yaml:"weight"`
}

type ViewConfig struct {
	Distance    int `json:"distance" yaml:"distance"`       // radius in chunks
	MaxDistance int `json:"maxDistance" yaml:"maxDistance"` // upper bound accepted from the UI
}

type CameraConfig struct {
	Speed    float32    `json:"speed" yaml:"speed"`
	Position [3]float32 `json:"position" yaml:"position"`
	Pitch    float32    `json:"pitch" yaml:"pitch"`
	Yaw      float32    `json:"yaw" yaml:"yaw"`
}

type RenderConfig struct {
	Width             int        `json:"width" yaml:"width"`
	Height            int        `json:"height" yaml:"height"`
	Fog               bool       `json:"fog" yaml:"fog"`
	Wireframe         bool       `json:"wireframe" yaml:"wireframe"`
	LightSource       [3]float32 `json:"lightSource" yaml:"lightSource"`
	LightColor        [3]float32 `json:"lightColor" yaml:"lightColor"`
	AmbientBrightness float32    `json:"ambientBrightness" yaml:"ambientBrightness"`
}

type LoopConfig struct {
	FrameRate Duration `json:"frameRate" yaml:"frameRate"` // e.g. "16ms"
}

type TraceConfig struct {
	Path string `json:"path" yaml:"path"` // empty disables the frame trace
}

// Load reads configuration from a JSON file if provided. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("check config schema: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func validateSchema(data []byte) error {
	schema, err := jsonschema.CompileString("config.schema.json", schemaSource)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return schema.Validate(doc)
}

func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			ChunkSize:      16,
			TerrainScale:   200,
			BaselineOffset: 80,
			Primitive:      "gradient",
			Seed:           1337,
			Occlusion:      true,
			Layers: []LayerConfig{
				{Scale: 1, Weight: 80},
				{Scale: 2, Weight: 40},
				{Scale: 6, Weight: 30},
			},
		},
		View: ViewConfig{
			Distance:    12,
			MaxDistance: 32,
		},
		Camera: CameraConfig{
			Speed: 100,
		},
		Render: RenderConfig{
			Width:             1280,
			Height:            720,
			LightSource:       [3]float32{0, 50, -120},
			LightColor:        [3]float32{1, 1, 1},
			AmbientBrightness: 0.4,
		},
		Loop: LoopConfig{
			FrameRate: Duration(16 * time.Millisecond),
		},
	}
}

func (c *Config) Validate() error {
	if c.Terrain.ChunkSize <= 0 {
		return errors.New("terrain.chunkSize must be positive")
	}
	if c.Terrain.TerrainScale == 0 {
		return errors.New("terrain.terrainScale must be non-zero")
	}
	switch c.Terrain.Primitive {
	case "", "gradient", "simplex":
	default:
		return fmt.Errorf("terrain.primitive %q is not supported", c.Terrain.Primitive)
	}
	if c.View.Distance < 0 {
		return errors.New("view.distance cannot be negative")
	}
	if c.View.MaxDistance < 1 {
		return errors.New("view.maxDistance must be at least 1")
	}
	if c.View.Distance > c.View.MaxDistance {
		return errors.New("view.distance must be <= view.maxDistance")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New("render dimensions must be positive")
	}
	if c.Loop.FrameRate < 0 {
		return errors.New("loop.frameRate cannot be negative")
	}
	return nil
}
