package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/tea-layershell/internal/app"
	"github.com/atomicstack/tea-layershell/internal/layershell"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the settings file that was loaded, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig        = "TEA_LAYERSHELL_CONFIG"
	envNamespace     = "TEA_LAYERSHELL_NAMESPACE"
	envWidth         = "TEA_LAYERSHELL_WIDTH"
	envHeight        = "TEA_LAYERSHELL_HEIGHT"
	envAnchor        = "TEA_LAYERSHELL_ANCHOR"
	envLayer         = "TEA_LAYERSHELL_LAYER"
	envExclusiveZone = "TEA_LAYERSHELL_EXCLUSIVE_ZONE"
	envMargin        = "TEA_LAYERSHELL_MARGIN"
	envKeyboard      = "TEA_LAYERSHELL_KEYBOARD"
	envKeymap        = "TEA_LAYERSHELL_KEYMAP"
	envOutputWidth   = "TEA_LAYERSHELL_OUTPUT_WIDTH"
	envOutputHeight  = "TEA_LAYERSHELL_OUTPUT_HEIGHT"
	envFrameInterval = "TEA_LAYERSHELL_FRAME_INTERVAL"
	envPreview       = "TEA_LAYERSHELL_PREVIEW"
	envClock         = "TEA_LAYERSHELL_CLOCK"
	envTrace         = "TEA_LAYERSHELL_TRACE"
	envLogFile       = "TEA_LAYERSHELL_LOG_FILE"
)

// flagEnv maps settings flags to the environment variable that backs them.
var flagEnv = map[string]string{
	"namespace":      envNamespace,
	"width":          envWidth,
	"height":         envHeight,
	"anchor":         envAnchor,
	"layer":          envLayer,
	"exclusive-zone": envExclusiveZone,
	"margin":         envMargin,
	"keyboard":       envKeyboard,
	"keymap":         envKeymap,
	"output-width":   envOutputWidth,
	"output-height":  envOutputHeight,
	"frame-interval": envFrameInterval,
}

// fileSettings is the layout of the TOML settings file.
type fileSettings struct {
	Namespace             string             `toml:"namespace"`
	Width                 *int               `toml:"width"`
	Height                *int               `toml:"height"`
	ExclusiveZone         *int32             `toml:"exclusive_zone"`
	Anchor                []string           `toml:"anchor"`
	Layer                 string             `toml:"layer"`
	Margin                *layershell.Margin `toml:"margin"`
	KeyboardInteractivity string             `toml:"keyboard_interactivity"`
	VirtualKeyboard       *struct {
		Keymap string `toml:"keymap"`
		Format string `toml:"format"`
	} `toml:"virtual_keyboard"`
	Output *struct {
		Width  uint32 `toml:"width"`
		Height uint32 `toml:"height"`
	} `toml:"output"`
	FrameInterval string `toml:"frame_interval"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tea-layershell", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	file := fs.String("config", envOrDefault(env, envConfig, ""), "path to a TOML settings file")
	namespace := fs.String("namespace", envOrDefault(env, envNamespace, ""), "layer surface namespace")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "main surface width (0 stretches to the output)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "main surface height (0 stretches to the output)")
	anchor := fs.String("anchor", envOrDefault(env, envAnchor, ""), "edges to anchor to, e.g. bottom|left|right")
	layer := fs.String("layer", envOrDefault(env, envLayer, ""), "surface layer: background, bottom, top or overlay")
	zone := fs.Int("exclusive-zone", envOrInt(env, envExclusiveZone, 0), "exclusive zone of the main surface")
	margin := fs.String("margin", envOrDefault(env, envMargin, ""), "margins as top,right,bottom,left")
	keyboard := fs.String("keyboard", envOrDefault(env, envKeyboard, ""), "keyboard interactivity: none, exclusive or on-demand")
	keymap := fs.String("keymap", envOrDefault(env, envKeymap, ""), "xkb keymap for the virtual keyboard")
	outputWidth := fs.Int("output-width", envOrInt(env, envOutputWidth, 0), "simulated output width (0 uses the terminal width)")
	outputHeight := fs.Int("output-height", envOrInt(env, envOutputHeight, 0), "simulated output height (0 uses the terminal height)")
	frame := fs.Duration("frame-interval", envOrDuration(env, envFrameInterval, 0), "minimum time between two compositor pumps")
	preview := fs.Bool("preview", envOrBool(env, envPreview, false), "print the main surface on exit")
	clock := fs.Bool("clock", envOrBool(env, envClock, false), "show a clock in the main window")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	for name, key := range flagEnv {
		if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
			set[name] = true
		}
	}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for name, v := range map[string]int{"width": *width, "height": *height, "output-width": *outputWidth, "output-height": *outputHeight} {
		if v < 0 {
			return Config{}, fmt.Errorf("%s must be >= 0 (got %d)", name, v)
		}
	}

	settings := layershell.DefaultSettings()
	output := layershell.Size{}
	interval := time.Duration(0)
	if *file != "" {
		fsettings, err := readFile(*file)
		if err != nil {
			return Config{}, err
		}
		if err := fsettings.apply(&settings, &output, &interval); err != nil {
			return Config{}, fmt.Errorf("%s: %w", *file, err)
		}
	}

	if set["namespace"] && *namespace != "" {
		settings.Namespace = *namespace
	}
	if set["width"] || set["height"] {
		size := layershell.Size{}
		if settings.Size != nil {
			size = *settings.Size
		}
		if set["width"] {
			size.Width = uint32(*width)
		}
		if set["height"] {
			size.Height = uint32(*height)
		}
		settings.Size = &size
	}
	if set["anchor"] {
		a, err := layershell.ParseAnchor(*anchor)
		if err != nil {
			return Config{}, err
		}
		settings.Anchor = a
	}
	if set["layer"] {
		l, err := layershell.ParseLayer(*layer)
		if err != nil {
			return Config{}, err
		}
		settings.Layer = l
	}
	if set["exclusive-zone"] {
		settings.ExclusiveZone = int32(*zone)
	}
	if set["margin"] {
		m, err := parseMargin(*margin)
		if err != nil {
			return Config{}, err
		}
		settings.Margin = m
	}
	if set["keyboard"] {
		k, err := layershell.ParseKeyboardInteractivity(*keyboard)
		if err != nil {
			return Config{}, err
		}
		settings.KeyboardInteractivity = k
	}
	if set["keymap"] && *keymap != "" {
		settings.VirtualKeyboard = &layershell.VirtualKeyboardSettings{KeymapPath: *keymap, KeymapFormat: defaultKeymapFormat}
	}
	if set["output-width"] {
		output.Width = uint32(*outputWidth)
	}
	if set["output-height"] {
		output.Height = uint32(*outputHeight)
	}
	if set["frame-interval"] {
		interval = *frame
	}

	cfg := Config{
		App: app.Config{
			Settings:      settings,
			Output:        output,
			FrameInterval: interval,
			Preview:       *preview,
			Clock:         *clock,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: *file,
		Flags: map[string]string{
			"config":        *file,
			"namespace":     settings.Namespace,
			"anchor":        settings.Anchor.String(),
			"layer":         settings.Layer.String(),
			"keyboard":      settings.KeyboardInteractivity.String(),
			"exclusiveZone": strconv.Itoa(int(settings.ExclusiveZone)),
			"outputWidth":   strconv.Itoa(int(output.Width)),
			"outputHeight":  strconv.Itoa(int(output.Height)),
			"frameInterval": interval.String(),
			"preview":       strconv.FormatBool(*preview),
			"clock":         strconv.FormatBool(*clock),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

const defaultKeymapFormat = "xkb_v1"

func readFile(path string) (fileSettings, error) {
	var out fileSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return out, nil
}

func (f fileSettings) apply(s *layershell.Settings, output *layershell.Size, interval *time.Duration) error {
	if f.Namespace != "" {
		s.Namespace = f.Namespace
	}
	if f.Width != nil || f.Height != nil {
		size := layershell.Size{}
		if f.Width != nil {
			if *f.Width < 0 {
				return fmt.Errorf("width must be >= 0 (got %d)", *f.Width)
			}
			size.Width = uint32(*f.Width)
		}
		if f.Height != nil {
			if *f.Height < 0 {
				return fmt.Errorf("height must be >= 0 (got %d)", *f.Height)
			}
			size.Height = uint32(*f.Height)
		}
		s.Size = &size
	}
	if f.ExclusiveZone != nil {
		s.ExclusiveZone = *f.ExclusiveZone
	}
	if len(f.Anchor) > 0 {
		a, err := layershell.ParseAnchor(strings.Join(f.Anchor, "|"))
		if err != nil {
			return err
		}
		s.Anchor = a
	}
	if f.Layer != "" {
		l, err := layershell.ParseLayer(f.Layer)
		if err != nil {
			return err
		}
		s.Layer = l
	}
	if f.Margin != nil {
		s.Margin = *f.Margin
	}
	if f.KeyboardInteractivity != "" {
		k, err := layershell.ParseKeyboardInteractivity(f.KeyboardInteractivity)
		if err != nil {
			return err
		}
		s.KeyboardInteractivity = k
	}
	if f.VirtualKeyboard != nil && f.VirtualKeyboard.Keymap != "" {
		format := f.VirtualKeyboard.Format
		if format == "" {
			format = defaultKeymapFormat
		}
		s.VirtualKeyboard = &layershell.VirtualKeyboardSettings{KeymapPath: f.VirtualKeyboard.Keymap, KeymapFormat: format}
	}
	if f.Output != nil {
		*output = layershell.Size{Width: f.Output.Width, Height: f.Output.Height}
	}
	if f.FrameInterval != "" {
		d, err := time.ParseDuration(f.FrameInterval)
		if err != nil {
			return fmt.Errorf("frame_interval: %w", err)
		}
		*interval = d
	}
	return nil
}

// parseMargin accepts one value for every edge, or four values in
// top,right,bottom,left order.
func parseMargin(s string) (layershell.Margin, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	values := make([]int32, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return layershell.Margin{}, fmt.Errorf("invalid margin %q: %w", s, err)
		}
		values[i] = int32(v)
	}
	switch len(values) {
	case 0:
		return layershell.Margin{}, nil
	case 1:
		v := values[0]
		return layershell.Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 4:
		return layershell.Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	}
	return layershell.Margin{}, fmt.Errorf("invalid margin %q: want 1 or 4 values", s)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	s := cfg.App.Settings
	if strings.TrimSpace(s.Namespace) == "" {
		return errors.New("namespace must not be empty")
	}
	if s.VirtualKeyboard != nil {
		if _, err := os.Stat(s.VirtualKeyboard.KeymapPath); err != nil {
			return fmt.Errorf("virtual keyboard keymap: %w", err)
		}
	}
	return nil
}
