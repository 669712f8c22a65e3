package main

import (
	"testing"

	"github.com/atomicstack/tea-layershell/internal/app"
	"github.com/atomicstack/tea-layershell/internal/config"
	"github.com/atomicstack/tea-layershell/internal/layershell"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestApplyTerminalSizeKeepsConfiguredOutput(t *testing.T) {
	tty := ttyDetails{Detected: &ttyDetected{Source: "stdout", Width: 120, Height: 40}}

	cfg := app.Config{Output: layershell.Size{Width: 90}}
	applyTerminalSize(&cfg, tty)
	if cfg.Output != (layershell.Size{Width: 90, Height: 40}) {
		t.Fatalf("expected 90x40, got %+v", cfg.Output)
	}

	cfg = app.Config{}
	applyTerminalSize(&cfg, ttyDetails{})
	if cfg.Output != (layershell.Size{}) {
		t.Fatalf("expected output to stay unset without a terminal, got %+v", cfg.Output)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Settings: layershell.DefaultSettings(),
			Output:   layershell.Size{Width: 80, Height: 24},
			Preview:  true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "settings.toml",
		Flags: map[string]string{
			"namespace":   "tea-layershell",
			"anchor":      "top|bottom|left|right",
			"outputWidth": "80",
			"preview":     "true",
		},
		Args: []string{"-preview"},
	}

	payload := startupTracePayload(cfg, ttyDetails{})

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["namespace"] != "tea-layershell" {
		t.Fatalf("expected namespace flag %q, got %v", "tea-layershell", flagsValue["namespace"])
	}
	if flagsValue["anchor"] != "top|bottom|left|right" {
		t.Fatalf("expected anchor flag, got %v", flagsValue["anchor"])
	}
	if flagsValue["outputWidth"] != "80" {
		t.Fatalf("expected output width 80, got %v", flagsValue["outputWidth"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if flagsValue["settingsFile"] != "settings.toml" {
		t.Fatalf("expected settings file, got %v", flagsValue["settingsFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
