package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tea-layershell.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	f, ok := open("logging")
	if !ok {
		return
	}
	defer f.Close()

	log.SetOutput(f)
	log.Println(err)
}

// Errorf formats and logs an error.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether Trace writes entries.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, ok := open("trace logging")
	if !ok {
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

func open(what string) (*os.File, bool) {
	traceMu.Lock()
	path := logPath
	traceMu.Unlock()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return nil, false
	}
	return f, true
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the current log destination.
func Path() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}
