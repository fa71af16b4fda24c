package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in         string
		cols, rows int
		wantErr    bool
	}{
		{"100x30", 100, 30, false},
		{" 80 X 24 ", 80, 24, false},
		{"100", 0, 0, true},
		{"0x10", 0, 0, true},
		{"10xabc", 0, 0, true},
	}
	for _, tt := range tests {
		cols, rows, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestWriteCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCatalog(&buf); err != nil {
		t.Fatalf("writeCatalog: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"SOLAR", "PROXIMA", "MOV", "Saturn", "rings", "Gargantua", "not selectable", "Tesseract", "cube", "video"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q", want)
		}
	}
}

func TestWriteFrame(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5
	cfg.Stars = 0

	var buf bytes.Buffer
	err := writeFrame(&buf, cfg, logging.Discard(), frameOptions{cols: 60, rows: 20, after: time.Second})
	if err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	if strings.TrimSpace(buf.String()) == "" {
		t.Error("frame is blank")
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("plain frame should have no escape codes")
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"--version"}, 0, "ls-orrery", ""},
		{"list", []string{"--list", "--stars", "0"}, 0, "PROXIMA", ""},
		{"invalid config", []string{"--fps", "0", "--list"}, 1, "", "invalid config"},
		{"unknown system", []string{"--system", "andromeda", "--list"}, 1, "", "andromeda"},
		{"unknown flag", []string{"--warp"}, 2, "", "warp"},
		{"bad frame size", []string{"--frame", "--frame-size", "wide"}, 1, "", "frame size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%v) = %d, want %d (stderr %q)", tt.args, got, tt.want, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunLogsFailureBeforeExit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "orrery.log")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--frame", "--frame-size", "0x0", "--log-file", logPath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run = %d, want 1", code)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[ERROR] headless: frame size") {
		t.Errorf("log = %q, want the headless error", data)
	}
}

func TestSetOverridesOnlyExplicitFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("system", "solar", "")
	fs.Int("fps", 30, "")
	fs.Bool("list", false, "")
	if err := fs.Parse([]string{"--system", "mov", "--list"}); err != nil {
		t.Fatal(err)
	}

	got := setOverrides(fs)
	if len(got) != 1 {
		t.Fatalf("overrides = %v, want only system", got)
	}
	if got[config.KeySystem] != "mov" {
		t.Errorf("system override = %v, want mov", got[config.KeySystem])
	}
}
