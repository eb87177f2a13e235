package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "")
	defer Setup(os.Stderr, "")
	defer func() { Verbose, Quiet = false, false }()

	Verbose, Quiet = false, false
	Info("info %d", 1)
	Debug("debug %d", 1)
	Error("error %d", 1)

	out := buf.String()
	if !strings.Contains(out, "railmon: info 1") || !strings.Contains(out, "railmon: error 1") {
		t.Errorf("missing messages:\n%s", out)
	}
	if strings.Contains(out, "debug") {
		t.Errorf("debug printed without Verbose:\n%s", out)
	}

	buf.Reset()
	Verbose, Quiet = true, true
	Info("info %d", 2)
	Debug("debug %d", 2)
	Error("error %d", 2)

	out = buf.String()
	if strings.Contains(out, "info 2") {
		t.Errorf("info printed in Quiet mode:\n%s", out)
	}
	if !strings.Contains(out, "debug 2") || !strings.Contains(out, "error 2") {
		t.Errorf("missing messages:\n%s", out)
	}
}

func TestSetupLogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "railmon.log")

	closer := Setup(&buf, path)
	Error("rail %d missing", 6)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	Setup(os.Stderr, "")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "rail 6 missing") {
		t.Errorf("log file = %q", data)
	}
	if !strings.Contains(buf.String(), "rail 6 missing") {
		t.Errorf("console output = %q", buf.String())
	}
}
