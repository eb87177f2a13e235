package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/OpenTraceLab/railmon/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func findTestdata(t *testing.T) string {
	t.Helper()
	testdata := "../../../testdata"
	if _, err := os.Stat(testdata); os.IsNotExist(err) {
		t.Fatalf("testdata directory not found")
	}
	abs, err := filepath.Abs(testdata)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	return abs
}

// resetFlags restores every flag to its default so that values and Changed
// state do not leak between test cases.
func resetFlags(cmds ...*cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range cmds {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd, readCmd, decodeCmd, boardsCmd, cablesCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// TestDecodeE2E tests the decode command end-to-end
func TestDecodeE2E(t *testing.T) {
	testdata := findTestdata(t)
	conf := filepath.Join(testdata, "railmon.yaml")
	transceiver := filepath.Join(testdata, "transceiver_kit.txt")
	development := filepath.Join(testdata, "development_kit.txt")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantMissing []string
	}{
		{
			name: "transceiver kit",
			args: []string{"decode", "--config", conf, transceiver},
			wantContain: []string{
				"Board detected: Cyclone IV GX Transceiver Starter Kit",
				"Highlighted current readings:",
				"0.054 (exp 0.04) A    Rail 8    00 01 00 00",
				"0.067 A    Rail 1    3B 01 00 00",
				"0.168 A    Rail 4    17 03 00 00",
			},
			wantMissing: []string{"error:", "Script output:"},
		},
		{
			name: "development kit",
			args: []string{"decode", "--config", conf, development},
			wantContain: []string{
				"Board detected: Cyclone IV GX FPGA Development Kit",
				"0.350 (exp 0.304) A    Rail 6    6E 06 00 00",
				"0.043 A    Rail 1    CA 00 00 00",
				"0.000 A    Rail 3    00 00 00 00",
			},
			wantMissing: []string{"error:", "Transceiver"},
		},
		{
			name: "plain mode",
			args: []string{"decode", "--config", conf, "--plain", transceiver},
			wantContain: []string{
				"Current readings:",
				"0.054 A    Rail 8    00 01 00 00",
			},
			wantMissing: []string{"(exp", "Highlighted"},
		},
		{
			name: "highlight disabled",
			args: []string{"decode", "--config", conf, "--highlight=false", transceiver},
			wantContain: []string{"Current readings:"},
			wantMissing: []string{"(exp"},
		},
		{
			name: "missing rail keeps other rails",
			args: []string{"decode", "--config", conf, filepath.Join(testdata, "missing_rail.txt")},
			wantContain: []string{
				"error: report: no line for Rail 6",
				"Rail 8    00 01 00 00",
				"Rail 1    3B 01 00 00",
				"Rail 7    00 00 00 00",
			},
		},
		{
			name: "print script output",
			args: []string{"decode", "--config", conf, "--print-script-output", transceiver},
			wantContain: []string{
				"Script output:",
				"Info: Rail 1 ADC word: 3B 01 00 00",
			},
			wantMissing: []string{"Welcome to Altera SystemConsole"},
		},
		{
			name:    "unknown board",
			args:    []string{"decode", "--config", conf, filepath.Join(testdata, "unknown_board.txt")},
			wantErr: true,
		},
		{
			name: "unknown board with override",
			args: []string{"decode", "--config", conf, "--board", "civgx-development-kit", filepath.Join(testdata, "unknown_board.txt")},
			wantContain: []string{
				"Board selected: Cyclone IV GX FPGA Development Kit",
				"0.350 (exp 0.304) A    Rail 6",
			},
		},
		{
			name:    "bad board override",
			args:    []string{"decode", "--config", conf, "--board", "de0-nano", transceiver},
			wantErr: true,
		},
		{
			name:    "non-existent file",
			args:    []string{"decode", "--config", conf, "/nonexistent/capture.txt"},
			wantErr: true,
		},
		{
			name:    "missing argument",
			args:    []string{"decode", "--config", conf},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, "", tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none\nOutput: %s", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantMissing {
				if strings.Contains(output, unwanted) {
					t.Errorf("Output contains unexpected string: %q\nGot:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestDecodeStdinJSON(t *testing.T) {
	testdata := findTestdata(t)
	data, err := os.ReadFile(filepath.Join(testdata, "missing_rail.txt"))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}

	output, err := runCLI(t, string(data), "decode", "--config", filepath.Join(testdata, "railmon.yaml"), "--json", "-")
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}

	var info report.RunInfo
	if err := json.Unmarshal([]byte(output), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if info.Board != "civgx-transceiver-kit" || len(info.Rails) != 8 {
		t.Fatalf("unexpected run info: %+v", info)
	}
	if info.Rails[6].Error == "" {
		t.Errorf("rail 6 should report an error: %+v", info.Rails[6])
	}
	if !info.Rails[0].Flagged || info.Rails[0].Sample != 256 {
		t.Errorf("rail 8 = %+v", info.Rails[0])
	}
}

func TestBoardsE2E(t *testing.T) {
	testdata := findTestdata(t)
	output, err := runCLI(t, "", "boards", "--config", filepath.Join(testdata, "railmon.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{
		"Cyclone IV GX Transceiver Starter Kit (civgx-transceiver-kit)",
		`Detected by: "EP4CGX150@"`,
		"2.5_VCC",
		"VCCD_PLL",
		"Rail 8",
		"0.304A",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}
}

// fakeSystemConsole writes a shell script standing in for system-console.
func fakeSystemConsole(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake system-console is a shell script")
	}
	path := filepath.Join(t.TempDir(), "system-console")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("write fake system-console: %v", err)
	}
	return path
}

func TestReadE2E(t *testing.T) {
	testdata := findTestdata(t)
	conf := filepath.Join(testdata, "railmon.yaml")

	t.Run("full run", func(t *testing.T) {
		exe := fakeSystemConsole(t, `[ "$1" = "--script=read_power_rails.tcl" ] || exit 9
cat "`+filepath.Join(testdata, "development_kit.txt")+`"`)

		output, err := runCLI(t, "", "read", "--config", conf, "--system-console", exe)
		if err != nil {
			t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
		}
		for _, want := range []string{
			"Starting system console...\nSystem console exited.\nBoard detected: Cyclone IV GX FPGA Development Kit",
			"Highlighted current readings:",
			"0.350 (exp 0.304) A    Rail 6",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
			}
		}
	})

	t.Run("json keeps progress off stdout", func(t *testing.T) {
		exe := fakeSystemConsole(t, `cat "`+filepath.Join(testdata, "transceiver_kit.txt")+`"`)

		output, err := runCLI(t, "", "read", "--config", conf, "--json", "--system-console", exe)
		if err != nil {
			t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
		}
		if strings.Contains(output, "Starting system console") {
			t.Errorf("progress message mixed into JSON:\n%s", output)
		}
		var info report.RunInfo
		if err := json.Unmarshal([]byte(output), &info); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, output)
		}
	})

	t.Run("console fails after printing", func(t *testing.T) {
		exe := fakeSystemConsole(t, `cat "`+filepath.Join(testdata, "missing_rail.txt")+`"; echo "Error: cable lost" >&2; exit 1`)

		output, err := runCLI(t, "", "read", "--config", conf, "--system-console", exe)
		if err != nil {
			t.Fatalf("per-rail failures must not fail the run: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "no line for Rail 6") {
			t.Errorf("missing rail not reported:\n%s", output)
		}
	})

	t.Run("console not found", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "system-console")
		if _, err := runCLI(t, "", "read", "--config", conf, "--system-console", missing); err == nil {
			t.Fatal("expected launch error")
		}
	})

	t.Run("no marker", func(t *testing.T) {
		exe := fakeSystemConsole(t, `echo "Error: No JTAG hardware available"`)
		if _, err := runCLI(t, "", "read", "--config", conf, "--system-console", exe); err == nil {
			t.Fatal("expected board detection error for empty script output")
		}
	})
}
