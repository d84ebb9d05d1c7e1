package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/issuepipe/core"
	"github.com/gaurav-prasanna/issuepipe/core/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestRunFlags_Config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	body := "outputImageDir: from-file/img\noutputDataDir: from-file/data\nextractPagesToImage: [2]\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantImage string
		wantData  string
		wantPages []int
		wantErr   bool
	}{
		{
			name:      "defaults",
			args:      nil,
			wantImage: "",
			wantData:  "",
		},
		{
			name:      "file only",
			args:      []string{"--config", cfgPath},
			wantImage: "from-file/img",
			wantData:  "from-file/data",
			wantPages: []int{2},
		},
		{
			name:      "flags override file",
			args:      []string{"--config", cfgPath, "--image-dir", "cli/img", "--pages", "4,6"},
			wantImage: "cli/img",
			wantData:  "from-file/data",
			wantPages: []int{4, 6},
		},
		{
			name:      "empty flag disables output",
			args:      []string{"--config", cfgPath, "--data-dir", ""},
			wantImage: "from-file/img",
			wantData:  "",
			wantPages: []int{2},
		},
		{
			name:    "invalid page",
			args:    []string{"--pages", "0"},
			wantErr: true,
		},
		{
			name:    "missing config",
			args:    []string{"--config", filepath.Join(dir, "missing.json")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f runFlags
			fs := pflag.NewFlagSet(tt.name, pflag.ContinueOnError)
			f.bind(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg, err := f.config(fs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("config() error = %v", err)
			}
			if cfg.OutputImageDir != tt.wantImage || cfg.OutputDataDir != tt.wantData {
				t.Errorf("dirs = %q, %q; want %q, %q", cfg.OutputImageDir, cfg.OutputDataDir, tt.wantImage, tt.wantData)
			}
			if len(cfg.ExtractPagesToImage) != len(tt.wantPages) {
				t.Fatalf("pages = %v, want %v", cfg.ExtractPagesToImage, tt.wantPages)
			}
			for i := range tt.wantPages {
				if cfg.ExtractPagesToImage[i] != tt.wantPages[i] {
					t.Errorf("pages = %v, want %v", cfg.ExtractPagesToImage, tt.wantPages)
				}
			}
		})
	}
}

// TestLayoutThenProcess writes a calibration sheet and runs it back through
// the process command. The sheet carries no field text, so the record falls
// back to the file name for its slug.
func TestLayoutThenProcess(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "sheet.pdf")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"layout", "--out", sheet})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Written: "+sheet) {
		t.Errorf("layout output = %q", out.String())
	}

	out.Reset()
	rootCmd.SetArgs([]string{"process", sheet})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("process: %v\n%s", err, errOut.String())
	}

	var rec map[string]any
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("decode record %q: %v", out.String(), err)
	}
	if rec["slug"] != "sheet" || rec["path"] != "/pdf/sheet.pdf" {
		t.Errorf("record = %v", rec)
	}
	if rec["date"] != nil || rec["issueNumber"] != nil {
		t.Errorf("expected null date and issue, got %v", rec)
	}
	if _, err := os.Stat(sheet); err != nil {
		t.Errorf("source should be kept: %v", err)
	}
	if !strings.Contains(errOut.String(), "run_id=") {
		t.Errorf("log output missing run_id: %q", errOut.String())
	}
}

// resetFlags puts every flag of c back to its default, since cobra keeps
// parsed values between Execute calls.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	c.Flags().VisitAll(func(f *pflag.Flag) {
		var err error
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = sv.Replace(nil)
		} else {
			err = f.Value.Set(f.DefValue)
		}
		if err != nil {
			t.Fatalf("reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	})
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		resetFlags(t, c)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// scanDir holds a broken PDF that sorts first and a valid issue after it.
func scanDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r := render.NewLayoutRenderer()
	r.Labels = false
	sheet, err := r.Render(core.DefaultLayout(), render.Sample{
		Date:  "March 2024",
		Issue: "Issue 42",
	})
	if err != nil {
		t.Fatalf("render sheet: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a-broken.pdf"), []byte("not a pdf"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b-issue.pdf"), sheet, 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestScanCommand(t *testing.T) {
	dir := scanDir(t)
	empty := t.TempDir()

	writeConfig := func(t *testing.T, inputDir string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "run.yaml")
		if err := os.WriteFile(path, []byte("inputDir: "+inputDir+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("halts on first failure", func(t *testing.T) {
		out, err := execute(t, "scan", dir)
		if err == nil || !strings.Contains(err.Error(), "a-broken.pdf") {
			t.Fatalf("scan error = %v, want the failure of a-broken.pdf", err)
		}
		if !strings.Contains(out, "[1/2] Processing") || strings.Contains(out, "[2/2]") {
			t.Errorf("scan should stop after the first file:\n%s", out)
		}
	})

	t.Run("isolate reports a summary", func(t *testing.T) {
		out, err := execute(t, "scan", dir, "--isolate")
		if err == nil || !strings.Contains(err.Error(), "1/2 files failed") {
			t.Fatalf("scan error = %v, want 1/2 files failed", err)
		}
		for _, want := range []string{"[2/2] Processing", "✓ Processed: 2024-03-issue-42", "1/2 files processed"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("input dir from config", func(t *testing.T) {
		out, err := execute(t, "scan", "--config", writeConfig(t, dir), "--isolate")
		if err == nil {
			t.Fatal("expected the broken file to fail the run")
		}
		if !strings.Contains(out, "Scanning "+dir) || !strings.Contains(out, "1/2 files processed") {
			t.Errorf("config inputDir not used:\n%s", out)
		}
	})

	t.Run("positional dir wins over config", func(t *testing.T) {
		out, err := execute(t, "scan", empty, "--config", writeConfig(t, dir))
		if err != nil {
			t.Fatalf("scan error = %v", err)
		}
		if !strings.Contains(out, "Scanning "+empty) || !strings.Contains(out, "0/0 files processed") {
			t.Errorf("positional dir not used:\n%s", out)
		}
	})
}
