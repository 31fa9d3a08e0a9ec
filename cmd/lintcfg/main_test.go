package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"go.uber.org/goleak"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/ruleset"
)

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         config.Format
		wantErr      bool
	}{
		{"", "", config.FormatHCL, false},
		{"json", "", config.FormatJSON, false},
		{"", "out.yml", config.FormatYAML, false},
		{"hcl", "out.json", config.FormatHCL, false},
		{"", "out.txt", 0, true},
		{"toml", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.flag+"|"+tt.output, func(t *testing.T) {
			got, err := outputFormat(tt.flag, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("outputFormat() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoadSource_Errors(t *testing.T) {
	if _, err := loadSource(nil, ""); err == nil {
		t.Error("loadSource() with nothing error = nil, want error")
	}
	if _, err := loadSource([]string{"a.hcl"}, "project"); err == nil {
		t.Error("loadSource() with file and profile error = nil, want error")
	}
	if _, err := loadSource(nil, "backend"); err == nil {
		t.Error("loadSource() with unknown profile error = nil, want error")
	}
}

func writeDoc(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveSource(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "base.yaml", `
sourceRules:
  curly: [true, ignore-same-line]
  no-console: false
`)
	path := writeDoc(t, dir, "tslint.hcl", `
ruleDirectories = ["./missing-rules"]
extends         = ["./base.yaml"]
defaultSeverity = "warning"
sourceRules = {
  "no-console" = [true, "log"]
}
`)

	src, err := loadSource([]string{path}, "")
	if err != nil {
		t.Fatalf("loadSource() error = %v", err)
	}
	out, err := resolveSource(context.Background(), src, config.FormatJSON, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("resolveSource() error = %v", err)
	}

	doc, err := config.Decode("effective.json", out)
	if err != nil {
		t.Fatalf("Decode() error = %v\n%s", err, out)
	}
	want := ruleset.Rules{
		"curly":      ruleset.Enable("ignore-same-line"),
		"no-console": ruleset.Enable("log"),
	}
	if diff := cmp.Diff(want, doc.SourceRules); diff != "" {
		t.Errorf("SourceRules mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Extends) != 0 {
		t.Errorf("Extends = %v, want none", doc.Extends)
	}
	if doc.DefaultSeverity != ruleset.WARNING {
		t.Errorf("DefaultSeverity = %s, want %s", doc.DefaultSeverity, ruleset.WARNING)
	}
}

func TestResolveSource_Profile(t *testing.T) {
	src, err := loadSource(nil, "ui-project")
	if err != nil {
		t.Fatalf("loadSource() error = %v", err)
	}
	out, err := resolveSource(context.Background(), src, config.FormatYAML, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("resolveSource() error = %v", err)
	}
	doc, err := config.Decode("effective.yaml", out)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(ruleset.Enable(2, map[string]any{"SwitchCase": 1}), doc.SourceRules["ter-indent"]); diff != "" {
		t.Errorf("ter-indent mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSource_UnknownPreset(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "tslint.hcl", `extends = ["tslint:nonexistent"]`)

	src, err := loadSource([]string{path}, "")
	if err != nil {
		t.Fatalf("loadSource() error = %v", err)
	}
	if _, err := resolveSource(context.Background(), src, config.FormatHCL, hclog.NewNullLogger()); err == nil {
		t.Error("resolveSource() error = nil, want unknown preset error")
	}
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeDoc(t, dir, "tslint.json", `{"sourceRules": {"quotemark": [true, "single"], "curly": true}}`)
	out := filepath.Join(dir, "tslint.yaml")

	t.Cleanup(func() { fmtFlags.format, fmtFlags.output = "", "" })
	rootCmd.SetArgs([]string{"fmt", in, "--output", out})
	rootCmd.SetOut(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("fmt error = %v", err)
	}

	doc, err := config.Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := ruleset.Rules{
		"curly":     ruleset.Enable(),
		"quotemark": ruleset.Enable("single"),
	}
	if diff := cmp.Diff(want, doc.SourceRules); diff != "" {
		t.Errorf("SourceRules mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetsCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetArgs([]string{"presets"})
	rootCmd.SetOut(&buf)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("presets error = %v", err)
	}
	for _, want := range []string{"tslint:recommended", "tslint-react", "ui-project"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("output does not contain %q:\n%s", want, buf.String())
		}
	}
}

func TestDebouncer(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)
	defer d.stop()

	var calls atomic.Int32
	for range 5 {
		d.trigger(func() { calls.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("callback called %d times, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.trigger(func() { calls.Add(1) })
	d.stop()
	d.trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("callback called %d times after stop, want 0", got)
	}
}

func TestDebouncer_StopWaitsForRunningCall(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)

	started := make(chan struct{})
	var finished atomic.Bool
	d.trigger(func() {
		close(started)
		time.Sleep(100 * time.Millisecond)
		finished.Store(true)
	})

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never started")
	}
	d.stop()

	if !finished.Load() {
		t.Error("stop() returned while the callback was still running")
	}
}

func TestWatchFile(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := writeDoc(t, t.TempDir(), "tslint.hcl", `sourceRules = {}`)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, hclog.NewNullLogger(), func() error {
			select {
			case changed <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Keep writing until the watcher has registered and reports a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-changed:
			break wait
		case <-tick.C:
			writeDoc(t, filepath.Dir(path), "tslint.hcl", `sourceRules = { curly = true }`)
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile() error = %v", err)
	}
}
