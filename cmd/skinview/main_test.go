package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/skinvm/config"
	"github.com/lixenwraith/skinvm/loader"
	"github.com/lixenwraith/skinvm/registry"
	"github.com/lixenwraith/skinvm/render"
)

const fixture = "../../loader/testdata/classic.xml"

// TestCheckFiles verifies per-file results and progress output
func TestCheckFiles(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.xml")
	if err := os.WriteFile(broken, []byte(`<container><vis id="v"/></container>`), 0o644); err != nil {
		t.Fatal(err)
	}

	var progress bytes.Buffer
	results := checkFiles(config.DefaultConfig(), []string{fixture, broken}, &progress)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Err != nil || results[0].Objects != 8 || len(results[0].Diags) != 1 {
		t.Errorf("fixture result = %+v", results[0])
	}
	if results[1].Err == nil || !strings.Contains(results[1].Err.Error(), "vis#v") {
		t.Errorf("broken result = %+v", results[1])
	}
	if progress.Len() == 0 {
		t.Error("expected progress output")
	}
}

// TestFormatDump verifies the dump lists every object with its resolved box
func TestFormatDump(t *testing.T) {
	rec := render.NewRecorder()
	cfg := config.DefaultConfig()
	deps := newDeps(cfg, rec)
	doc, tree, _, err := loader.LoadFile(fixture, registry.NewDefault(), deps, loader.PolicyIgnore)
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Draw(); err != nil {
		t.Fatal(err)
	}

	out := formatDump(doc.Info, tree, rec)
	for _, want := range []string{"Classic Demo", "archive winampskin_Classic_Demo", "#play", "(40,88 20x10)", "togglebutton"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestSetupLoggingDiscardsByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	f, err := setupLogging("")
	if err != nil || f != nil {
		t.Fatalf("setupLogging(\"\") = %v, %v", f, err)
	}
	if log.Out != io.Discard {
		t.Error("expected logs to be discarded")
	}

	path := filepath.Join(t.TempDir(), "skinview.log")
	f, err = setupLogging(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	log.Info("hello")
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file content = %q", data)
	}
}
