package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli"

	"github.com/lixenwraith/skinvm/config"
	"github.com/lixenwraith/skinvm/loader"
	"github.com/lixenwraith/skinvm/logger"
	"github.com/lixenwraith/skinvm/registry"
	"github.com/lixenwraith/skinvm/render"
)

// checkResult is the outcome of building one skin file
type checkResult struct {
	Path    string
	Objects int
	Diags   []loader.Diagnostic
	Err     error
}

func checkCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one skin file is required")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	results := checkFiles(cfg, c.Args(), c.App.Writer)

	failed := 0
	for _, r := range results {
		entry := log.WithField("file", r.Path)
		if r.Err != nil {
			failed++
			entry.WithError(r.Err).Error("build failed")
			continue
		}
		for _, d := range r.Diags {
			entry.Warn(d.String())
		}
		entry.WithField("objects", r.Objects).Info("ok")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d skins failed", failed, len(results))
	}
	return nil
}

// checkFiles builds each skin headless; unknown attributes are always collected
func checkFiles(cfg *config.Config, paths []string, progress io.Writer) []checkResult {
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("checking"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	reg := registry.NewDefault()
	results := make([]checkResult, 0, len(paths))
	for _, path := range paths {
		// Diagnostics are reported after the bar finishes
		deps := newDeps(cfg, render.NewRecorder())
		deps.Log = logger.Discard()
		r := checkResult{Path: path}
		_, tree, diags, err := loader.LoadFile(path, reg, deps, loader.PolicyWarn)
		r.Diags, r.Err = diags, err
		if tree != nil {
			r.Objects = tree.Len()
			tree.Dispose()
		}
		results = append(results, r)
		bar.Add(1)
	}
	bar.Finish()
	return results
}
