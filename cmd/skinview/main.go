package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/lixenwraith/skinvm/config"
	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/logger"
	"github.com/lixenwraith/skinvm/render"
	"github.com/lixenwraith/skinvm/skin"
)

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "skinview"
	app.Usage = "Load, check and run Winamp Modern skins in the terminal"
	app.UsageText = "skinview [global options] command skin.xml"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "configuration file (default $XDG_CONFIG_HOME/skinvm/config.toml)"},
		cli.StringFlag{Name: "log-level", Usage: "override the configured log level"},
	}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Aliases:   []string{"r"},
			Usage:     "Render a skin and route mouse input to it",
			ArgsUsage: "skin.xml",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "track, t", Usage: "WAV file to load into the player"},
				cli.Float64Flag{Name: "tone", Usage: "load a test tone of this frequency in Hz when no track is given"},
				cli.BoolFlag{Name: "mute, m", Usage: "do not open the audio device"},
				cli.StringFlag{Name: "log-file", Usage: "write logs here while the screen is active"},
			},
			Action: runCommand,
		},
		{
			Name:      "check",
			Aliases:   []string{"c"},
			Usage:     "Build skins and report unknown kinds and attributes",
			ArgsUsage: "skin.xml...",
			Action:    checkCommand,
		},
		{
			Name:      "dump",
			Aliases:   []string{"d"},
			Usage:     "Print the object tree of a skin",
			ArgsUsage: "skin.xml",
			Action:    dumpCommand,
		},
	}
}

// loadConfig resolves the configuration file and applies the log level
func loadConfig(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.GlobalString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level := cfg.Log.Level
	if l := c.GlobalString("log-level"); l != "" {
		level = l
	}
	logger.SetLevel(level)
	return cfg, nil
}

// newDeps wires the dispatcher and renderer every object shares
func newDeps(cfg *config.Config, r render.Renderer) skin.Deps {
	entry := logrus.NewEntry(log)
	return skin.Deps{
		Dispatcher: event.NewDispatcher(entry),
		Renderer:   r,
		Log:        entry,
		Options:    cfg.SkinOptions(),
	}
}

func getFilename(c *cli.Context) (string, error) {
	f := c.Args().Get(0)
	if f == "" {
		return "", fmt.Errorf("skin file is required")
	}
	return f, nil
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
