package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/lixenwraith/skinvm/action"
	"github.com/lixenwraith/skinvm/audio"
	"github.com/lixenwraith/skinvm/loader"
	"github.com/lixenwraith/skinvm/registry"
	"github.com/lixenwraith/skinvm/render"
	"github.com/lixenwraith/skinvm/service"
	"github.com/lixenwraith/skinvm/skin"
	"github.com/lixenwraith/skinvm/status"
)

const frameInterval = 33 * time.Millisecond

// viewer owns the screen and the skin tree; all tree access happens on its loop
type viewer struct {
	screen tcell.Screen
	term   *render.Terminal
	tree   *skin.Tree
	player audio.Player
	stats  *status.Registry

	lastLine string
}

func runCommand(c *cli.Context) error {
	path, err := getFilename(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	logFile, err := setupLogging(c.String("log-file"))
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer log.SetOutput(os.Stderr)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	stats := status.NewRegistry()
	term := render.NewTerminal(screen, cfg.Render.CellWidth, cfg.Render.CellHeight)
	term.SetMetrics(stats)
	deps := newDeps(cfg, term)
	deps.Dispatcher.SetMetrics(stats)
	_, tree, diags, err := loader.LoadFile(path, registry.NewDefault(), deps, policy)
	if err != nil {
		return err
	}
	defer tree.Dispose()
	if len(diags) > 0 {
		log.WithField("count", len(diags)).Info("skin has diagnostics")
	}

	svc := audio.NewService(cfg.AudioEngine(), deps.Log)
	hub := service.NewHub()
	hub.Register(svc, c.Bool("mute"))
	if err := hub.Start(); err != nil {
		return err
	}
	defer func() {
		if err := hub.Stop(); err != nil {
			log.WithError(err).Warn("service shutdown")
		}
	}()
	if err := loadTrack(svc, c.String("track"), c.Float64("tone")); err != nil {
		return err
	}

	v := &viewer{screen: screen, term: term, tree: tree, player: svc.Engine(), stats: stats}
	b := action.Bind(tree, svc.Engine(), deps.Log, v.schedule)
	log.WithFields(logrus.Fields{"bound": b.Bound, "objects": tree.Len()}).Info("skin ready")

	if err := tree.Draw(); err != nil {
		log.WithError(err).Warn("initial draw incomplete")
	}
	v.refreshStatus()
	term.Flush()
	v.run()
	return nil
}

// setupLogging sends logs to path while the screen owns the terminal, or drops them
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// loadTrack loads a WAV file, or a generated tone when freq is set
func loadTrack(svc *audio.Service, path string, freq float64) error {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		s, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("decode %s: %w", path, err)
		}
		svc.LoadTrack(s, format)
		return nil
	}
	if freq <= 0 {
		return nil
	}
	rate := svc.Rate()
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(rate.N(30*time.Second), sine))
	svc.LoadTrack(buf.Streamer(0, buf.Len()), format)
	return nil
}

// schedule hands fn to the event loop; updates are dropped if the queue is full
func (v *viewer) schedule(fn func()) {
	_ = v.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handle(ev) {
				return
			}
		case <-ticker.C:
			changed := v.refreshStatus()
			if v.tree.DrawDirty() > 0 || changed {
				v.term.Flush()
			}
		}
	}
}

// refreshStatus publishes player state and rebuilds the status row
// Returns true when the row text changed
func (v *viewer) refreshStatus() bool {
	st := v.player.Status()
	state := "stopped"
	switch {
	case !st.Loaded:
		state = "empty"
	case st.Playing:
		state = "playing"
	}
	v.stats.Strings.Get(status.AudioState).Store(state)
	v.stats.Strings.Get(status.AudioClock).Store(action.FormatClock(st.Elapsed) + "/" + action.FormatClock(st.Duration))

	line := v.stats.Line(status.AudioState, status.AudioClock, status.DispatchTotal, status.DispatchLast, status.PointerHits)
	if line == v.lastLine {
		return false
	}
	v.lastLine = line
	v.term.SetStatus(line)
	return true
}

func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		v.term.HandleEvent(ev)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.term.Flush()
	}
	return true
}
