package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skinvm/service"
)

var _ service.Service = (*Service)(nil)

// Service owns the engine and the system speaker
// Without a usable output device the engine keeps running headless
type Service struct {
	cfg      Config
	engine   *Engine
	log      *logrus.Entry
	disabled atomic.Bool
	started  atomic.Bool
}

// NewService creates an audio service from cfg
func NewService(cfg Config, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{cfg: cfg, log: log}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool - mute override (true leaves the speaker closed)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			s.cfg.Enabled = false
		}
	}
	if s.cfg.SampleRate <= 0 {
		return fmt.Errorf("audio: invalid sample rate %d", s.cfg.SampleRate)
	}
	s.engine = NewEngine(s.log)
	s.engine.SetVolume(s.cfg.Volume)
	s.engine.SetBalance(s.cfg.Balance)
	s.engine.SetPreamp(s.cfg.Preamp)
	if !s.cfg.Enabled {
		s.disabled.Store(true)
	}
	return nil
}

// Start implements service.Service
// Speaker failures disable output instead of failing the service
func (s *Service) Start() error {
	if s.engine == nil {
		return fmt.Errorf("audio: start before init")
	}
	if s.disabled.Load() {
		return nil
	}
	rate := s.Rate()
	if err := speaker.Init(rate, rate.N(s.cfg.Buffer)); err != nil {
		s.log.WithError(err).Warn("speaker unavailable, audio disabled")
		s.disabled.Store(true)
		return nil
	}
	speaker.Play(s.engine)
	s.started.Store(true)
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if !s.started.CompareAndSwap(true, false) {
		return nil
	}
	if s.engine != nil {
		s.engine.Pause()
	}
	speaker.Clear()
	speaker.Close()
	return nil
}

// Engine returns the engine, nil before Init
func (s *Service) Engine() *Engine {
	return s.engine
}

// Rate returns the output sample rate
func (s *Service) Rate() beep.SampleRate {
	return beep.SampleRate(s.cfg.SampleRate)
}

// IsDisabled reports whether output to the speaker is off
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// LoadTrack loads a decoded track, resampling it to the output rate when needed
func (s *Service) LoadTrack(track beep.StreamSeeker, format beep.Format) {
	if format.SampleRate == s.Rate() {
		s.engine.Load(track, format)
		return
	}
	// Resampled streams cannot seek; buffer the converted track first
	buf := beep.NewBuffer(beep.Format{SampleRate: s.Rate(), NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(beep.Resample(4, format.SampleRate, s.Rate(), track))
	s.engine.Load(buf.Streamer(0, buf.Len()), buf.Format())
}
