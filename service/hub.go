package service

import (
	"errors"
	"fmt"
)

// ErrCycle reports services whose dependencies can never be satisfied
var ErrCycle = errors.New("service dependency cycle")

// Hub starts services in dependency order and stops them in reverse
type Hub struct {
	services map[string]Service
	args     map[string][]any
	names    []string // Registration order
	started  []Service
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
		args:     make(map[string][]any),
	}
}

// Register adds a service with its Init arguments, replacing one of the same name
func (h *Hub) Register(s Service, args ...any) {
	name := s.Name()
	if _, ok := h.services[name]; !ok {
		h.names = append(h.names, name)
	}
	h.services[name] = s
	h.args[name] = args
}

// Order resolves dependencies; ties keep registration order
func (h *Hub) Order() ([]Service, error) {
	done := make(map[string]bool, len(h.names))
	order := make([]Service, 0, len(h.names))
	for len(order) < len(h.names) {
		progressed := false
		for _, name := range h.names {
			if done[name] {
				continue
			}
			ready := true
			for _, dep := range h.services[name].Dependencies() {
				if _, ok := h.services[dep]; !ok {
					return nil, fmt.Errorf("service %q: missing dependency %q", name, dep)
				}
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				done[name] = true
				order = append(order, h.services[name])
				progressed = true
			}
		}
		if !progressed {
			return nil, ErrCycle
		}
	}
	return order, nil
}

// Start inits then starts every service; on failure the already started ones are stopped
func (h *Hub) Start() error {
	order, err := h.Order()
	if err != nil {
		return err
	}
	for _, s := range order {
		if err := s.Init(h.args[s.Name()]...); err != nil {
			return fmt.Errorf("init %s: %w", s.Name(), err)
		}
	}
	for _, s := range order {
		if err := s.Start(); err != nil {
			startErr := fmt.Errorf("start %s: %w", s.Name(), err)
			return errors.Join(startErr, h.Stop())
		}
		h.started = append(h.started, s)
	}
	return nil
}

// Stop stops started services in reverse order and joins their errors
func (h *Hub) Stop() error {
	var errs []error
	for i := len(h.started) - 1; i >= 0; i-- {
		if err := h.started[i].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", h.started[i].Name(), err))
		}
	}
	h.started = nil
	return errors.Join(errs...)
}
