package service

// Service defines the lifecycle interface for long-lived subsystems of the viewer
// such as the audio backend
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration from parsed flags
//  3. Start() - acquire devices, launch goroutines
//  4. [runtime operation]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}
