package audio

import (
	"time"
)

// Config configures the audio service
type Config struct {
	Enabled    bool          // Open the system speaker; the engine runs headless otherwise
	SampleRate int           // Speaker rate in Hz; tracks at other rates are resampled
	Buffer     time.Duration // Speaker buffer length, trades latency for underruns
	Volume     int           // Initial volume, 0..100
	Balance    int           // Initial balance, -100..100
	Preamp     int           // Initial preamp, 0..100
}

// DefaultConfig returns the defaults used when no configuration is given
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: 44100,
		Buffer:     100 * time.Millisecond,
		Volume:     100,
		Balance:    0,
		Preamp:     50,
	}
}
