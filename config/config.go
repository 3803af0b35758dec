package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the capture engine.
// Fields may be loaded from a JSON file; Validate clamps them afterwards.
type Config struct {
	Debug bool `json:"debug"`

	// Backend selects the capture backend: "auto" (per-display, default),
	// "primary" (single screen) or "gdi" (windows only).
	Backend string `json:"backend"`

	// RetryThreshold is the number of consecutive not-ready polls tolerated
	// per display during an animated cycle before reusing the previous
	// frame's region. Empirically 20 works for the common backends; it is a
	// tunable, not a guarantee.
	RetryThreshold int `json:"retry_threshold"`

	// ZeroRetrySleepMicros is the pause between retries after a discarded
	// all-zero first frame.
	ZeroRetrySleepMicros int `json:"zero_retry_sleep_micros"`

	// HoldKey names the key that keeps the animated loop running while it
	// is held down. Recognized: "shift", "ctrl", "alt".
	HoldKey string `json:"hold_key"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                false,
		Backend:              "auto",
		RetryThreshold:       20,
		ZeroRetrySleepMicros: 1000,
		HoldKey:              "shift",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = "auto"
	}
	if c.RetryThreshold <= 0 {
		c.RetryThreshold = 20
	}
	if c.ZeroRetrySleepMicros < 0 {
		c.ZeroRetrySleepMicros = 1000
	}
	if c.HoldKey == "" {
		c.HoldKey = "shift"
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
