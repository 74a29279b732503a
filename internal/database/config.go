package database

import "time"

type Config struct {
	FileName string        `envconfig:"AQI_DB_FILE"`
	Timeout  time.Duration `envconfig:"AQI_DB_TIMEOUT" default:"1s"`
}

// Enabled reports whether artifacts are served from a bolt file instead of the filesystem.
func (c Config) Enabled() bool {
	return c.FileName != ""
}
