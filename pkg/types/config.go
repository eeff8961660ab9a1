package types

import "errors"

// Config holds the parameters for opening the store and serving the API.
type Config struct {
	DataDir     string   `json:"data_dir" yaml:"data_dir"`
	Port        int      `json:"port" yaml:"port"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`
}

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 8080

// Config validation errors.
var ErrPortInvalid = errors.New("port must be between 0 and 65535")

// Validate checks that the Config is well-formed. A zero Port is valid
// and means DefaultPort; an empty DataDir means the current directory.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return ErrPortInvalid
	}
	return nil
}

// EffectivePort returns the port to listen on, applying the default.
func (c Config) EffectivePort() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}
