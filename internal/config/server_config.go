package config

import "time"

// ServerConfig defines the HTTP ingress settings
type ServerConfig struct {
	ListenAddr          string   `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"required"`
	AllowedOrigins      []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	AuthUser            string   `json:"auth_user,omitempty" yaml:"auth_user,omitempty"`
	AuthPass            string   `json:"auth_pass,omitempty" yaml:"auth_pass,omitempty"`
	ReadTimeoutSecs     int      `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" validate:"omitempty,min=1"`
	WriteTimeoutSecs    int      `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" validate:"omitempty,min=1"`
	ShutdownTimeoutSecs int      `json:"shutdown_timeout_secs,omitempty" yaml:"shutdown_timeout_secs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:          DefaultServerListenAddr,
		AllowedOrigins:      []string{"*"},
		ReadTimeoutSecs:     DefaultServerReadTimeoutSecs,
		WriteTimeoutSecs:    DefaultServerWriteTimeoutSecs,
		ShutdownTimeoutSecs: DefaultServerShutdownTimeoutSecs,
	}
}

// AuthEnabled reports whether basic auth credentials are configured.
func (c ServerConfig) AuthEnabled() bool {
	return c.AuthUser != "" && c.AuthPass != ""
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSecs) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecs) * time.Second
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}
