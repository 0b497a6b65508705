package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ServerConfig struct {
	Store           Store
	Addr            string
	Mode            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Registry        *prometheus.Registry
}

type ConfigOption func(*ServerConfig) error

func WithStore(store Store) ConfigOption {
	return func(config *ServerConfig) error {
		config.Store = store
		return nil
	}
}

func WithAddr(addr string) ConfigOption {
	return func(config *ServerConfig) error {
		config.Addr = addr
		return nil
	}
}

// WithMode sets the gin mode (debug, release, test). gin keeps the mode in
// a package-level variable, so the last server built wins.
func WithMode(mode string) ConfigOption {
	return func(config *ServerConfig) error {
		config.Mode = mode
		return nil
	}
}

func WithTimeouts(request, shutdown time.Duration) ConfigOption {
	return func(config *ServerConfig) error {
		if request > 0 {
			config.RequestTimeout = request
		}
		if shutdown > 0 {
			config.ShutdownTimeout = shutdown
		}
		return nil
	}
}

// WithRegistry exposes metrics through reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) ConfigOption {
	return func(config *ServerConfig) error {
		config.Registry = reg
		return nil
	}
}
