package server

import "time"

type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`

	// ReadHeaderTimeout bounds reading request headers. Responses have no
	// write timeout, as offloaded streams stay open indefinitely.
	ReadHeaderTimeout time.Duration `conf:"read_header_timeout"`
}
