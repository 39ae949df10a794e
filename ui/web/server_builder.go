package web

import "time"

// ServerOption is a functional option for configuring a Server.
type ServerOption func(s *Server)

// WithAddr sets the listen address, overriding the mount element's data-addr attribute.
//
// Parameters:
//   - addr: host:port to listen on
//
// Returns:
//   - ServerOption: option function to apply
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithInterval sets how often the state is pushed to every client. Defaults to 250ms.
//
// Parameters:
//   - d: the push interval; values <= 0 keep the default
//
// Returns:
//   - ServerOption: option function to apply
func WithInterval(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.interval = d
		}
	}
}
