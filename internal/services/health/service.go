package health

import (
	"context"
	"sort"
	"time"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// Status is the health payload.
type Status struct {
	OK     bool              `json:"ok"`
	Store  string            `json:"store"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	store   string
	checks  map[string]Check
	timeout time.Duration
}

// NewService constructs a health service reporting the active store backend.
func NewService(store string) *Service {
	return &Service{store: store, checks: map[string]Check{}, timeout: 2 * time.Second}
}

// Add registers a named check.
func (s *Service) Add(name string, check Check) {
	s.checks[name] = check
}

// Status runs every check with a shared timeout.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Store: s.store}
	if len(s.checks) == 0 {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	out.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			out.OK = false
			out.Checks[name] = err.Error()
			continue
		}
		out.Checks[name] = "ok"
	}
	return out
}
