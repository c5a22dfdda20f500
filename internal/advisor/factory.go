package advisor

import (
	"time"

	"price-intel/internal/store"
)

// New builds an Advisor; a nil cfg uses store.Defaults.
func New(cfg *store.Config, opts ...Option) *Advisor {
	if cfg == nil {
		cfg = store.Defaults()
	}
	a := &Advisor{
		cfg: cfg,
		loc: cfg.Location(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
