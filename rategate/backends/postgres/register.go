package postgres

import (
	"github.com/TomasKoutek/stlouisfed/rategate/backends"
)

func init() {
	backends.Register("postgres", func(config any) (backends.Backend, error) {
		cfg, ok := config.(Config)
		if !ok {
			return nil, ErrInvalidConfig
		}
		return New(cfg)
	})
}
