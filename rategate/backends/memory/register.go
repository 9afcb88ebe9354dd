package memory

import (
	"github.com/TomasKoutek/stlouisfed/rategate/backends"
)

func init() {
	backends.Register("memory", func(config any) (backends.Backend, error) {
		return New(), nil
	})
}
