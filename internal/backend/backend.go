// Package backend selects and opens the Persister named by a Config.
package backend

import (
	"fmt"

	"github.com/mesh-intelligence/todolist/internal/flatfile"
	"github.com/mesh-intelligence/todolist/internal/sqlite"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Open validates cfg and returns the matching Persister for cfg.Path().
func Open(cfg types.Config) (types.Persister, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		b, err := sqlite.NewBackend(cfg.Path())
		if err != nil {
			return nil, err
		}
		return b, nil
	case types.BackendFile:
		b, err := flatfile.New(cfg.Path(), cfg.EffectiveFormat())
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
