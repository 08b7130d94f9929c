//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// SpyBundlerRepository implements repositories.BundlerRepository as a spy.
type SpyBundlerRepository struct {
	BundleErr error
	Configs   []entities.BuildConfig
}

var _ repositories.BundlerRepository = (*SpyBundlerRepository)(nil)

func (s *SpyBundlerRepository) Bundle(_ context.Context, config entities.BuildConfig) error {
	s.Configs = append(s.Configs, config)
	return s.BundleErr
}
