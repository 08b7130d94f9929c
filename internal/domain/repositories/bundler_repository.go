package repositories

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// BundlerRepository compiles scripts into the build directory.
type BundlerRepository interface {
	Bundle(ctx context.Context, config entities.BuildConfig) error
}
