// Package cmd provides shared wiring helpers for the procura binaries.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/procura-ai/procura/pkg/persistence"
	"github.com/procura-ai/procura/pkg/persistence/file"
	"github.com/procura-ai/procura/pkg/persistence/postgresql"
	"github.com/procura-ai/procura/pkg/persistence/redis"
)

// NewPersistence selects the state backend by database URL scheme:
// postgres://... and redis://... pick the matching backend, anything else
// is treated as a filesystem root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	scheme, _, _ := strings.Cut(databaseURL, "://")

	switch scheme {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(err)
		}

		return p
	case "redis", "rediss":
		p, err := redis.NewPersistence(databaseURL)
		if err != nil {
			panic(err)
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}
