// Package archive keeps copies of generated invoices.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Archiver stores a generated invoice and reports where it ended up.
type Archiver interface {
	// Archive stores the file at path and returns its archived location.
	Archive(ctx context.Context, path string) (string, error)
}

// localArchiver leaves invoices in the invoice directory.
type localArchiver struct {
	logger zerolog.Logger
}

// NewLocalArchiver creates an archiver that only confirms the file exists.
func NewLocalArchiver(logger zerolog.Logger) Archiver {
	return &localArchiver{
		logger: logger.With().Str("component", "local-archiver").Logger(),
	}
}

// Archive returns the absolute path of the invoice.
func (a *localArchiver) Archive(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		a.logger.Error().Err(err).Str("file", path).Msg("invoice file missing")
		return "", fmt.Errorf("failed to stat invoice %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("invoice path %s is a directory", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve invoice path %s: %w", path, err)
	}

	a.logger.Debug().Str("file", abs).Msg("invoice kept locally")
	return abs, nil
}

// fallbackArchiver tries S3 first, then keeps the invoice locally.
type fallbackArchiver struct {
	s3Archiver    Archiver
	localArchiver Archiver
	s3Enabled     bool
	logger        zerolog.Logger
}

// NewFallbackArchiver creates an archiver that tries S3 first and falls back
// to local storage. If s3Archiver is nil, only the local archiver is used.
func NewFallbackArchiver(s3Archiver, localArchiver Archiver, s3Enabled bool, logger zerolog.Logger) Archiver {
	return &fallbackArchiver{
		s3Archiver:    s3Archiver,
		localArchiver: localArchiver,
		s3Enabled:     s3Enabled,
		logger:        logger.With().Str("component", "fallback-archiver").Logger(),
	}
}

// Archive uploads to S3 when enabled and falls back to the local archiver on
// any S3 failure.
func (a *fallbackArchiver) Archive(ctx context.Context, path string) (string, error) {
	if a.s3Enabled && a.s3Archiver != nil {
		location, err := a.s3Archiver.Archive(ctx, path)
		if err == nil {
			return location, nil
		}

		a.logger.Warn().
			Err(err).
			Str("file", path).
			Msg("failed to archive to S3, keeping invoice locally")
	} else {
		a.logger.Debug().
			Bool("s3_enabled", a.s3Enabled).
			Bool("has_s3_archiver", a.s3Archiver != nil).
			Msg("S3 disabled or not configured, keeping invoice locally")
	}

	return a.localArchiver.Archive(ctx, path)
}
