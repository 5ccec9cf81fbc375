package weather

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Fetcher runs one provider call per query and normalizes the result.
type Fetcher struct {
	provider Provider
	logger   *zap.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(provider Provider, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		provider: provider,
		logger:   logger,
	}
}

// Check reports whether a fetch could be attempted at all.
func (f *Fetcher) Check() error {
	var err error = ErrAPIKeyMissing
	if f.provider != nil {
		err = f.provider.Configured()
	}
	if err != nil {
		f.logger.Error("weather fetch refused", zap.Error(err))
	}
	return err
}

// Fetch returns the current reading for q. Any failure is an *Error whose
// Message is safe to show to the user.
func (f *Fetcher) Fetch(ctx context.Context, q LocationQuery) (Reading, error) {
	if err := f.Check(); err != nil {
		return Reading{}, err
	}

	f.logger.Debug("fetching current weather",
		zap.String("provider", f.provider.Name()),
		zap.Stringer("query", q))

	obs, err := f.provider.Current(ctx, q)
	if err != nil {
		f.logger.Warn("provider fetch failed",
			zap.String("provider", f.provider.Name()),
			zap.Stringer("query", q),
			zap.Error(err))
		var werr *Error
		if !errors.As(err, &werr) {
			return Reading{}, FetchFailed(err)
		}
		return Reading{}, err
	}

	return Normalize(obs), nil
}
