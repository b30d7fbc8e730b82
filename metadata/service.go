package metadata

import (
	"context"

	"go.uber.org/zap"

	"rnm/config"
)

// Service runs the full extraction chain: cache, then remote service, then
// local fallback. It implements Extractor itself, callers do not see the
// difference between the stages.
type Service struct {
	remote   Extractor // nil when the remote service is disabled
	fallback Extractor
	cache    *Cache // nil when caching is off
	model    string
	log      *zap.Logger
}

func NewService(cfg *config.MetadataConfig, log *zap.Logger) *Service {
	s := &Service{
		fallback: NewFallback(log),
		model:    cfg.Model,
		log:      log,
	}
	if !cfg.Enable {
		return s
	}

	s.remote = NewClient(cfg, log)
	if len(cfg.CachePath) > 0 {
		cache, err := OpenCache(cfg.CachePath, log)
		if err != nil {
			log.Warn("Metadata cache unavailable, every article will call the service", zap.Error(err))
		} else {
			s.cache = cache
		}
	}
	return s
}

func (s *Service) Close() error {
	return s.cache.Close()
}

// Extract never fails: a remote error is logged and the local fallback takes
// over. Only remote results are cached - the fallback is cheap and caching it
// would keep serving degraded metadata after the service recovers.
func (s *Service) Extract(ctx context.Context, text string) (Meta, error) {
	key := CacheKey(s.model, text)
	if m, ok := s.cache.Get(key); ok {
		s.log.Debug("Metadata served from cache")
		return m, nil
	}

	if s.remote != nil {
		m, err := s.remote.Extract(ctx, text)
		if err == nil {
			s.cache.Put(key, s.model, m)
			return m, nil
		}
		s.log.Warn("Metadata service failed, falling back to local extraction", zap.Error(err))
	}

	return s.fallback.Extract(ctx, text)
}
