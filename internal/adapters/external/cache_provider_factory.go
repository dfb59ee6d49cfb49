package external

import (
	"fmt"

	"healthadvisor.app/internal/config"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

type CacheProviderFactory struct{}

func NewCacheProviderFactory() *CacheProviderFactory {
	return &CacheProviderFactory{}
}

// CreateCacheProvider builds the backend selected by CACHE_TYPE
func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (ports.CacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(), nil
	case config.CacheTypeRedis:
		provider, err := NewRedisCacheProvider(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("create redis cache: %w", err)
		}
		return provider, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
