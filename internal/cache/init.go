package cache

import (
	"github.com/digiserve/digiserve/internal/logger"
)

// Initialize initializes the cache system
func Initialize(log *logger.Logger) Cache {
	log.Info("initializing cache system")

	InitializeInMemoryCache()

	return GetInMemoryCache()
}
