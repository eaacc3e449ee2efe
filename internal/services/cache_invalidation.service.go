package services

import (
	"context"
	"server/internal/database"
	"server/internal/logger"
)

// CacheInvalidationService drops cached user data after bulk writes so reads
// never serve stale org references.
type CacheInvalidationService struct {
	db  database.DB
	log logger.Logger
}

func NewCacheInvalidationService(db database.DB) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:  db,
		log: logger.New("CacheInvalidationService"),
	}
}

func (s *CacheInvalidationService) InvalidateUsers(ctx context.Context) {
	log := s.log.Function("InvalidateUsers")

	if err := s.db.FlushUserCache(ctx); err != nil {
		// Stale cache entries are tolerable; the import itself succeeded.
		log.Er("failed to invalidate user cache", err)
	}
}
