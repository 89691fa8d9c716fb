package team

import (
	"context"
	"encoding/json"
	"errors"

	"homecollect/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cachePrefix = "team:pin:"

func cacheKey(postalCode string) string {
	return cachePrefix + postalCode
}

// Cache errors never fail a lookup; the repository stays authoritative.

func (s *DefaultTeamService) cachedTeam(ctx context.Context, postalCode string) (*models.CollectionTeam, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, cacheKey(postalCode)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.Logger.Warn("Team cache read failed", zap.String("postalCode", postalCode), zap.Error(err))
		}
		return nil, false
	}
	var t models.CollectionTeam
	if err := json.Unmarshal(data, &t); err != nil {
		s.Logger.Warn("Discarding malformed team cache entry", zap.String("postalCode", postalCode), zap.Error(err))
		return nil, false
	}
	return &t, true
}

func (s *DefaultTeamService) cacheTeam(ctx context.Context, postalCode string, t models.CollectionTeam) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(postalCode), data, s.CacheTTL).Err(); err != nil {
		s.Logger.Warn("Team cache write failed", zap.String("postalCode", postalCode), zap.Error(err))
	}
}

func (s *DefaultTeamService) invalidate(ctx context.Context, postalCodes []string) {
	if s.Cache == nil || len(postalCodes) == 0 {
		return
	}
	keys := make([]string, 0, len(postalCodes))
	for _, code := range postalCodes {
		keys = append(keys, cacheKey(code))
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		s.Logger.Warn("Team cache invalidation failed", zap.Strings("postalCodes", postalCodes), zap.Error(err))
	}
}
