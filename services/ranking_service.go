// file: services/ranking_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xFraylin/Hackong-ctf/models"
	"gorm.io/gorm"
)

// Short TTL keeps the leaderboard near-realtime while still absorbing reads.
const rankingCacheTTL = 15 * time.Second

type RankingEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// RankingService serves the leaderboard, with a redis cache in front of the
// profiles query. The client may be nil, in which case every read hits the
// store directly.
type RankingService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRankingService(db *gorm.DB, rdb *redis.Client) *RankingService {
	return &RankingService{db: db, rdb: rdb}
}

// Leaderboard returns the top profiles ordered by points, oldest account
// first on ties.
func (s *RankingService) Leaderboard(ctx context.Context, limit int) ([]RankingEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("ranking:%d", limit)
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []RankingEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Order("points desc, created_at asc").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, RankingEntry{
			Rank:     i + 1,
			Username: p.Username,
			Points:   p.Points,
		})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.rdb.Set(ctx, cacheKey, data, rankingCacheTTL)
		}
	}
	return entries, nil
}

// Invalidate drops every cached leaderboard page after a point credit.
func (s *RankingService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	keys, err := s.rdb.Keys(ctx, "ranking:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to clear ranking cache: %v", err)
	}
}
