package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
)

const statsCacheTTL = time.Minute

// Stats summarizes the pipeline visible to one user.
type Stats struct {
	TotalLeads       int64                       `json:"total_leads"`
	ByStatus         map[domain.LeadStatus]int64 `json:"by_status"`
	FollowUpsDue     int64                       `json:"follow_ups_due"`
	FollowUpsOverdue int64                       `json:"follow_ups_overdue"`
	GeneratedAt      time.Time                   `json:"generated_at"`
}

type Service interface {
	GetStats(ctx context.Context, actor *domain.User) (*Stats, error)
}

type service struct {
	leadRepo repository.LeadRepository
	redis    *redis.Client
	log      *zap.Logger
	window   time.Duration
	now      func() time.Time
}

// NewService builds the dashboard. window is how far ahead a follow-up
// counts as due.
func NewService(leadRepo repository.LeadRepository, redis *redis.Client, window time.Duration, log *zap.Logger) Service {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &service{
		leadRepo: leadRepo,
		redis:    redis,
		log:      logger.OrNop(log).Named("dashboard"),
		window:   window,
		now:      time.Now,
	}
}

func (s *service) GetStats(ctx context.Context, actor *domain.User) (*Stats, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	filter := policy.ScopeLeadFilter(actor, domain.LeadFilter{})
	cacheKey := statsKey(filter)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	byStatus, err := s.leadRepo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}

	now := s.now().UTC()
	followUps, err := s.leadRepo.CountFollowUps(ctx, filter, now, now.Add(s.window))
	if err != nil {
		return nil, fmt.Errorf("count follow-ups: %w", err)
	}

	stats := &Stats{
		ByStatus:         make(map[domain.LeadStatus]int64, len(domain.LeadStatuses)),
		FollowUpsDue:     followUps.Due,
		FollowUpsOverdue: followUps.Overdue,
		GeneratedAt:      now,
	}
	for _, status := range domain.LeadStatuses {
		stats.ByStatus[status] = byStatus[status]
		stats.TotalLeads += byStatus[status]
	}

	if s.redis != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, statsCacheTTL).Err(); err != nil {
				s.log.Debug("stats not cached", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func statsKey(filter domain.LeadFilter) string {
	if filter.AssignedTo == nil {
		return "dashboard:stats:all"
	}
	return "dashboard:stats:user:" + strconv.FormatInt(*filter.AssignedTo, 10)
}
