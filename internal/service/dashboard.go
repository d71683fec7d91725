package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"printo/internal/cache"
	"printo/internal/logger"
	"printo/internal/model"
	"printo/internal/repository"
)

const earningsCacheTTL = 2 * time.Minute

// DashboardService serves the earnings summaries shown on the admin and
// seller dashboards. Snapshots are cached briefly in Redis.
type DashboardService interface {
	AdminEarnings(ctx context.Context, from, to time.Time) (*model.AdminEarnings, error)
	SellerEarnings(ctx context.Context, sellerID string, from, to time.Time) (*model.SellerEarnings, error)
}

type dashboardService struct {
	orders repository.OrderRepository
	redis  *cache.Client
}

// NewDashboardService constructs a DashboardService. redis may be nil, in
// which case every call hits the database.
func NewDashboardService(orders repository.OrderRepository, redis *cache.Client) DashboardService {
	return &dashboardService{orders: orders, redis: redis}
}

func (s *dashboardService) AdminEarnings(ctx context.Context, from, to time.Time) (*model.AdminEarnings, error) {
	from, to = normalizePeriod(from, to)
	key := fmt.Sprintf("earnings:admin:%d:%d", from.Unix(), to.Unix())

	if s.redis != nil {
		var cached model.AdminEarnings
		if hit, err := s.redis.GetJSON(ctx, key, &cached); err != nil {
			logger.L().Warn("earnings cache read failed", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	e, err := s.orders.AdminEarnings(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("admin earnings: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, key, e, earningsCacheTTL); err != nil {
			logger.L().Warn("earnings cache write failed", zap.Error(err))
		}
	}
	return e, nil
}

func (s *dashboardService) SellerEarnings(ctx context.Context, sellerID string, from, to time.Time) (*model.SellerEarnings, error) {
	if sellerID == "" {
		return nil, ErrIDRequired
	}
	from, to = normalizePeriod(from, to)
	key := fmt.Sprintf("earnings:seller:%s:%d:%d", sellerID, from.Unix(), to.Unix())

	if s.redis != nil {
		var cached model.SellerEarnings
		if hit, err := s.redis.GetJSON(ctx, key, &cached); err != nil {
			logger.L().Warn("earnings cache read failed", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	e, err := s.orders.SellerEarnings(ctx, sellerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("seller earnings: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, key, e, earningsCacheTTL); err != nil {
			logger.L().Warn("earnings cache write failed", zap.Error(err))
		}
	}
	return e, nil
}

// normalizePeriod defaults an unset period to the last 30 days and truncates
// to whole seconds so cache keys stay stable.
func normalizePeriod(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from.Truncate(time.Second), to.Truncate(time.Second)
}
