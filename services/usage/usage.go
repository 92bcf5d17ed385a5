// Package usage fetches agent analytics and shapes them for the
// dashboard: a pre-aggregated lifetime summary, and per-month totals
// computed client-side from the daily breakdown.
package usage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/internal/cache"
)

// Service wraps the data-access layer for analytics reads. Summary
// documents are cached briefly so repeated dashboard renders do not
// re-fetch identical data.
type Service struct {
	da     dataaccess.DataAccess
	cache  *cache.ResponseCache
	logger *zap.Logger
}

func New(da dataaccess.DataAccess, logger *zap.Logger) (*Service, error) {
	rc, err := cache.New(0, 0, logger)
	if err != nil {
		return nil, err
	}
	return &Service{da: da, cache: rc, logger: logger.Named("usage")}, nil
}

// Close releases the response cache.
func (s *Service) Close() {
	s.cache.Close()
}

// Summary returns the backend's pre-aggregated lifetime totals for an
// agent, from cache when fresh.
func (s *Service) Summary(ctx context.Context, agentID string) (*dataaccess.UsageSummary, error) {
	key := "usage/" + agentID + "/summary"

	var cached dataaccess.UsageSummary
	if s.cache.Get(key, &cached) {
		return &cached, nil
	}

	summary, err := s.da.UsageSummary(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		s.cache.Set(key, summary)
	}
	return summary, nil
}

// MonthlyUsage is one calendar month of activity. FromSummary marks the
// fallback path where no daily breakdown existed and the lifetime
// aggregate was used instead.
type MonthlyUsage struct {
	Month       string // YYYY-MM
	Messages    int64
	TotalTokens int64
	Cost        float64
	Days        []dataaccess.DailyUsage
	FromSummary bool
}

// Monthly computes the totals for one calendar month. The daily
// breakdown is filtered by month client-side (the backend may return a
// wider window) and reduced; when the breakdown is empty the backend
// aggregate totals are used as-is.
func (s *Service) Monthly(ctx context.Context, agentID string, year int, month time.Month) (*MonthlyUsage, error) {
	monthKey := fmt.Sprintf("%04d-%02d", year, month)

	days, err := s.da.DailyUsage(ctx, agentID, monthKey)
	if err != nil {
		return nil, err
	}

	inMonth, messages, tokens, cost := AggregateMonth(days, monthKey)
	if len(inMonth) > 0 {
		return &MonthlyUsage{
			Month:       monthKey,
			Messages:    messages,
			TotalTokens: tokens,
			Cost:        cost,
			Days:        inMonth,
		}, nil
	}

	// Fallback: no daily records, use the lifetime aggregate.
	summary, err := s.Summary(ctx, agentID)
	if err != nil {
		return nil, err
	}
	result := &MonthlyUsage{
		Month:       monthKey,
		Days:        []dataaccess.DailyUsage{},
		FromSummary: true,
	}
	if summary != nil {
		result.Messages = summary.TotalMessages
		result.TotalTokens = summary.TotalTokens
		result.Cost = summary.TotalCost
	}
	return result, nil
}

// AggregateMonth filters daily records to one YYYY-MM month and sums
// them. Pure; the slice order is preserved.
func AggregateMonth(days []dataaccess.DailyUsage, month string) (inMonth []dataaccess.DailyUsage, messages, tokens int64, cost float64) {
	for _, d := range days {
		if !strings.HasPrefix(d.Date, month) {
			continue
		}
		inMonth = append(inMonth, d)
		messages += d.Messages
		tokens += d.TotalTokens
		cost += d.Cost
	}
	return inMonth, messages, tokens, cost
}

// ProjectUsage aggregates usage across all agents of a project. The
// backend endpoint for this does not exist yet; until it does this
// returns an empty result rather than guessing from per-agent data.
func (s *Service) ProjectUsage(ctx context.Context, projectID string) (*MonthlyUsage, error) {
	return &MonthlyUsage{Days: []dataaccess.DailyUsage{}}, nil
}

// AvailableMonths lists the months an agent has usage for. The backend
// endpoint for this does not exist yet; returns an empty list.
func (s *Service) AvailableMonths(ctx context.Context, agentID string) ([]string, error) {
	return []string{}, nil
}
