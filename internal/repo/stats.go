// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the small aggregate queries behind the
// dashboard page: ticket counts grouped by status and the most recent
// tickets. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
)

// StatusCount is one row of the dashboard's counts-by-status aggregate.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TicketStatusCounts returns the number of tickets per status value, ordered
// by status for stable output. Statuses are counted as stored; the dashboard
// normalizes casing for display.
func TicketStatusCounts(ctx context.Context, db *gorm.DB) ([]StatusCount, error) {
	out := []StatusCount{}
	err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}

// RecentTickets returns the most recently created tickets (joined with their
// issue-type description and keyword text), capped at limit.
func RecentTickets(ctx context.Context, db *gorm.DB, limit int) ([]domain.TicketRow, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []domain.TicketRow{}
	err := joinedTickets(ctx, db).
		Order("tickets.date_created DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
