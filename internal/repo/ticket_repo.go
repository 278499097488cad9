// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for tickets and
// their optional chat transcripts.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Foreign-key validation lives in the
// service layer (see services.TicketService).
//
// Error semantics:
//   - When a ticket is not found, functions return gorm.ErrRecordNotFound
//     (also exported in this package as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
)

// ticketRowSelect is the joined projection shared by listing, detail, and
// search queries. Issue types and keywords are LEFT-joined so tickets with a
// missing or null keyword still appear in results.
const ticketRowSelect = `tickets.id, tickets.user_id, tickets.issue_type_id, tickets.keyword_id,
tickets.chat_id, tickets.status, tickets.priority, tickets.date_created, tickets.date_resolved,
tickets.is_withdrawn, issue_types.description AS issue_description, keywords.text AS keyword_text`

// joinedTickets composes the base query for TicketRow projections.
func joinedTickets(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Select(ticketRowSelect).
		Joins("LEFT JOIN issue_types ON issue_types.id = tickets.issue_type_id").
		Joins("LEFT JOIN keywords ON keywords.id = tickets.keyword_id")
}

// CreateChat inserts a chat transcript row and returns it with its
// database-assigned ID. Call it on a transaction handle when the chat is
// linked to a ticket in the same unit of work.
func CreateChat(ctx context.Context, db *gorm.DB, transcript string) (*domain.Chat, error) {
	c := &domain.Chat{Transcript: transcript}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// CreateTicket inserts a ticket row. DateCreated is stamped with the current
// UTC time when the caller has not set it. The ticket's ID is populated from
// the database on success.
func CreateTicket(ctx context.Context, db *gorm.DB, t *domain.Ticket) error {
	if t.DateCreated.IsZero() {
		t.DateCreated = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(t).Error
}

// ListTickets returns all tickets joined with their issue-type description
// and keyword text, most recent first. It returns an empty slice (not an
// error) when the table is empty.
func ListTickets(ctx context.Context, db *gorm.DB) ([]domain.TicketRow, error) {
	out := []domain.TicketRow{}
	err := joinedTickets(ctx, db).
		Order("tickets.date_created DESC").
		Scan(&out).Error
	return out, err
}

// GetTicket fetches a single joined ticket row by ID, or ErrNotFound if the
// ticket does not exist.
func GetTicket(ctx context.Context, db *gorm.DB, id uint) (*domain.TicketRow, error) {
	var row domain.TicketRow
	res := joinedTickets(ctx, db).
		Where("tickets.id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

// SearchTicketsByKeyword returns tickets whose joined keyword text contains
// term, case-insensitively. Matching is substring (LIKE '%term%'), with SQL
// wildcards in user input escaped so a literal '%' or '_' matches itself.
func SearchTicketsByKeyword(ctx context.Context, db *gorm.DB, term string) ([]domain.TicketRow, error) {
	out := []domain.TicketRow{}
	err := joinedTickets(ctx, db).
		Where("LOWER(keywords.text) LIKE ? ESCAPE '!'", likePattern(term)).
		Order("tickets.date_created DESC").
		Scan(&out).Error
	return out, err
}

// SearchTicketsByIssueType returns tickets whose issue-type description
// contains term, case-insensitively. Same matching semantics as
// SearchTicketsByKeyword.
func SearchTicketsByIssueType(ctx context.Context, db *gorm.DB, term string) ([]domain.TicketRow, error) {
	out := []domain.TicketRow{}
	err := joinedTickets(ctx, db).
		Where("LOWER(issue_types.description) LIKE ? ESCAPE '!'", likePattern(term)).
		Order("tickets.date_created DESC").
		Scan(&out).Error
	return out, err
}

// likeEscape is the LIKE escape character used by the search queries.
// A backslash would be mangled by MySQL's string lexer (the literal '\''
// never terminates under the default sql_mode), so a character both
// SQLite and MySQL pass through untouched is used instead.
const likeEscape = "!"

// likePattern lowercases term, escapes SQL LIKE wildcards, and wraps it for
// substring matching.
func likePattern(term string) string {
	t := strings.ToLower(term)
	t = strings.ReplaceAll(t, likeEscape, likeEscape+likeEscape)
	t = strings.ReplaceAll(t, "%", likeEscape+"%")
	t = strings.ReplaceAll(t, "_", likeEscape+"_")
	return "%" + t + "%"
}

// UpdateTicketPriority sets a ticket's priority. The row is loaded first so
// a missing ticket yields ErrNotFound rather than a silent zero-row update
// (MySQL reports zero affected rows for no-op updates, so RowsAffected alone
// cannot distinguish "missing" from "unchanged").
func UpdateTicketPriority(ctx context.Context, db *gorm.DB, id uint, priority string) error {
	var t domain.Ticket
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&t).Update("priority", priority).Error
}

// UpdateTicketFields sets the three mutable fields of a ticket (status,
// priority, date-resolved) in one statement. Returns ErrNotFound when the
// ticket does not exist. A nil dateResolved clears the column.
func UpdateTicketFields(ctx context.Context, db *gorm.DB, id uint, status, priority string, dateResolved *time.Time) error {
	var t domain.Ticket
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&t).Updates(map[string]any{
		"status":        status,
		"priority":      priority,
		"date_resolved": dateResolved,
	}).Error
}

// DeleteTicket physically removes a ticket row and, when the ticket owned a
// chat, the linked chat row. Returns ErrNotFound when the ticket does not
// exist prior to deletion. Both deletes run in the caller-supplied handle, so
// wrap in a transaction to keep them atomic.
func DeleteTicket(ctx context.Context, db *gorm.DB, id uint) error {
	var t domain.Ticket
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Delete(&t).Error; err != nil {
		return err
	}
	if t.ChatID != nil {
		return db.WithContext(ctx).Delete(&domain.Chat{}, *t.ChatID).Error
	}
	return nil
}
