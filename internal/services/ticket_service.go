// Package services – TicketService
//
// This file implements the TicketService, which owns the ticket lifecycle:
// creation (with foreign-key existence checks and an optional linked chat
// transcript), joined reads and substring searches, the two update variants
// (priority-only and status/priority/date-resolved), physical deletion, and
// the dashboard aggregate.
//
// Service-level errors (NotFoundError, ErrEmptyPriority) are returned for
// predictable cases so handlers can map them to HTTP results consistently;
// unexpected database failures propagate as raw errors.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
	"github.com/supportgen/go-helpdesk-backend/internal/repo"
)

// TicketRepo defines the repository contract required by TicketService.
// Implementations are responsible for persistence of tickets, chats, and the
// existence checks on referenced lookup rows.
type TicketRepo interface {
	// CreateChat inserts a chat transcript row and returns its generated ID.
	CreateChat(ctx context.Context, db *gorm.DB, transcript string) (*domain.Chat, error)

	// CreateTicket inserts a ticket row, populating its database-assigned ID.
	CreateTicket(ctx context.Context, db *gorm.DB, t *domain.Ticket) error

	// ListTickets returns all tickets joined with lookup text, newest first.
	ListTickets(ctx context.Context, db *gorm.DB) ([]domain.TicketRow, error)

	// GetTicket fetches one joined ticket row or repo.ErrNotFound.
	GetTicket(ctx context.Context, db *gorm.DB, id uint) (*domain.TicketRow, error)

	// SearchTicketsByKeyword matches the joined keyword text by substring.
	SearchTicketsByKeyword(ctx context.Context, db *gorm.DB, term string) ([]domain.TicketRow, error)

	// SearchTicketsByIssueType matches the issue-type description by substring.
	SearchTicketsByIssueType(ctx context.Context, db *gorm.DB, term string) ([]domain.TicketRow, error)

	// UpdateTicketPriority sets priority or returns repo.ErrNotFound.
	UpdateTicketPriority(ctx context.Context, db *gorm.DB, id uint, priority string) error

	// UpdateTicketFields sets the three mutable columns or returns repo.ErrNotFound.
	UpdateTicketFields(ctx context.Context, db *gorm.DB, id uint, status, priority string, dateResolved *time.Time) error

	// DeleteTicket removes the row (and linked chat) or returns repo.ErrNotFound.
	DeleteTicket(ctx context.Context, db *gorm.DB, id uint) error

	// UserExists / IssueTypeExists / KeywordExists are the FK pre-checks.
	UserExists(ctx context.Context, db *gorm.DB, id uint) (bool, error)
	IssueTypeExists(ctx context.Context, db *gorm.DB, id uint) (bool, error)
	KeywordExists(ctx context.Context, db *gorm.DB, id uint) (bool, error)

	// TicketStatusCounts and RecentTickets feed the dashboard.
	TicketStatusCounts(ctx context.Context, db *gorm.DB) ([]repo.StatusCount, error)
	RecentTickets(ctx context.Context, db *gorm.DB, limit int) ([]domain.TicketRow, error)
}

// TicketService provides ticket-level operations. It enforces foreign-key
// existence before insert and keeps the chat+ticket insert pair atomic.
type TicketService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the ticket repository used by this service.
	Repo TicketRepo

	// RecentLimit caps the dashboard's recent-ticket listing.
	RecentLimit int
}

// NewTicketService constructs a TicketService with defaults.
func NewTicketService(db *gorm.DB, r TicketRepo) *TicketService {
	return &TicketService{DB: db, Repo: r, RecentLimit: 10}
}

// CreateTicketInput carries the fields accepted at ticket creation.
type CreateTicketInput struct {
	UserID       uint
	IssueTypeID  uint
	KeywordID    *uint // optional tag
	Status       string
	Priority     string
	DateResolved *time.Time
	IsWithdrawn  bool

	// WithChat creates a chat row in the same transaction and links its
	// generated ID into the ticket. The JSON API always sets it; the
	// form-based flow leaves the ticket without a chat.
	WithChat   bool
	Transcript string
}

// Create validates the referenced user, issue type, and (when provided)
// keyword, then inserts the chat (when requested) and the ticket as one
// atomic transaction. A failure at any point rolls back every insert, so a
// rejected ticket never leaves an orphaned chat row.
//
// Errors: *NotFoundError naming the missing foreign key, or the raw DB error.
func (s *TicketService) Create(ctx context.Context, in CreateTicketInput) (*domain.Ticket, *domain.Chat, error) {
	if strings.TrimSpace(in.Status) == "" {
		in.Status = domain.StatusOpen
	}

	var (
		ticket *domain.Ticket
		chat   *domain.Chat
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := s.Repo.UserExists(ctx, tx, in.UserID); err != nil {
			return err
		} else if !ok {
			return notFound("User", in.UserID)
		}
		if ok, err := s.Repo.IssueTypeExists(ctx, tx, in.IssueTypeID); err != nil {
			return err
		} else if !ok {
			return notFound("IssueType", in.IssueTypeID)
		}
		if in.KeywordID != nil {
			if ok, err := s.Repo.KeywordExists(ctx, tx, *in.KeywordID); err != nil {
				return err
			} else if !ok {
				return notFound("Keyword", *in.KeywordID)
			}
		}

		t := &domain.Ticket{
			UserID:       in.UserID,
			IssueTypeID:  in.IssueTypeID,
			KeywordID:    in.KeywordID,
			Status:       in.Status,
			Priority:     in.Priority,
			DateResolved: in.DateResolved,
			IsWithdrawn:  in.IsWithdrawn,
		}

		if in.WithChat {
			c, err := s.Repo.CreateChat(ctx, tx, in.Transcript)
			if err != nil {
				return err
			}
			chat = c
			t.ChatID = &c.ID
		}

		if err := s.Repo.CreateTicket(ctx, tx, t); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ticket, chat, nil
}

// List returns all tickets joined with their lookup text, newest first.
func (s *TicketService) List(ctx context.Context) ([]domain.TicketRow, error) {
	return s.Repo.ListTickets(ctx, s.DB)
}

// Get fetches one joined ticket row by ID.
// Returns *NotFoundError when the ticket does not exist.
func (s *TicketService) Get(ctx context.Context, id uint) (*domain.TicketRow, error) {
	row, err := s.Repo.GetTicket(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("Ticket", id)
	}
	return row, err
}

// SearchByKeyword returns tickets whose keyword text contains term
// (case-insensitive substring match).
func (s *TicketService) SearchByKeyword(ctx context.Context, term string) ([]domain.TicketRow, error) {
	return s.Repo.SearchTicketsByKeyword(ctx, s.DB, strings.TrimSpace(term))
}

// SearchByIssueType returns tickets whose issue-type description contains
// term (case-insensitive substring match).
func (s *TicketService) SearchByIssueType(ctx context.Context, term string) ([]domain.TicketRow, error) {
	return s.Repo.SearchTicketsByIssueType(ctx, s.DB, strings.TrimSpace(term))
}

// UpdatePriority sets a ticket's priority. A blank priority yields
// ErrEmptyPriority and leaves the stored value unchanged; a missing ticket
// yields *NotFoundError.
func (s *TicketService) UpdatePriority(ctx context.Context, id uint, priority string) error {
	priority = strings.TrimSpace(priority)
	if priority == "" {
		return ErrEmptyPriority
	}
	err := s.Repo.UpdateTicketPriority(ctx, s.DB, id, priority)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Ticket", id)
	}
	return err
}

// UpdateTicketInput carries the three mutable fields of the page-variant
// edit flow.
type UpdateTicketInput struct {
	Status       string
	Priority     string
	DateResolved *time.Time
}

// Update sets status, priority, and date-resolved in one statement. The same
// validation as UpdatePriority applies to the priority field. A blank status
// keeps the free-form contract and is stored as-is only when non-empty;
// otherwise the canonical "Open" is written.
func (s *TicketService) Update(ctx context.Context, id uint, in UpdateTicketInput) error {
	in.Priority = strings.TrimSpace(in.Priority)
	if in.Priority == "" {
		return ErrEmptyPriority
	}
	if strings.TrimSpace(in.Status) == "" {
		in.Status = domain.StatusOpen
	}
	err := s.Repo.UpdateTicketFields(ctx, s.DB, id, in.Status, in.Priority, in.DateResolved)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Ticket", id)
	}
	return err
}

// Delete removes a ticket (and its linked chat row, when present) atomically.
// Returns *NotFoundError when the ticket does not exist.
func (s *TicketService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteTicket(ctx, tx, id)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Ticket", id)
	}
	return err
}

// DashboardData aggregates what the landing page renders: ticket counts by
// status and the most recent tickets.
type DashboardData struct {
	Counts []repo.StatusCount
	Recent []domain.TicketRow
}

// Dashboard returns the landing-page aggregate. A limit <= 0 falls back to
// the service's configured RecentLimit.
func (s *TicketService) Dashboard(ctx context.Context, limit int) (*DashboardData, error) {
	if limit <= 0 {
		limit = s.RecentLimit
	}
	counts, err := s.Repo.TicketStatusCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	recent, err := s.Repo.RecentTickets(ctx, s.DB, limit)
	if err != nil {
		return nil, err
	}
	return &DashboardData{Counts: counts, Recent: recent}, nil
}
