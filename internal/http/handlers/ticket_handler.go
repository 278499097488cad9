// Ticket JSON API handlers.
//
// This file exposes the REST endpoints for ticket resources:
//   - GET    /tickets       (list, joined with issue-type and keyword text)
//   - POST   /tickets       (create; always creates a linked chat transcript)
//   - PUT    /tickets/{id}  (update priority)
//   - DELETE /tickets/{id}  (delete)
//
// Handlers are transport-thin: they validate input, call the application
// services, and translate results into HTTP responses. Every handler derives
// a deadline from the configured request timeout so a hung database call
// cannot hang the request indefinitely.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
	"github.com/supportgen/go-helpdesk-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// TicketService defines the ticket operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TicketService interface {
	// Create validates foreign keys and inserts the ticket (and chat) atomically.
	Create(ctx context.Context, in services.CreateTicketInput) (*domain.Ticket, *domain.Chat, error)
	// List returns all tickets joined with lookup text, newest first.
	List(ctx context.Context) ([]domain.TicketRow, error)
	// Get fetches one joined ticket row.
	Get(ctx context.Context, id uint) (*domain.TicketRow, error)
	// SearchByKeyword matches keyword text by case-insensitive substring.
	SearchByKeyword(ctx context.Context, term string) ([]domain.TicketRow, error)
	// SearchByIssueType matches issue-type descriptions the same way.
	SearchByIssueType(ctx context.Context, term string) ([]domain.TicketRow, error)
	// UpdatePriority sets a ticket's priority.
	UpdatePriority(ctx context.Context, id uint, priority string) error
	// Update sets status, priority, and date-resolved (page edit flow).
	Update(ctx context.Context, id uint, in services.UpdateTicketInput) error
	// Delete removes a ticket and its linked chat.
	Delete(ctx context.Context, id uint) error
	// Dashboard returns the landing-page aggregate.
	Dashboard(ctx context.Context, limit int) (*services.DashboardData, error)
}

// DirectoryService defines the read-only lookup listings consumed by the
// /users and /dept endpoints and by the form pages.
type DirectoryService interface {
	Users(ctx context.Context) ([]domain.User, error)
	Departments(ctx context.Context) ([]domain.Department, error)
	IssueTypes(ctx context.Context) ([]domain.IssueType, error)
	Keywords(ctx context.Context) ([]domain.Keyword, error)
}

//
// Handler wiring
//

// Handlers groups the JSON endpoints for tickets and directory listings.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	tickets TicketService
	dir     DirectoryService
	timeout time.Duration
}

// New constructs a Handlers instance bound to the given services. timeout is
// the per-request budget applied to every downstream call; values <= 0
// disable the deadline.
func New(tickets TicketService, dir DirectoryService, timeout time.Duration) *Handlers {
	return &Handlers{tickets: tickets, dir: dir, timeout: timeout}
}

// reqCtx derives the request context, applying the configured timeout.
func (h *Handlers) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// ticketID parses the :id path parameter as a positive integer.
func ticketID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

//
// DTOs
//

// CreateTicketRequest is the JSON payload for creating a ticket.
type CreateTicketRequest struct {
	UserID      uint   `json:"user_id"       binding:"required" example:"1"`
	IssueTypeID uint   `json:"issue_type_id" binding:"required" example:"2"`
	KeywordID   *uint  `json:"keyword_id,omitempty" example:"3"`
	Status      string `json:"status"   example:"Open"`
	Priority    string `json:"priority" example:"high"`
	// Transcript optionally pre-fills the chat created alongside the ticket.
	Transcript  string `json:"transcript,omitempty"`
	IsWithdrawn bool   `json:"is_withdrawn,omitempty"`
}

// CreateTicketResponse confirms a created ticket and its linked chat.
type CreateTicketResponse struct {
	Message  string `json:"message"   example:"ticket created"`
	TicketID uint   `json:"ticket_id" example:"17"`
	ChatID   uint   `json:"chat_id"   example:"17"`
}

// UpdatePriorityRequest is the JSON payload for the priority update endpoint.
type UpdatePriorityRequest struct {
	Priority string `json:"priority" example:"low"`
}

//
// Handlers
//

// ListTickets godoc
// @ID          listTickets
// @Summary     List all tickets
// @Description Returns every ticket joined with its issue-type description and keyword text, newest first.
// @Tags        Tickets
// @Produce     json
// @Success     200  {array}   domain.TicketRow
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /tickets [get]
func (h *Handlers) ListTickets(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	rows, err := h.tickets.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// GetTicket godoc
// @ID          getTicket
// @Summary     Get one ticket
// @Description Returns a single joined ticket row by ID.
// @Tags        Tickets
// @Produce     json
// @Param       id   path      int  true  "Ticket ID"
// @Success     200  {object}  domain.TicketRow
// @Failure     400  {object}  handlers.ErrorResponse "Invalid ID"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /tickets/{id} [get]
func (h *Handlers) GetTicket(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ticket id must be a positive integer")
		return
	}
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	row, err := h.tickets.Get(ctx, id)
	switch {
	case services.IsNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	default:
		ok(c, http.StatusOK, row)
	}
}

// CreateTicket godoc
// @ID          createTicket
// @Summary     Create a ticket
// @Description Validates the referenced user, issue type, and optional keyword, then inserts a chat transcript and the ticket in one transaction.
// @Tags        Tickets
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateTicketRequest true "Create ticket payload"
// @Success     201  {object}  handlers.CreateTicketResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Referenced entity missing"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /tickets [post]
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	ticket, chat, err := h.tickets.Create(ctx, services.CreateTicketInput{
		UserID:      req.UserID,
		IssueTypeID: req.IssueTypeID,
		KeywordID:   req.KeywordID,
		Status:      req.Status,
		Priority:    req.Priority,
		IsWithdrawn: req.IsWithdrawn,
		WithChat:    true,
		Transcript:  req.Transcript,
	})
	switch {
	case services.IsNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	default:
		ok(c, http.StatusCreated, CreateTicketResponse{
			Message:  "ticket created",
			TicketID: ticket.ID,
			ChatID:   chat.ID,
		})
	}
}

// UpdateTicketPriority godoc
// @ID          updateTicketPriority
// @Summary     Update a ticket's priority
// @Description Sets the priority of an existing ticket. The priority must be non-empty.
// @Tags        Tickets
// @Accept      json
// @Produce     json
// @Param       id   path  int                               true "Ticket ID"
// @Param       body body  handlers.UpdatePriorityRequest    true "New priority"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Missing or empty priority"
// @Failure     404  {object}  handlers.ErrorResponse "Ticket not found"
// @Failure     500  {object}  handlers.ErrorResponse "Database error"
// @Router      /tickets/{id} [put]
func (h *Handlers) UpdateTicketPriority(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ticket id must be a positive integer")
		return
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	err := h.tickets.UpdatePriority(ctx, id, req.Priority)
	switch {
	case errors.Is(err, services.ErrEmptyPriority):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case services.IsNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
	default:
		ok(c, http.StatusOK, MessageResponse{Message: fmt.Sprintf("priority of ticket %d updated", id)})
	}
}

// DeleteTicket godoc
// @ID          deleteTicket
// @Summary     Delete a ticket
// @Description Physically removes a ticket row and its linked chat transcript.
// @Tags        Tickets
// @Produce     json
// @Param       id   path      int  true  "Ticket ID"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid ID"
// @Failure     404  {object}  handlers.ErrorResponse "Ticket not found"
// @Failure     500  {object}  handlers.ErrorResponse "Database error"
// @Router      /tickets/{id} [delete]
func (h *Handlers) DeleteTicket(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ticket id must be a positive integer")
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	err := h.tickets.Delete(ctx, id)
	switch {
	case services.IsNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
	default:
		ok(c, http.StatusOK, MessageResponse{Message: fmt.Sprintf("ticket %d deleted", id)})
	}
}
