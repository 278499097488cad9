// Server-rendered page handlers.
//
// This file exposes the HTML side of the application:
//   - GET  /                          dashboard (counts by status + recent tickets)
//   - GET  /ticket/{id}               ticket detail
//   - GET+POST /search-tickets-keyword     search form / results
//   - GET+POST /search-tickets-issuetype   search form / results
//   - GET+POST /create-ticket         create form / submission
//   - GET+POST /edit-ticket/{id}      edit form / submission
//   - POST /delete-ticket/{id}        delete and redirect home
//
// Page handlers share the service layer with the JSON API; they differ only
// in rendering. Failures render an error page carrying the same information
// content as the JSON envelopes.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
	"github.com/supportgen/go-helpdesk-backend/internal/services"
	"github.com/supportgen/go-helpdesk-backend/internal/sysutil"
	"github.com/supportgen/go-helpdesk-backend/internal/utils"
)

// Pages groups the HTML endpoints. Like Handlers, it is transport-thin and
// depends on the abstract service interfaces.
type Pages struct {
	tickets TicketService
	dir     DirectoryService
	timeout time.Duration
}

// NewPages constructs a Pages instance bound to the given services.
func NewPages(tickets TicketService, dir DirectoryService, timeout time.Duration) *Pages {
	return &Pages{tickets: tickets, dir: dir, timeout: timeout}
}

// reqCtx derives the request context, applying the configured timeout.
func (p *Pages) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), p.timeout)
}

// statusChoices populates the status dropdowns. The column is free-form; the
// form offers the canonical values.
var statusChoices = []string{domain.StatusOpen, domain.StatusInProgress, domain.StatusResolved}

// renderError renders the error page with the given status and message.
func renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   fmt.Sprintf("Error %d", status),
		"Message": msg,
	})
	c.Abort()
}

// parseFormDate accepts the date formats the forms submit: an HTML date input
// ("2006-01-02") or a full RFC 3339 timestamp. Empty input yields nil.
func parseFormDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", s)
	}
	return &t, nil
}

// Dashboard renders the landing page: ticket counts grouped by status and
// the most recently created tickets. An optional ?limit= query caps the
// recent listing.
func (p *Pages) Dashboard(c *gin.Context) {
	ctx, cancel := p.reqCtx(c)
	defer cancel()

	data, err := p.tickets.Dashboard(ctx, utils.AtoiDefault(c.Query("limit"), 0))
	if err != nil {
		renderError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":  "Dashboard",
		"Counts": data.Counts,
		"Recent": data.Recent,
	})
}

// TicketDetail renders a single joined ticket row, or a 404 page when the
// ticket does not exist.
func (p *Pages) TicketDetail(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		renderError(c, http.StatusBadRequest, "ticket id must be a positive integer")
		return
	}
	ctx, cancel := p.reqCtx(c)
	defer cancel()

	row, err := p.tickets.Get(ctx, id)
	switch {
	case services.IsNotFound(err):
		renderError(c, http.StatusNotFound, err.Error())
	case err != nil:
		renderError(c, http.StatusInternalServerError, err.Error())
	default:
		c.HTML(http.StatusOK, "ticket_detail.html", gin.H{
			"Title":  fmt.Sprintf("Ticket %d", row.ID),
			"Ticket": row,
		})
	}
}

// search renders the shared search page. On GET it shows the bare form; on
// POST it runs the provided search function with the submitted term.
func (p *Pages) search(c *gin.Context, pageTitle, prompt, action string,
	find func(ctx context.Context, term string) ([]domain.TicketRow, error)) {

	data := gin.H{
		"Title":    pageTitle,
		"Prompt":   prompt,
		"Action":   action,
		"Term":     "",
		"Searched": false,
	}
	if c.Request.Method == http.MethodPost {
		ctx, cancel := p.reqCtx(c)
		defer cancel()

		term := strings.TrimSpace(c.PostForm("term"))
		rows, err := find(ctx, term)
		if err != nil {
			renderError(c, http.StatusInternalServerError, err.Error())
			return
		}
		data["Term"] = term
		data["Searched"] = true
		data["Results"] = rows
	}
	c.HTML(http.StatusOK, "search.html", data)
}

// SearchByKeyword is the form and results page for keyword substring search.
func (p *Pages) SearchByKeyword(c *gin.Context) {
	p.search(c, "Search by keyword", "Keyword contains", "/search-tickets-keyword",
		p.tickets.SearchByKeyword)
}

// SearchByIssueType is the form and results page for issue-type substring search.
func (p *Pages) SearchByIssueType(c *gin.Context) {
	p.search(c, "Search by issue type", "Issue type contains", "/search-tickets-issuetype",
		p.tickets.SearchByIssueType)
}

// CreateTicketForm renders the create form with user, issue-type, and
// keyword dropdowns.
func (p *Pages) CreateTicketForm(c *gin.Context) {
	ctx, cancel := p.reqCtx(c)
	defer cancel()

	users, err := p.dir.Users(ctx)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err.Error())
		return
	}
	issueTypes, err := p.dir.IssueTypes(ctx)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err.Error())
		return
	}
	keywords, err := p.dir.Keywords(ctx)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "ticket_form.html", gin.H{
		"Title":      "New ticket",
		"Users":      users,
		"IssueTypes": issueTypes,
		"Keywords":   keywords,
		"Statuses":   statusChoices,
	})
}

// CreateTicketSubmit handles the form-encoded create submission. The form
// flow creates no chat transcript; on success it redirects to the ticket
// list. A missing foreign key renders a 404 page naming the missing ID.
func (p *Pages) CreateTicketSubmit(c *gin.Context) {
	userID, err1 := strconv.ParseUint(c.PostForm("user_id"), 10, 32)
	issueTypeID, err2 := strconv.ParseUint(c.PostForm("issue_type_id"), 10, 32)
	if err1 != nil || err2 != nil {
		renderError(c, http.StatusBadRequest, "user_id and issue_type_id must be positive integers")
		return
	}

	var keywordID *uint
	if raw := strings.TrimSpace(c.PostForm("keyword_id")); raw != "" {
		kid, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			renderError(c, http.StatusBadRequest, "keyword_id must be a positive integer")
			return
		}
		k := uint(kid)
		keywordID = &k
	}

	dateResolved, err := parseFormDate(c.PostForm("date_resolved"))
	if err != nil {
		renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := p.reqCtx(c)
	defer cancel()

	_, _, err = p.tickets.Create(ctx, services.CreateTicketInput{
		UserID:       uint(userID),
		IssueTypeID:  uint(issueTypeID),
		KeywordID:    keywordID,
		Status:       c.PostForm("status"),
		Priority:     c.PostForm("priority"),
		DateResolved: dateResolved,
		IsWithdrawn:  sysutil.IsTruthy(c.PostForm("is_withdrawn")),
		WithChat:     false,
	})
	switch {
	case services.IsNotFound(err):
		renderError(c, http.StatusNotFound, err.Error())
	case err != nil:
		renderError(c, http.StatusInternalServerError, err.Error())
	default:
		c.Redirect(http.StatusSeeOther, "/tickets")
	}
}

// EditTicketForm renders the edit form prefilled with the ticket's current
// mutable fields.
func (p *Pages) EditTicketForm(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		renderError(c, http.StatusBadRequest, "ticket id must be a positive integer")
		return
	}
	ctx, cancel := p.reqCtx(c)
	defer cancel()

	row, err := p.tickets.Get(ctx, id)
	switch {
	case services.IsNotFound(err):
		renderError(c, http.StatusNotFound, err.Error())
	case err != nil:
		renderError(c, http.StatusInternalServerError, err.Error())
	default:
		resolved := ""
		if row.DateResolved != nil {
			resolved = row.DateResolved.Format("2006-01-02")
		}
		c.HTML(http.StatusOK, "ticket_edit.html", gin.H{
			"Title":        fmt.Sprintf("Edit ticket %d", row.ID),
			"Ticket":       row,
			"Statuses":     statusChoices,
			"DateResolved": resolved,
		})
	}
}

// EditTicketSubmit handles the form-encoded edit submission (status,
// priority, date-resolved) and redirects to the ticket list.
func (p *Pages) EditTicketSubmit(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		renderError(c, http.StatusBadRequest, "ticket id must be a positive integer")
		return
	}

	dateResolved, err := parseFormDate(c.PostForm("date_resolved"))
	if err != nil {
		renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := p.reqCtx(c)
	defer cancel()

	err = p.tickets.Update(ctx, id, services.UpdateTicketInput{
		Status:       c.PostForm("status"),
		Priority:     c.PostForm("priority"),
		DateResolved: dateResolved,
	})
	switch {
	case errors.Is(err, services.ErrEmptyPriority):
		renderError(c, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		renderError(c, http.StatusNotFound, err.Error())
	case err != nil:
		renderError(c, http.StatusInternalServerError, err.Error())
	default:
		c.Redirect(http.StatusSeeOther, "/tickets")
	}
}

// DeleteTicketSubmit handles the POST delete flow and redirects home.
func (p *Pages) DeleteTicketSubmit(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		renderError(c, http.StatusBadRequest, "ticket id must be a positive integer")
		return
	}
	ctx, cancel := p.reqCtx(c)
	defer cancel()

	err := p.tickets.Delete(ctx, id)
	switch {
	case services.IsNotFound(err):
		renderError(c, http.StatusNotFound, err.Error())
	case err != nil:
		renderError(c, http.StatusInternalServerError, err.Error())
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}
