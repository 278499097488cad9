package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
	"github.com/supportgen/go-helpdesk-backend/internal/http/templates"
	"github.com/supportgen/go-helpdesk-backend/internal/services"
)

func newPagesRouter(t *testing.T, tickets TicketService, dir DirectoryService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := templates.Load()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)

	p := NewPages(tickets, dir, 2*time.Second)
	r.GET("/", p.Dashboard)
	r.GET("/ticket/:id", p.TicketDetail)
	r.GET("/search-tickets-keyword", p.SearchByKeyword)
	r.POST("/search-tickets-keyword", p.SearchByKeyword)
	r.GET("/search-tickets-issuetype", p.SearchByIssueType)
	r.POST("/search-tickets-issuetype", p.SearchByIssueType)
	r.GET("/create-ticket", p.CreateTicketForm)
	r.POST("/create-ticket", p.CreateTicketSubmit)
	r.GET("/edit-ticket/:id", p.EditTicketForm)
	r.POST("/edit-ticket/:id", p.EditTicketSubmit)
	r.POST("/delete-ticket/:id", p.DeleteTicketSubmit)
	return r
}

func doForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardPage(t *testing.T) {
	tickets := &stubTickets{
		dashboard: func(ctx context.Context, limit int) (*services.DashboardData, error) {
			return &services.DashboardData{
				Recent: []domain.TicketRow{{ID: 1, Status: "open", Priority: "high"}},
			}, nil
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doGet(t, r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Dashboard") {
		t.Errorf("body missing title: %s", body)
	}
	// Status casing is normalized for display.
	if !strings.Contains(body, "Open") {
		t.Errorf("body missing titled status: %s", body)
	}
}

func TestDashboardLimitQuery(t *testing.T) {
	var gotLimit int
	tickets := &stubTickets{
		dashboard: func(ctx context.Context, limit int) (*services.DashboardData, error) {
			gotLimit = limit
			return &services.DashboardData{}, nil
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	if w := doGet(t, r, "/?limit=5"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotLimit != 5 {
		t.Errorf("limit = %d, want 5", gotLimit)
	}

	// Garbage falls back to the service default.
	if w := doGet(t, r, "/?limit=abc"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotLimit != 0 {
		t.Errorf("limit = %d, want 0", gotLimit)
	}
}

func TestTicketDetailNotFoundPage(t *testing.T) {
	tickets := &stubTickets{
		get: func(ctx context.Context, id uint) (*domain.TicketRow, error) {
			return nil, &services.NotFoundError{Entity: "Ticket", ID: id}
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doGet(t, r, "/ticket/999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ticket with ID 999 not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSearchPageGetShowsForm(t *testing.T) {
	r := newPagesRouter(t, &stubTickets{}, &stubDirectory{})

	w := doGet(t, r, "/search-tickets-keyword")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Keyword contains") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSearchPagePostRunsSearch(t *testing.T) {
	var gotTerm string
	tickets := &stubTickets{
		searchKeyword: func(ctx context.Context, term string) ([]domain.TicketRow, error) {
			gotTerm = term
			return []domain.TicketRow{{ID: 4, Status: "Open", KeywordText: "Cannot login"}}, nil
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/search-tickets-keyword", url.Values{"term": {"  login  "}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if gotTerm != "login" {
		t.Errorf("term = %q, want trimmed %q", gotTerm, "login")
	}
	if !strings.Contains(w.Body.String(), "Cannot login") {
		t.Errorf("body missing result: %s", w.Body.String())
	}
}

func TestSearchByIssueTypePost(t *testing.T) {
	tickets := &stubTickets{
		searchIssue: func(ctx context.Context, term string) ([]domain.TicketRow, error) {
			return []domain.TicketRow{}, nil
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/search-tickets-issuetype", url.Values{"term": {"network"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateTicketFormPage(t *testing.T) {
	dir := &stubDirectory{
		users: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: 1, Name: "Alice"}}, nil
		},
		issueTypes: func(ctx context.Context) ([]domain.IssueType, error) {
			return []domain.IssueType{{ID: 2, Description: "Network"}}, nil
		},
		keywords: func(ctx context.Context) ([]domain.Keyword, error) {
			return []domain.Keyword{}, nil
		},
	}
	r := newPagesRouter(t, &stubTickets{}, dir)

	w := doGet(t, r, "/create-ticket")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Alice") || !strings.Contains(body, "Network") {
		t.Errorf("dropdowns not rendered: %s", body)
	}
}

func TestCreateTicketSubmitRedirects(t *testing.T) {
	var got services.CreateTicketInput
	tickets := &stubTickets{
		create: func(ctx context.Context, in services.CreateTicketInput) (*domain.Ticket, *domain.Chat, error) {
			got = in
			return &domain.Ticket{ID: 5}, nil, nil
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/create-ticket", url.Values{
		"user_id":       {"1"},
		"issue_type_id": {"2"},
		"status":        {"Open"},
		"priority":      {"high"},
		"is_withdrawn":  {"on"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/tickets" {
		t.Errorf("Location = %q, want /tickets", loc)
	}
	// The form flow does not open a chat transcript.
	if got.WithChat {
		t.Error("WithChat = true, want false")
	}
	// Checkbox submission ("on") maps to the boolean flag.
	if !got.IsWithdrawn {
		t.Error("IsWithdrawn = false, want true")
	}
}

func TestCreateTicketSubmitBadInput(t *testing.T) {
	r := newPagesRouter(t, &stubTickets{}, &stubDirectory{})

	w := doForm(t, r, "/create-ticket", url.Values{
		"user_id":       {"abc"},
		"issue_type_id": {"2"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateTicketSubmitUnknownUserPage(t *testing.T) {
	tickets := &stubTickets{
		create: func(ctx context.Context, in services.CreateTicketInput) (*domain.Ticket, *domain.Chat, error) {
			return nil, nil, &services.NotFoundError{Entity: "User", ID: in.UserID}
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/create-ticket", url.Values{
		"user_id":       {"42"},
		"issue_type_id": {"2"},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User with ID 42 not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestEditTicketSubmitRedirects(t *testing.T) {
	var gotIn services.UpdateTicketInput
	tickets := &stubTickets{
		update: func(ctx context.Context, id uint, in services.UpdateTicketInput) error {
			gotIn = in
			return nil
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/edit-ticket/3", url.Values{
		"status":        {"Resolved"},
		"priority":      {"low"},
		"date_resolved": {"2025-04-02"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/tickets" {
		t.Errorf("Location = %q, want /tickets", loc)
	}
	if gotIn.Status != "Resolved" || gotIn.Priority != "low" {
		t.Errorf("input = %+v", gotIn)
	}
	if gotIn.DateResolved == nil || gotIn.DateResolved.Format("2006-01-02") != "2025-04-02" {
		t.Errorf("DateResolved = %v", gotIn.DateResolved)
	}
}

func TestEditTicketSubmitBadDate(t *testing.T) {
	r := newPagesRouter(t, &stubTickets{}, &stubDirectory{})

	w := doForm(t, r, "/edit-ticket/3", url.Values{
		"status":        {"Open"},
		"priority":      {"low"},
		"date_resolved": {"02/04/2025"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteTicketSubmitRedirectsHome(t *testing.T) {
	tickets := &stubTickets{
		delete: func(ctx context.Context, id uint) error { return nil },
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/delete-ticket/3", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestDeleteTicketSubmitNotFoundPage(t *testing.T) {
	tickets := &stubTickets{
		delete: func(ctx context.Context, id uint) error {
			return &services.NotFoundError{Entity: "Ticket", ID: id}
		},
	}
	r := newPagesRouter(t, tickets, &stubDirectory{})

	w := doForm(t, r, "/delete-ticket/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ticket with ID 999 not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}
