// Package httpapi wires the HTTP transport (Gin) to the application
// services, middleware, and route handlers. It centralizes cross-cutting
// concerns: tracing, correlation IDs, structured logging, panic recovery,
// metrics, compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected —
//     no process-wide mutable route registration
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/config"
	"github.com/supportgen/go-helpdesk-backend/internal/domain"
	"github.com/supportgen/go-helpdesk-backend/internal/http/handlers"
	"github.com/supportgen/go-helpdesk-backend/internal/http/middleware"
	"github.com/supportgen/go-helpdesk-backend/internal/http/templates"
	"github.com/supportgen/go-helpdesk-backend/internal/repo"
	"github.com/supportgen/go-helpdesk-backend/internal/services"
)

// ticketRepoShim adapts the repository free functions to the
// services.TicketRepo interface expected by the TicketService. This keeps
// services decoupled from the concrete repo package while reusing the
// existing functions.
type ticketRepoShim struct{}

func (ticketRepoShim) CreateChat(ctx context.Context, db *gorm.DB, transcript string) (*domain.Chat, error) {
	return repo.CreateChat(ctx, db, transcript)
}

func (ticketRepoShim) CreateTicket(ctx context.Context, db *gorm.DB, t *domain.Ticket) error {
	return repo.CreateTicket(ctx, db, t)
}

func (ticketRepoShim) ListTickets(ctx context.Context, db *gorm.DB) ([]domain.TicketRow, error) {
	return repo.ListTickets(ctx, db)
}

func (ticketRepoShim) GetTicket(ctx context.Context, db *gorm.DB, id uint) (*domain.TicketRow, error) {
	return repo.GetTicket(ctx, db, id)
}

func (ticketRepoShim) SearchTicketsByKeyword(ctx context.Context, db *gorm.DB, term string) ([]domain.TicketRow, error) {
	return repo.SearchTicketsByKeyword(ctx, db, term)
}

func (ticketRepoShim) SearchTicketsByIssueType(ctx context.Context, db *gorm.DB, term string) ([]domain.TicketRow, error) {
	return repo.SearchTicketsByIssueType(ctx, db, term)
}

func (ticketRepoShim) UpdateTicketPriority(ctx context.Context, db *gorm.DB, id uint, priority string) error {
	return repo.UpdateTicketPriority(ctx, db, id, priority)
}

func (ticketRepoShim) UpdateTicketFields(ctx context.Context, db *gorm.DB, id uint, status, priority string, dateResolved *time.Time) error {
	return repo.UpdateTicketFields(ctx, db, id, status, priority, dateResolved)
}

func (ticketRepoShim) DeleteTicket(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteTicket(ctx, db, id)
}

func (ticketRepoShim) UserExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	return repo.UserExists(ctx, db, id)
}

func (ticketRepoShim) IssueTypeExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	return repo.IssueTypeExists(ctx, db, id)
}

func (ticketRepoShim) KeywordExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	return repo.KeywordExists(ctx, db, id)
}

func (ticketRepoShim) TicketStatusCounts(ctx context.Context, db *gorm.DB) ([]repo.StatusCount, error) {
	return repo.TicketStatusCounts(ctx, db)
}

func (ticketRepoShim) RecentTickets(ctx context.Context, db *gorm.DB, limit int) ([]domain.TicketRow, error) {
	return repo.RecentTickets(ctx, db, limit)
}

// directoryRepoShim adapts the lookup free functions to services.DirectoryRepo.
type directoryRepoShim struct{}

func (directoryRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

func (directoryRepoShim) ListDepartments(ctx context.Context, db *gorm.DB) ([]domain.Department, error) {
	return repo.ListDepartments(ctx, db)
}

func (directoryRepoShim) ListIssueTypes(ctx context.Context, db *gorm.DB) ([]domain.IssueType, error) {
	return repo.ListIssueTypes(ctx, db)
}

func (directoryRepoShim) ListKeywords(ctx context.Context, db *gorm.DB) ([]domain.Keyword, error) {
	return repo.ListKeywords(ctx, db)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: the JSON API routes (/users, /tickets, /tickets/:id, /dept) and the
// server-rendered pages (dashboard, detail, search, create/edit/delete).
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compression for JSON and HTML responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (allow all when no origins are configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (annotations live on the JSON handlers)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Server-rendered pages
	tmpl, err := templates.Load()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	// Dependency injection: services ← repo/db
	ticketSvc := services.NewTicketService(db, ticketRepoShim{})
	dirSvc := services.NewDirectoryService(db, directoryRepoShim{})

	h := handlers.New(ticketSvc, dirSvc, cfg.RequestTimeout)
	p := handlers.NewPages(ticketSvc, dirSvc, cfg.RequestTimeout)

	// JSON API
	r.GET("/users", h.ListUsers)
	r.GET("/dept", h.ListDepartments)
	r.GET("/tickets", h.ListTickets)
	r.POST("/tickets", h.CreateTicket)
	r.GET("/tickets/:id", h.GetTicket)
	r.PUT("/tickets/:id", h.UpdateTicketPriority)
	r.DELETE("/tickets/:id", h.DeleteTicket)

	// Pages
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

	return nil
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
