// Package services – DirectoryService
//
// This file implements the DirectoryService, the read-only listings used by
// the JSON API (/users, /dept) and by the form pages' dropdowns (issue types,
// keywords). All listings return an empty slice, never an error, when the
// underlying table is empty.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
)

// DirectoryRepo defines the repository contract required by DirectoryService.
type DirectoryRepo interface {
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
	ListDepartments(ctx context.Context, db *gorm.DB) ([]domain.Department, error)
	ListIssueTypes(ctx context.Context, db *gorm.DB) ([]domain.IssueType, error)
	ListKeywords(ctx context.Context, db *gorm.DB) ([]domain.Keyword, error)
}

// DirectoryService exposes the lookup-table listings.
type DirectoryService struct {
	DB   *gorm.DB
	Repo DirectoryRepo
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(db *gorm.DB, r DirectoryRepo) *DirectoryService {
	return &DirectoryService{DB: db, Repo: r}
}

// Users returns all user rows.
func (s *DirectoryService) Users(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx, s.DB)
}

// Departments returns all department rows.
func (s *DirectoryService) Departments(ctx context.Context) ([]domain.Department, error) {
	return s.Repo.ListDepartments(ctx, s.DB)
}

// IssueTypes returns all issue-type rows.
func (s *DirectoryService) IssueTypes(ctx context.Context) ([]domain.IssueType, error) {
	return s.Repo.ListIssueTypes(ctx, s.DB)
}

// Keywords returns all keyword rows.
func (s *DirectoryService) Keywords(ctx context.Context) ([]domain.Keyword, error) {
	return s.Repo.ListKeywords(ctx, s.DB)
}
