package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
	"github.com/supportgen/go-helpdesk-backend/internal/repo"
)

// dirShim adapts the lookup free functions to DirectoryRepo.
type dirShim struct{}

func (dirShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

func (dirShim) ListDepartments(ctx context.Context, db *gorm.DB) ([]domain.Department, error) {
	return repo.ListDepartments(ctx, db)
}

func (dirShim) ListIssueTypes(ctx context.Context, db *gorm.DB) ([]domain.IssueType, error) {
	return repo.ListIssueTypes(ctx, db)
}

func (dirShim) ListKeywords(ctx context.Context, db *gorm.DB) ([]domain.Keyword, error) {
	return repo.ListKeywords(ctx, db)
}

func TestDirectoryListings(t *testing.T) {
	_, db := newTestService(t)
	svc := NewDirectoryService(db, dirShim{})

	// Empty tables list as empty slices, not errors.
	users, err := svc.Users(context.Background())
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("users = %+v, want empty", users)
	}

	if err := db.Create(&domain.User{Name: "Alice", Email: "alice@example.com"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&domain.Department{Name: "IT Support"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, err = svc.Users(context.Background())
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Errorf("users = %+v", users)
	}

	depts, err := svc.Departments(context.Background())
	if err != nil {
		t.Fatalf("departments: %v", err)
	}
	if len(depts) != 1 || depts[0].Name != "IT Support" {
		t.Errorf("departments = %+v", depts)
	}
}
