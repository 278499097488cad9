// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-side queries for the lookup
// tables (users, issue types, keywords, departments) and the existence
// checks the service layer runs before inserting a ticket.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/supportgen/go-helpdesk-backend/internal/domain"
)

// ListUsers returns all user rows. It returns an empty slice, not an error,
// when the table is empty.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// ListDepartments returns all department rows.
func ListDepartments(ctx context.Context, db *gorm.DB) ([]domain.Department, error) {
	out := []domain.Department{}
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// ListIssueTypes returns all issue-type rows, used to populate form dropdowns.
func ListIssueTypes(ctx context.Context, db *gorm.DB) ([]domain.IssueType, error) {
	out := []domain.IssueType{}
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// ListKeywords returns all keyword rows, used to populate form dropdowns.
func ListKeywords(ctx context.Context, db *gorm.DB) ([]domain.Keyword, error) {
	out := []domain.Keyword{}
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// UserExists reports whether a user row with the given ID exists.
func UserExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	return exists(ctx, db, &domain.User{}, id)
}

// IssueTypeExists reports whether an issue-type row with the given ID exists.
func IssueTypeExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	return exists(ctx, db, &domain.IssueType{}, id)
}

// KeywordExists reports whether a keyword row with the given ID exists.
func KeywordExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	return exists(ctx, db, &domain.Keyword{}, id)
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
