// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for comments.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appshowcase/internal/domain"
)

// CreateComment inserts a comment row. Content length policy lives in the
// service layer; the repo only persists.
func CreateComment(ctx context.Context, db *gorm.DB, appID, userID, userName, content string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:        uuid.NewString(),
		AppID:     appID,
		UserID:    userID,
		UserName:  userName,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by ID, or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCommentsByApp returns one page of comments on appID, newest first.
// A limit <= 0 disables paging and returns every comment.
func ListCommentsByApp(ctx context.Context, db *gorm.DB, appID string, offset, limit int) ([]domain.Comment, error) {
	q := db.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	var out []domain.Comment
	err := q.Find(&out).Error
	return out, err
}

// DeleteCommentByAuthor deletes a comment only when authorID matches the
// row's user_id. Returns ErrNotFound when nothing was deleted; the service
// layer distinguishes "missing" from "not yours" with a separate lookup.
func DeleteCommentByAuthor(ctx context.Context, db *gorm.DB, id, authorID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, authorID).
		Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
