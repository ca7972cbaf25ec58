package post

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CandidateQuery describes the eligibility predicate for feed candidates.
// ExcludeAuthors carries the viewer's follow list under the strict predicate
// and is empty under the relaxed one.
type CandidateQuery struct {
	ViewerID       string
	ExcludeAuthors []string
	Before         *time.Time
	Limit          int
}

type Repository interface {
	// RecentInteracted returns the newest posts the viewer liked or commented on.
	RecentInteracted(ctx context.Context, viewerID string, limit int) ([]Post, error)
	CountCandidates(ctx context.Context, q CandidateQuery) (int64, error)
	FindCandidates(ctx context.Context, q CandidateQuery) ([]Post, error)
	// FindPage is the chronological feed: newest first, optionally before a cursor.
	FindPage(ctx context.Context, before *time.Time, limit int) ([]Post, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Likes").
		Preload("Comments")
}

func (r *repository) RecentInteracted(ctx context.Context, viewerID string, limit int) ([]Post, error) {
	liked := r.db.Model(&Like{}).Select("post_id").Where("user_id = ?", viewerID)
	commented := r.db.Model(&Comment{}).Select("post_id").Where("user_id = ?", viewerID)

	var posts []Post
	err := r.db.WithContext(ctx).
		Where("id IN (?) OR id IN (?)", liked, commented).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) candidateScope(tx *gorm.DB, q CandidateQuery) *gorm.DB {
	liked := r.db.Model(&Like{}).Select("post_id").Where("user_id = ?", q.ViewerID)
	tx = tx.
		Where("author_id <> ?", q.ViewerID).
		Where("id NOT IN (?)", liked)
	if len(q.ExcludeAuthors) > 0 {
		tx = tx.Where("author_id NOT IN ?", q.ExcludeAuthors)
	}
	if q.Before != nil {
		tx = tx.Where("created_at < ?", *q.Before)
	}
	return tx
}

func (r *repository) CountCandidates(ctx context.Context, q CandidateQuery) (int64, error) {
	var n int64
	err := r.candidateScope(r.db.WithContext(ctx).Model(&Post{}), q).Count(&n).Error
	return n, err
}

func (r *repository) FindCandidates(ctx context.Context, q CandidateQuery) ([]Post, error) {
	var posts []Post
	tx := r.candidateScope(r.db.WithContext(ctx), q)
	err := withRelations(tx).
		Order("created_at DESC").
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) FindPage(ctx context.Context, before *time.Time, limit int) ([]Post, error) {
	tx := r.db.WithContext(ctx)
	if before != nil {
		tx = tx.Where("created_at < ?", *before)
	}
	var posts []Post
	err := withRelations(tx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
