package foryou

import (
	"sort"
	"time"

	"foryou-service/internal/post"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 25
)

// clampLimit applies the default for absent/non-positive limits and the hard
// cap for oversized ones. Oversized requests are clamped, never rejected.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

type scoredPost struct {
	post  *post.Post
	score float64
}

// paginate orders candidates by score desc (createdAt desc breaks the
// vanishingly unlikely exact tie), truncates to the page and emits the next
// cursor only when the page came back full.
func paginate(scored []scoredPost, limit int) ([]scoredPost, *time.Time) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].post.CreatedAt.After(scored[j].post.CreatedAt)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	if len(scored) == limit && limit > 0 {
		last := scored[len(scored)-1].post.CreatedAt
		return scored, &last
	}
	return scored, nil
}
