package foryou

import (
	"context"
	"fmt"
	"time"

	"foryou-service/internal/post"
	"foryou-service/internal/user"

	"github.com/prometheus/client_golang/prometheus"
)

type Service interface {
	// ForYou runs the ranking pipeline: interest extraction, candidate
	// selection, scoring, pagination and the author join.
	ForYou(ctx context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error)
	// HomeFeed is the plain chronological feed over the same projection.
	HomeFeed(ctx context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error)
}

type service struct {
	posts    post.Repository
	users    user.Repository
	profiles ProfileCache

	weights      Weights
	historyLimit int
	scanLimit    int

	now       func() time.Time
	jitterFor func(viewerID, cursor string, max float64) func() float64
}

type Option func(*service)

func WithProfileCache(c ProfileCache) Option {
	return func(s *service) { s.profiles = c }
}

func WithHistoryLimit(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

func WithScanLimit(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.scanLimit = n
		}
	}
}

func WithWeights(w Weights) Option {
	return func(s *service) { s.weights = w }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithJitterSource overrides the per-request jitter generator; tests pin it to
// zero to make scores deterministic.
func WithJitterSource(f func(viewerID, cursor string, max float64) func() float64) Option {
	return func(s *service) { s.jitterFor = f }
}

func NewService(posts post.Repository, users user.Repository, opts ...Option) Service {
	s := &service{
		posts:        posts,
		users:        users,
		weights:      DefaultWeights(),
		historyLimit: 50,
		scanLimit:    500,
		now:          time.Now,
		jitterFor:    SeededJitter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ForYou(ctx context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error) {
	timer := prometheus.NewTimer(feedDuration.WithLabelValues("foryou"))
	defer timer.ObserveDuration()

	resp, err := s.forYou(ctx, viewerID, limit, cursor)
	if err != nil {
		feedRequestsTotal.WithLabelValues("foryou", "error").Inc()
		return nil, err
	}
	feedRequestsTotal.WithLabelValues("foryou", "ok").Inc()
	return resp, nil
}

func (s *service) forYou(ctx context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error) {
	limit = clampLimit(limit)
	before := parseCursor(cursor)

	profile, err := s.interestProfile(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("interest profile: %w", err)
	}
	if profile.Empty() {
		emptyProfileTotal.Inc()
	}

	following, err := s.users.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("follow list: %w", err)
	}

	q := post.CandidateQuery{
		ViewerID:       viewerID,
		ExcludeAuthors: following,
		Limit:          s.scanLimit,
	}
	// The relax check runs against the primary predicate without the cursor
	// constraint, so reaching the end of a strict feed does not flip the
	// predicate mid-pagination. With an empty follow list the strict and
	// relaxed predicates coincide and the count is skipped.
	if len(following) > 0 {
		n, err := s.posts.CountCandidates(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("candidate count: %w", err)
		}
		if n == 0 {
			q.ExcludeAuthors = nil
			fallbackTotal.Inc()
		}
	}
	q.Before = before

	candidates, err := s.posts.FindCandidates(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("candidate scan: %w", err)
	}

	scorer := NewScorer(s.weights, s.now(), s.jitterFor(viewerID, cursor, s.weights.JitterMax))
	scored := make([]scoredPost, len(candidates))
	for i := range candidates {
		scored[i] = scoredPost{post: &candidates[i], score: scorer.Score(&candidates[i], profile)}
	}

	page, next := paginate(scored, limit)
	return s.assemble(ctx, viewerID, page, next)
}

func (s *service) HomeFeed(ctx context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error) {
	timer := prometheus.NewTimer(feedDuration.WithLabelValues("home"))
	defer timer.ObserveDuration()

	limit = clampLimit(limit)
	before := parseCursor(cursor)

	posts, err := s.posts.FindPage(ctx, before, limit)
	if err != nil {
		feedRequestsTotal.WithLabelValues("home", "error").Inc()
		return nil, fmt.Errorf("feed page: %w", err)
	}

	page := make([]scoredPost, len(posts))
	for i := range posts {
		page[i] = scoredPost{post: &posts[i]}
	}
	var next *time.Time
	if len(page) == limit && limit > 0 {
		last := page[len(page)-1].post.CreatedAt
		next = &last
	}

	resp, err := s.assemble(ctx, viewerID, page, next)
	if err != nil {
		feedRequestsTotal.WithLabelValues("home", "error").Inc()
		return nil, err
	}
	feedRequestsTotal.WithLabelValues("home", "ok").Inc()
	return resp, nil
}

// interestProfile returns the cached profile when one is warm, otherwise mines
// it from the viewer's recent interactions.
func (s *service) interestProfile(ctx context.Context, viewerID string) (*InterestProfile, error) {
	if s.profiles != nil {
		if p, ok := s.profiles.Get(ctx, viewerID); ok {
			profileCacheHits.WithLabelValues("hit").Inc()
			return p, nil
		}
		profileCacheHits.WithLabelValues("miss").Inc()
	}

	interacted, err := s.posts.RecentInteracted(ctx, viewerID, s.historyLimit)
	if err != nil {
		return nil, err
	}
	p := BuildProfile(interacted)

	if s.profiles != nil {
		s.profiles.Set(ctx, viewerID, p)
	}
	return p, nil
}

func (s *service) assemble(ctx context.Context, viewerID string, page []scoredPost, next *time.Time) (*FeedResponse, error) {
	seen := make(map[string]bool, len(page))
	authorIDs := make([]string, 0, len(page))
	for _, sp := range page {
		if !seen[sp.post.AuthorID] {
			seen[sp.post.AuthorID] = true
			authorIDs = append(authorIDs, sp.post.AuthorID)
		}
	}

	authors, err := s.users.ByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("author join: %w", err)
	}

	items := make([]FeedItem, 0, len(page))
	for _, sp := range page {
		items = append(items, toFeedItem(sp.post, authors[sp.post.AuthorID], viewerID))
	}

	var nextCursor *string
	if next != nil {
		c := formatCursor(*next)
		nextCursor = &c
	}
	return &FeedResponse{Items: items, NextCursor: nextCursor}, nil
}
