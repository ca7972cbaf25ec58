package foryou

import (
	"hash/fnv"
	"math/rand"
	"os"
	"strconv"
	"time"

	"foryou-service/internal/post"
)

// Weights control the composite relevance score. Hashtag and author affinity
// dominate so the feed feels personal; engagement is deliberately down-weighted
// so popular-but-irrelevant posts do not drown out niche matches.
type Weights struct {
	Hashtag     float64
	Keyword     float64
	Author      float64
	Engagement  float64
	RecencyDays float64
	Quality     float64
	JitterMax   float64
}

func getenvFloat(k string, def float64) float64 {
	if s := os.Getenv(k); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

func DefaultWeights() Weights {
	return Weights{
		Hashtag:     getenvFloat("FORYOU_WEIGHT_HASHTAG", 10),
		Keyword:     getenvFloat("FORYOU_WEIGHT_KEYWORD", 3),
		Author:      getenvFloat("FORYOU_WEIGHT_AUTHOR", 15),
		Engagement:  getenvFloat("FORYOU_WEIGHT_ENGAGEMENT", 0.3),
		RecencyDays: getenvFloat("FORYOU_RECENCY_DAYS", 8),
		Quality:     getenvFloat("FORYOU_WEIGHT_QUALITY", 2),
		JitterMax:   getenvFloat("FORYOU_JITTER_MAX", 3),
	}
}

const qualityCaptionLen = 20

// Scorer evaluates candidates against one viewer's profile at one instant.
// The jitter source is injected so tests can pin it to zero.
type Scorer struct {
	weights Weights
	now     time.Time
	jitter  func() float64
}

func NewScorer(w Weights, now time.Time, jitter func() float64) *Scorer {
	if jitter == nil {
		jitter = func() float64 { return 0 }
	}
	return &Scorer{weights: w, now: now, jitter: jitter}
}

// SeededJitter returns a uniform [0, max) source seeded from the viewer id and
// cursor, so identical requests reproduce their ordering while distinct
// requests still diversify.
func SeededJitter(viewerID, cursor string, max float64) func() float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(viewerID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(cursor))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return func() float64 { return rng.Float64() * max }
}

// Score is the sum of the ranking components: hashtag overlap, keyword overlap,
// author affinity, engagement, recency decay, caption quality and jitter.
func (s *Scorer) Score(p *post.Post, profile *InterestProfile) float64 {
	tags, words := captionTokens(p.Caption)

	var score float64
	for t := range tags {
		if profile.Hashtags[t] {
			score += s.weights.Hashtag
		}
	}
	for w := range words {
		if profile.Keywords[w] {
			score += s.weights.Keyword
		}
	}
	if profile.Authors[p.AuthorID] {
		score += s.weights.Author
	}

	score += (float64(len(p.Likes)) + 2*float64(len(p.Comments))) * s.weights.Engagement

	days := s.now.Sub(p.CreatedAt).Hours() / 24
	if bonus := s.weights.RecencyDays - days; bonus > 0 {
		score += bonus
	}

	if len(p.Caption) > qualityCaptionLen {
		score += s.weights.Quality
	}

	return score + s.jitter()
}
