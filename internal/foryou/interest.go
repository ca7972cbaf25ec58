package foryou

import (
	"regexp"
	"strings"

	"foryou-service/internal/post"
)

// InterestProfile is the viewer's implicit taste, mined per request from posts
// they liked or commented on. It lives for one request (or one short cache TTL)
// and is never persisted.
type InterestProfile struct {
	Hashtags map[string]bool `json:"hashtags"`
	Keywords map[string]bool `json:"keywords"`
	Authors  map[string]bool `json:"authors"`
}

func NewInterestProfile() *InterestProfile {
	return &InterestProfile{
		Hashtags: make(map[string]bool),
		Keywords: make(map[string]bool),
		Authors:  make(map[string]bool),
	}
}

// Empty reports whether no interest signal was mined at all. Ranking then
// degrades to engagement, recency and jitter only.
func (p *InterestProfile) Empty() bool {
	return len(p.Hashtags) == 0 && len(p.Keywords) == 0 && len(p.Authors) == 0
}

var hashtagRe = regexp.MustCompile(`^#\w+`)

// captionTokens splits a caption into the hashtag and keyword sets used on both
// sides of the overlap computation. Tokens are case-folded; a hashtag is the
// leading `#\w+` run of a token; keywords must be longer than 3 bytes and must
// not be hashtags, mentions or URLs.
func captionTokens(caption string) (hashtags, keywords map[string]bool) {
	hashtags = make(map[string]bool)
	keywords = make(map[string]bool)
	for _, tok := range strings.Fields(caption) {
		tok = strings.ToLower(tok)
		if tag := hashtagRe.FindString(tok); tag != "" {
			hashtags[tag] = true
			continue
		}
		if len(tok) <= 3 {
			continue
		}
		if strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, "@") {
			continue
		}
		if strings.HasPrefix(tok, "http://") || strings.HasPrefix(tok, "https://") {
			continue
		}
		keywords[tok] = true
	}
	return hashtags, keywords
}

// BuildProfile derives the interest profile from the viewer's interacted posts.
// An empty history yields an empty profile, not an error.
func BuildProfile(interacted []post.Post) *InterestProfile {
	p := NewInterestProfile()
	for i := range interacted {
		tags, words := captionTokens(interacted[i].Caption)
		for t := range tags {
			p.Hashtags[t] = true
		}
		for w := range words {
			p.Keywords[w] = true
		}
		p.Authors[interacted[i].AuthorID] = true
	}
	return p
}
