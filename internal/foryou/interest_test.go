package foryou

import (
	"testing"

	"foryou-service/internal/post"
)

func TestCaptionTokens(t *testing.T) {
	tests := []struct {
		name         string
		caption      string
		wantHashtags []string
		wantKeywords []string
	}{
		{
			name:         "plain hashtags and keywords",
			caption:      "sunset over the mountains #travel #nature",
			wantHashtags: []string{"#travel", "#nature"},
			wantKeywords: []string{"sunset", "over", "mountains"},
		},
		{
			name:         "case folded",
			caption:      "Sunset #Travel",
			wantHashtags: []string{"#travel"},
			wantKeywords: []string{"sunset"},
		},
		{
			name:         "short tokens dropped",
			caption:      "a the fog dog lake",
			wantHashtags: nil,
			wantKeywords: []string{"lake"},
		},
		{
			name:         "mentions and urls dropped",
			caption:      "shoutout @alice https://example.com/pic http://short.io check this",
			wantHashtags: nil,
			wantKeywords: []string{"shoutout", "check", "this"},
		},
		{
			name:         "hashtag with trailing punctuation keeps word run",
			caption:      "#travel! is great",
			wantHashtags: []string{"#travel"},
			wantKeywords: []string{"great"},
		},
		{
			name:         "bare hash is neither",
			caption:      "#! ####",
			wantHashtags: nil,
			wantKeywords: nil,
		},
		{
			name:         "empty caption",
			caption:      "",
			wantHashtags: nil,
			wantKeywords: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, words := captionTokens(tt.caption)
			if len(tags) != len(tt.wantHashtags) {
				t.Fatalf("hashtags = %v, want %v", tags, tt.wantHashtags)
			}
			for _, h := range tt.wantHashtags {
				if !tags[h] {
					t.Errorf("missing hashtag %q in %v", h, tags)
				}
			}
			if len(words) != len(tt.wantKeywords) {
				t.Fatalf("keywords = %v, want %v", words, tt.wantKeywords)
			}
			for _, k := range tt.wantKeywords {
				if !words[k] {
					t.Errorf("missing keyword %q in %v", k, words)
				}
			}
		})
	}
}

func TestBuildProfile(t *testing.T) {
	interacted := []post.Post{
		{AuthorID: "a1", Caption: "sunset #travel"},
		{AuthorID: "a2", Caption: "mountain hike #travel #nature"},
		{AuthorID: "a1", Caption: "coffee time"},
	}

	p := BuildProfile(interacted)

	if !p.Hashtags["#travel"] || !p.Hashtags["#nature"] {
		t.Errorf("hashtags = %v, want #travel and #nature", p.Hashtags)
	}
	if len(p.Hashtags) != 2 {
		t.Errorf("len(hashtags) = %d, want 2", len(p.Hashtags))
	}
	for _, kw := range []string{"sunset", "mountain", "hike", "coffee", "time"} {
		if !p.Keywords[kw] {
			t.Errorf("missing keyword %q", kw)
		}
	}
	if !p.Authors["a1"] || !p.Authors["a2"] || len(p.Authors) != 2 {
		t.Errorf("authors = %v, want a1 and a2", p.Authors)
	}
	if p.Empty() {
		t.Error("Empty() = true for a populated profile")
	}
}

func TestBuildProfileEmptyHistory(t *testing.T) {
	p := BuildProfile(nil)
	if !p.Empty() {
		t.Fatalf("Empty() = false, profile = %+v", p)
	}
	if p.Hashtags == nil || p.Keywords == nil || p.Authors == nil {
		t.Fatal("profile sets must be non-nil even when empty")
	}
}
