package foryou

import (
	"time"

	"foryou-service/internal/post"
	"foryou-service/internal/user"
)

type FeedResponse struct {
	Items      []FeedItem `json:"items"`
	NextCursor *string    `json:"nextCursor"`
}

type FeedItem struct {
	ID            string        `json:"id"`
	Caption       string        `json:"caption"`
	Media         []MediaItem   `json:"media"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Author        AuthorSummary `json:"author"`
	LikesCount    int           `json:"likesCount"`
	CommentsCount int           `json:"commentsCount"`
	IsLiked       bool          `json:"isLiked"`
}

type MediaItem struct {
	Kind     string  `json:"kind"`
	Src      string  `json:"src"`
	PublicID string  `json:"publicId,omitempty"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

type AuthorSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// toFeedItem projects a post plus its author onto the public shape. Counts are
// derived from the relations at response time; scores never leak out.
func toFeedItem(p *post.Post, author user.User, viewerID string) FeedItem {
	media := make([]MediaItem, 0, len(p.Media))
	for _, m := range p.Media {
		media = append(media, MediaItem{
			Kind:     m.Kind,
			Src:      m.Src,
			PublicID: m.PublicID,
			Width:    m.Width,
			Height:   m.Height,
			Duration: m.Duration,
		})
	}
	return FeedItem{
		ID:            p.ID,
		Caption:       p.Caption,
		Media:         media,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Author:        AuthorSummary{ID: author.ID, Username: author.Username, ProfilePic: author.ProfilePic},
		LikesCount:    len(p.Likes),
		CommentsCount: len(p.Comments),
		IsLiked:       p.LikedBy(viewerID),
	}
}
