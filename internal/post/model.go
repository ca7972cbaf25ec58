package post

import "time"

// Post mirrors the post document: caption text, an ordered media list and the
// likes/comments relations it was written with. This service only reads it.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AuthorID  string    `gorm:"size:36;index" json:"author_id"`
	Caption   string    `gorm:"type:text" json:"caption"`
	Media     []Media   `gorm:"foreignKey:PostID" json:"media"`
	Likes     []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Media struct {
	PostID   string  `gorm:"primaryKey;size:36" json:"post_id"`
	Position int     `gorm:"primaryKey" json:"position"`
	Kind     string  `gorm:"size:16" json:"kind"` // image or video
	Src      string  `json:"src"`
	PublicID string  `json:"public_id"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration"`
}

type Like struct {
	PostID    string `gorm:"primaryKey;size:36;index" json:"post_id"`
	UserID    string `gorm:"primaryKey;size:36;index" json:"user_id"`
	CreatedAt time.Time
}

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"size:36;index" json:"post_id"`
	UserID    string    `gorm:"size:36;index" json:"user_id"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether uid is in the post's likes set.
func (p *Post) LikedBy(uid string) bool {
	for _, l := range p.Likes {
		if l.UserID == uid {
			return true
		}
	}
	return false
}
