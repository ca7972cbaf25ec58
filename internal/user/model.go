package user

import "time"

type User struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Username   string `gorm:"uniqueIndex;size:64" json:"username"`
	ProfilePic string `json:"profile_pic"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Follow is one edge of the follow graph: follower -> followee.
type Follow struct {
	FollowerID string `gorm:"primaryKey;size:36;index" json:"follower_id"`
	FolloweeID string `gorm:"primaryKey;size:36" json:"followee_id"`
	CreatedAt  time.Time
}
