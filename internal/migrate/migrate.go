package migrate

import (
	"foryou-service/internal/post"
	"foryou-service/internal/user"

	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&user.Follow{},
		&post.Post{},
		&post.Media{},
		&post.Like{},
		&post.Comment{},
	)
}
