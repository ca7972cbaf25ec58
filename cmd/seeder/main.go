package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"foryou-service/configs"
	"foryou-service/internal/migrate"
	"foryou-service/internal/post"
	"foryou-service/internal/shared/jwt"
	"foryou-service/internal/user"
	"foryou-service/pkg/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

const (
	numUsers       = 30
	postsPerUser   = 8
	maxLikes       = 12
	maxComments    = 4
	followsPerUser = 5
)

var topics = []string{"travel", "food", "nature", "fitness", "music", "art", "coding", "coffee"}

// Seeds demo users, follows, posts, likes and comments straight into the
// store the feed reads from, then prints a bearer token for one of them.
func main() {
	gofakeit.Seed(time.Now().UnixNano())

	cfg := configs.LoadConfig()
	gdb := db.Open(cfg.DSN())
	if err := migrate.AutoMigrateAll(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := make([]user.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		u := user.User{
			ID:         uuid.NewString(),
			Username:   fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			ProfilePic: gofakeit.ImageURL(128, 128),
		}
		users = append(users, u)
	}
	if err := gdb.Create(&users).Error; err != nil {
		log.Fatalf("seed users: %v", err)
	}

	var follows []user.Follow
	for _, u := range users {
		idx := indexes(numUsers)
		gofakeit.ShuffleInts(idx)
		for _, j := range idx[:followsPerUser] {
			if users[j].ID == u.ID {
				continue
			}
			follows = append(follows, user.Follow{FollowerID: u.ID, FolloweeID: users[j].ID})
		}
	}
	if err := gdb.Create(&follows).Error; err != nil {
		log.Fatalf("seed follows: %v", err)
	}

	now := time.Now()
	var posts []post.Post
	for _, u := range users {
		for i := 0; i < postsPerUser; i++ {
			topic := gofakeit.RandomString(topics)
			p := post.Post{
				ID:       uuid.NewString(),
				AuthorID: u.ID,
				Caption:  fmt.Sprintf("%s #%s", gofakeit.Sentence(gofakeit.Number(2, 12)), topic),
				Media: []post.Media{{
					Kind:  "image",
					Src:   gofakeit.ImageURL(1080, 1080),
					Width: 1080, Height: 1080,
				}},
				CreatedAt: now.Add(-time.Duration(gofakeit.Number(0, 14*24)) * time.Hour),
			}
			idx := indexes(numUsers)
			gofakeit.ShuffleInts(idx)
			for _, j := range idx[:gofakeit.Number(0, maxLikes)] {
				if users[j].ID == u.ID {
					continue
				}
				p.Likes = append(p.Likes, post.Like{UserID: users[j].ID, CreatedAt: p.CreatedAt.Add(time.Hour)})
			}
			for k := 0; k < gofakeit.Number(0, maxComments); k++ {
				p.Comments = append(p.Comments, post.Comment{
					ID:        uuid.NewString(),
					UserID:    users[gofakeit.Number(0, numUsers-1)].ID,
					Text:      gofakeit.Sentence(gofakeit.Number(3, 10)),
					CreatedAt: p.CreatedAt.Add(time.Duration(k+1) * time.Minute),
				})
			}
			posts = append(posts, p)
		}
	}
	for i := range posts {
		if err := gdb.Create(&posts[i]).Error; err != nil {
			log.Fatalf("seed posts: %v", err)
		}
	}

	viewer := users[0]
	tok, err := jwt.Sign(viewer.ID, 24*time.Hour)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	log.Printf("seeded %d users, %d follows, %d posts", len(users), len(follows), len(posts))
	log.Printf("try: curl -H 'Authorization: Bearer %s' localhost%s/posts/foryou", tok, cfg.AppPort)
}

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
