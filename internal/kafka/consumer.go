package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	kf "github.com/segmentio/kafka-go"
)

// FeedbackEvent is published by the feedback service whenever a user likes or
// comments. Any such event changes the interaction history the interest
// profile is mined from, so the cached profile for that user must go.
type FeedbackEvent struct {
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	Kind      string    `json:"kind"` // "like" or "comment"
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackHandler func(ctx context.Context, ev FeedbackEvent) error

func StartConsumer(ctx context.Context, bootstrap, topic, groupID string, handle FeedbackHandler) error {
	r := kf.NewReader(kf.ReaderConfig{
		Brokers:  strings.Split(bootstrap, ","),
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		MaxWait:  2 * time.Second,
	})
	defer r.Close()

	log.Printf("kafka consumer started group=%s topic=%s", groupID, topic)

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			return err
		}
		var ev FeedbackEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			log.Printf("kafka: bad payload: %v", err)
			continue
		}
		if err := handle(ctx, ev); err != nil {
			log.Printf("handle feedback event: %v", err)
		}
	}
}
