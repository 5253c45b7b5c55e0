package model

import "time"

const (
	PostEventCreated   = "created"
	PostEventUpdated   = "updated"
	PostEventDeleted   = "deleted"
	PostEventLiked     = "liked"
	PostEventUnliked   = "unliked"
	PostEventCommented = "commented"
)

// PostEvent 帖子状态变更事件
type PostEvent struct {
	Type       string    `json:"type"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	ActorID    string    `json:"actor_id"`
	Content    string    `json:"content,omitempty"`
	HasMedia   bool      `json:"has_media"`
	LikeCount  int       `json:"like_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
