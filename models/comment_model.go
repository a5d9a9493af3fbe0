package models

import (
	"github.com/google/uuid"
)

type Comment struct {
	CommentId  string    `json:"commentId"`
	PostId     string    `json:"postId"`
	ParentId   string    `json:"parentCommentId,omitempty"`
	Author     UserRef   `json:"author"`
	Content    string    `json:"content"`
	CreatedOn  int64     `json:"createdOn"`
	Replies    []Comment `json:"replies,omitempty"`
	NumReplies int       `json:"numReplies"`
}

func (c *Comment) Id() string {
	if len(c.CommentId) == 0 {
		c.CommentId = uuid.NewString()
	}
	return c.CommentId
}

// IsReply is true for one-level-deep children. Replies never carry replies of
// their own.
func (c *Comment) IsReply() bool {
	return len(c.ParentId) > 0
}
