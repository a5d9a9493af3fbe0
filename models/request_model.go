package models

type CreateCommentRequest struct {
	PostId          string `json:"postId"`
	Content         string `json:"content"`
	ParentCommentId string `json:"parentCommentId,omitempty"`
}

// DeleteCommentRequest carries the parent id context so the server can fix up
// reply counters without an extra lookup.
type DeleteCommentRequest struct {
	PostId          string `json:"postId"`
	ParentCommentId string `json:"parentCommentId,omitempty"`
}

type ToggleLikeRequest struct {
	TargetId   string `json:"targetId"`
	TargetType string `json:"targetType"`
}

type UpdatePostRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}
