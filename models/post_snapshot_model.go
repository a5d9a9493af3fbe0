package models

// PostSnapshot is the REST read of a single post: root comments with nested
// replies plus the like roster the server chose to materialize. LikedUsers may
// hold fewer entries than LikeCount when the server omits profile payloads.
type PostSnapshot struct {
	PostId       string    `json:"postId"`
	AuthorId     string    `json:"authorId"`
	Title        string    `json:"title"`
	CommentCount int64     `json:"commentCount"`
	LikeCount    int64     `json:"likeCount"`
	LikedUsers   []UserRef `json:"likedUsers"`
	Comments     []Comment `json:"comments"`
}
