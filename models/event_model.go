package models

type EventKind string

const (
	CommentCreated EventKind = "newComment"
	CommentDeleted EventKind = "deletedComment"
	CommentUpdated EventKind = "updatedComment"
	LikeChanged    EventKind = "likeUpdate"
)

type LikeAction string

const (
	Liked   LikeAction = "liked"
	Unliked LikeAction = "unliked"
)

// Only posts are likeable through this client today.
const TargetPost = "post"

// Event is an inbound realtime event, decoded and validated once at the
// channel boundary. Post is the post id used for room routing; Id is the
// server event id when the server sends one, empty otherwise.
type Event interface {
	Kind() EventKind
	Post() string
	Id() string
}

type CommentCreatedEvent struct {
	EventId string
	Comment Comment
}

func (e CommentCreatedEvent) Kind() EventKind { return CommentCreated }
func (e CommentCreatedEvent) Post() string    { return e.Comment.PostId }
func (e CommentCreatedEvent) Id() string      { return e.EventId }

type CommentDeletedEvent struct {
	EventId         string
	PostId          string
	CommentId       string
	ParentCommentId string
}

func (e CommentDeletedEvent) Kind() EventKind { return CommentDeleted }
func (e CommentDeletedEvent) Post() string    { return e.PostId }
func (e CommentDeletedEvent) Id() string      { return e.EventId }

type CommentUpdatedEvent struct {
	EventId string
	Comment Comment
}

func (e CommentUpdatedEvent) Kind() EventKind { return CommentUpdated }
func (e CommentUpdatedEvent) Post() string    { return e.Comment.PostId }
func (e CommentUpdatedEvent) Id() string      { return e.EventId }

type LikeChangedEvent struct {
	EventId    string
	TargetId   string
	TargetType string
	LikeCount  int64
	UserId     string
	Action     LikeAction
	LikedUser  UserRef
}

func (e LikeChangedEvent) Kind() EventKind { return LikeChanged }
func (e LikeChangedEvent) Post() string    { return e.TargetId }
func (e LikeChangedEvent) Id() string      { return e.EventId }
