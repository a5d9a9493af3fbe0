package interactions

import (
	"context"
	"errors"

	"github.com/tvuforum/syncGo/models"
)

type fakeAPI struct {
	snapshot *models.PostSnapshot
	getErr   error

	toggleErr   error
	toggleGate  chan struct{} // when set, ToggleLike blocks until closed
	toggleCalls int

	created      []models.CreateCommentRequest
	createErr    error
	deleted      []string
	deletedPosts []string
}

func (f *fakeAPI) GetPost(ctx context.Context, postId string) (*models.PostSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &models.Comment{
		CommentId: "server-id",
		PostId:    req.PostId,
		ParentId:  req.ParentCommentId,
		Content:   req.Content,
	}, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, commentId string, req models.DeleteCommentRequest) error {
	f.deleted = append(f.deleted, commentId)
	return nil
}

func (f *fakeAPI) ToggleLike(ctx context.Context, req models.ToggleLikeRequest) error {
	f.toggleCalls++
	if f.toggleGate != nil {
		<-f.toggleGate
	}
	return f.toggleErr
}

func (f *fakeAPI) DeletePost(ctx context.Context, postId string) error {
	f.deletedPosts = append(f.deletedPosts, postId)
	return nil
}

// fakeProfileAPI is a fakeAPI that can also resolve author profiles.
type fakeProfileAPI struct {
	fakeAPI
	profiles map[string]models.UserRef
	fetched  []string
}

func (f *fakeProfileAPI) GetProfile(ctx context.Context, userId string) (*models.UserRef, error) {
	f.fetched = append(f.fetched, userId)
	profile, ok := f.profiles[userId]
	if !ok {
		return nil, errors.New("no such profile")
	}
	return &profile, nil
}

type fakeChannel struct {
	handlers map[string]func(models.Event)
	joins    []string
	leaves   []string
	joinErr  error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{handlers: make(map[string]func(models.Event))}
}

func (f *fakeChannel) JoinPostRoom(postId string, handler func(models.Event)) error {
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joins = append(f.joins, postId)
	f.handlers[postId] = handler
	return nil
}

func (f *fakeChannel) LeavePostRoom(postId string) error {
	f.leaves = append(f.leaves, postId)
	delete(f.handlers, postId)
	return nil
}

// emit pushes an event straight at the handler registered for the event's
// post, mimicking the socket read loop.
func (f *fakeChannel) emit(event models.Event) {
	if handler, ok := f.handlers[event.Post()]; ok {
		handler(event)
	}
}

func testSnapshot() *models.PostSnapshot {
	return &models.PostSnapshot{
		PostId:       "p1",
		AuthorId:     "u1",
		Title:        "midterm study group",
		CommentCount: 2,
		LikeCount:    3,
		LikedUsers: []models.UserRef{
			{UserId: "u2", Name: "Binh"},
		},
		Comments: []models.Comment{
			{
				CommentId:  "c2",
				PostId:     "p1",
				Content:    "second",
				CreatedOn:  200,
				NumReplies: 0,
			},
			{
				CommentId:  "c1",
				PostId:     "p1",
				Content:    "first",
				CreatedOn:  100,
				NumReplies: 1,
				Replies: []models.Comment{
					{CommentId: "r1", PostId: "p1", ParentId: "c1", Content: "a reply"},
				},
			},
		},
	}
}

func testViewer() *Viewer {
	return &Viewer{UserId: "u1", Name: "An", PhotoUrl: "https://cdn.example/a.png"}
}
