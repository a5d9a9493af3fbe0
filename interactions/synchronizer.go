package interactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/tvuforum/syncGo/extensions"
	"github.com/tvuforum/syncGo/models"
)

// API is the REST collaborator surface this core consumes.
type API interface {
	GetPost(ctx context.Context, postId string) (*models.PostSnapshot, error)
	CreateComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentId string, req models.DeleteCommentRequest) error
	ToggleLike(ctx context.Context, req models.ToggleLikeRequest) error
	DeletePost(ctx context.Context, postId string) error
}

// Channel is the realtime transport surface: one room per post id, every join
// matched by exactly one leave.
type Channel interface {
	JoinPostRoom(postId string, handler func(models.Event)) error
	LeavePostRoom(postId string) error
}

// Viewer carries the authenticated user's identity claims. Nil viewer means
// read-only mode: events still apply, mutating actions fail with
// ErrUnauthenticated.
type Viewer struct {
	UserId   string
	Name     string
	PhotoUrl string
}

// Synchronizer creates live post projections over a shared channel connection
// and REST client. Construct one per application and inject it wherever post
// views are built.
type Synchronizer struct {
	api     API
	channel Channel
	viewer  *Viewer
}

func NewSynchronizer(api API, channel Channel, viewer *Viewer) *Synchronizer {
	return &Synchronizer{
		api:     api,
		channel: channel,
		viewer:  viewer,
	}
}

// Open fetches the post snapshot, seeds a projection and binds it to the
// post's event room. When the API can resolve profiles, bare comment authors
// are filled in before seeding. The caller owns the returned projection and
// must Close it on teardown.
func (s *Synchronizer) Open(ctx context.Context, postId string, opts Options) (*Projection, error) {
	if len(postId) == 0 {
		return nil, errors.New("post id is empty")
	}

	p := &Projection{
		postId:     postId,
		state:      Loading,
		countsOnly: opts.CountsOnly,
		onChange:   opts.OnChange,
		applied:    newAppliedSet(appliedEventLimit),
		api:        s.api,
		channel:    s.channel,
	}
	if s.viewer != nil {
		p.viewer = &viewerIdentity{
			UserId:   s.viewer.UserId,
			Name:     s.viewer.Name,
			PhotoUrl: s.viewer.PhotoUrl,
		}
	}

	snapshot, err := s.api.GetPost(ctx, postId)
	if err != nil {
		return nil, fmt.Errorf("fetching post snapshot: %w", err)
	}
	if !opts.CountsOnly {
		if fetcher, ok := s.api.(extensions.ProfileFetcher); ok {
			<-extensions.AttachCommentAuthorsAsync(ctx, fetcher, snapshot)
		}
	}
	p.seed(snapshot)

	if err := s.channel.JoinPostRoom(postId, p.handleEvent); err != nil {
		return nil, fmt.Errorf("joining post room: %w", err)
	}

	p.mu.Lock()
	p.state = Bound
	p.mu.Unlock()
	return p, nil
}
