package interactions

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/tvuforum/syncGo/logger"
	"github.com/tvuforum/syncGo/models"
	"go.uber.org/zap"
)

// State is the lifecycle of a single projection instance. Bound -> Unbound is
// terminal; a new post id gets a fresh instance.
type State int

const (
	Uninitialized State = iota
	Loading
	Bound
	Unbound
)

// appliedEventLimit bounds replay suppression to the reconnect window.
const appliedEventLimit = 512

// PostView is the materialized aggregate handed to the view layer. LikeCount
// is authoritative (server-reported), never derived from LikedUsers, which is
// only the subset of likers the client has profiles for.
type PostView struct {
	PostId         string
	CommentCount   int64
	Comments       []models.Comment
	LikeCount      int64
	LikedUsers     []models.UserRef
	ViewerHasLiked bool
}

// InteractionChange is handed to the OnChange hook after every applied event
// or optimistic mutation, so a parent list view can refresh the denormalized
// counts it holds separately.
type InteractionChange struct {
	PostId       string
	Kind         models.EventKind
	CommentCount int64
	LikeCount    int64
}

// Options parameterizes the two view adapters sharing this core. CountsOnly
// skips comment-tree and like-roster materialization and tracks counts plus
// the viewer's like state only (the detail-page adapter).
type Options struct {
	CountsOnly bool
	OnChange   func(InteractionChange)
}

// Projection is the per-post aggregate kept consistent with the realtime
// event stream. Instances are created by Synchronizer.Open and must not be
// reused after Close.
type Projection struct {
	mu sync.Mutex

	postId   string
	authorId string
	state    State

	view       PostView
	countsOnly bool
	onChange   func(InteractionChange)
	applied    *appliedSet

	toggleInFlight bool

	viewer  *viewerIdentity
	api     API
	channel Channel
}

// viewerIdentity is the locally known profile of the authenticated user, used
// to build optimistic roster entries.
type viewerIdentity struct {
	UserId   string
	Name     string
	PhotoUrl string
}

func (v *viewerIdentity) ref() models.UserRef {
	return models.UserRef{UserId: v.UserId, Name: v.Name, PhotoUrl: v.PhotoUrl}
}

func (p *Projection) seed(snapshot *models.PostSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.authorId = snapshot.AuthorId
	p.view = PostView{
		PostId:       snapshot.PostId,
		CommentCount: snapshot.CommentCount,
		LikeCount:    snapshot.LikeCount,
	}
	if !p.countsOnly {
		p.view.Comments = snapshot.Comments
		p.view.LikedUsers = snapshot.LikedUsers
	}
	if p.viewer != nil {
		p.view.ViewerHasLiked = rosterHasUser(snapshot.LikedUsers, p.viewer.UserId)
	}
}

// State returns the current lifecycle state.
func (p *Projection) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// View returns a deep copy of the aggregate so callers never observe
// in-place mutation from the event goroutine.
func (p *Projection) View() PostView {
	p.mu.Lock()
	defer p.mu.Unlock()

	view := PostView{}
	copier.CopyWithOption(&view, &p.view, copier.Option{DeepCopy: true})
	return view
}

// ViewerOwnsPost reports whether the delete-post affordance should be shown.
// Actual authorization is enforced by the server.
func (p *Projection) ViewerOwnsPost() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewer != nil && len(p.authorId) > 0 && p.viewer.UserId == p.authorId
}

// Close leaves the post room and stops accepting mutations. Results of
// requests still in flight are discarded.
func (p *Projection) Close() {
	p.mu.Lock()
	if p.state != Bound {
		p.mu.Unlock()
		return
	}
	p.state = Unbound
	p.mu.Unlock()

	if err := p.channel.LeavePostRoom(p.postId); err != nil {
		logger.Error("Failed leaving post room", zap.String("postId", p.postId), zap.Error(err))
	}
}

// handleEvent routes one inbound event into the reducers. Events are applied
// strictly in delivery order; duplicates (by event id or by comment id) and
// events for other posts are dropped.
func (p *Projection) handleEvent(event models.Event) {
	p.mu.Lock()
	if p.state != Bound {
		p.mu.Unlock()
		return
	}
	if event.Post() != p.postId {
		// transport is shared across open projections
		logger.Debug("Dropping event for other post",
			zap.String("postId", event.Post()), zap.String("bound", p.postId))
		p.mu.Unlock()
		return
	}
	if len(event.Id()) > 0 && !p.applied.Add(event.Id()) {
		logger.Debug("Dropping replayed event", zap.String("eventId", event.Id()))
		p.mu.Unlock()
		return
	}

	switch e := event.(type) {
	case models.CommentCreatedEvent:
		p.applyCommentCreated(e.Comment)
	case models.CommentDeletedEvent:
		p.applyCommentDeleted(e)
	case models.CommentUpdatedEvent:
		p.applyCommentUpdated(e.Comment)
	case models.LikeChangedEvent:
		p.applyLikeChanged(e)
	}

	p.notifyLocked(event.Kind())
	p.mu.Unlock()
}

func (p *Projection) applyCommentCreated(c models.Comment) {
	if p.countsOnly {
		p.view.CommentCount++
		return
	}
	if c.IsReply() {
		p.view.Comments = insertReply(p.view.Comments, c)
	} else {
		p.view.Comments = insertRootComment(p.view.Comments, c)
	}
}

func (p *Projection) applyCommentDeleted(e models.CommentDeletedEvent) {
	if p.countsOnly {
		if p.view.CommentCount > 0 {
			p.view.CommentCount--
		}
		return
	}
	p.view.Comments = deleteComment(p.view.Comments, e.CommentId, e.ParentCommentId)
}

func (p *Projection) applyCommentUpdated(c models.Comment) {
	if p.countsOnly {
		return
	}
	p.view.Comments = updateComment(p.view.Comments, c)
}

func (p *Projection) applyLikeChanged(e models.LikeChangedEvent) {
	if e.TargetType != models.TargetPost {
		logger.Debug("Dropping like event for unknown target type", zap.String("targetType", e.TargetType))
		return
	}

	// count is authoritative, never local arithmetic
	p.view.LikeCount = e.LikeCount

	if !p.countsOnly {
		switch e.Action {
		case models.Liked:
			user := e.LikedUser
			if len(user.UserId) == 0 {
				user.UserId = e.UserId
			}
			p.view.LikedUsers = applyLike(p.view.LikedUsers, user)
		case models.Unliked:
			p.view.LikedUsers = applyUnlike(p.view.LikedUsers, e.UserId)
		}
	}

	if p.viewer != nil && e.UserId == p.viewer.UserId {
		p.view.ViewerHasLiked = e.Action == models.Liked
	}
}
