package interactions

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/tvuforum/syncGo/models"
)

// ToggleLike flips the viewer's like on the post with immediate local
// feedback. The optimistic count is a local estimate only; the next
// likeUpdate event supersedes it with the authoritative value. On network
// failure the whole aggregate snapshot taken before the mutation is restored
// in a single assignment.
//
// Invocations are serialized per projection: a second call while one is in
// flight returns ErrToggleInFlight without touching state.
func (p *Projection) ToggleLike(ctx context.Context) error {
	if p.viewer == nil {
		return ErrUnauthenticated
	}

	p.mu.Lock()
	if p.state != Bound {
		p.mu.Unlock()
		return ErrNotBound
	}
	if p.toggleInFlight {
		p.mu.Unlock()
		return ErrToggleInFlight
	}
	p.toggleInFlight = true

	snapshot := PostView{}
	copier.CopyWithOption(&snapshot, &p.view, copier.Option{DeepCopy: true})

	if p.view.ViewerHasLiked {
		if p.view.LikeCount > 0 {
			p.view.LikeCount--
		}
		if !p.countsOnly {
			p.view.LikedUsers = applyUnlike(p.view.LikedUsers, p.viewer.UserId)
		}
		p.view.ViewerHasLiked = false
	} else {
		p.view.LikeCount++
		if !p.countsOnly {
			p.view.LikedUsers = applyLike(p.view.LikedUsers, p.viewer.ref())
		}
		p.view.ViewerHasLiked = true
	}
	p.notifyLocked(models.LikeChanged)
	p.mu.Unlock()

	err := p.api.ToggleLike(ctx, models.ToggleLikeRequest{
		TargetId:   p.postId,
		TargetType: models.TargetPost,
	})

	p.mu.Lock()
	p.toggleInFlight = false
	if err != nil {
		// restore the exact pre-action snapshot unless the projection was
		// torn down while the request was in flight
		if p.state == Bound {
			p.view = snapshot
			p.notifyLocked(models.LikeChanged)
		}
		p.mu.Unlock()
		return fmt.Errorf("toggling like: %w", err)
	}
	p.mu.Unlock()
	return nil
}

// CreateComment posts a new comment or reply. There is no optimistic insert:
// the server echoes the comment back through the newComment event, and a
// local insert would double it.
func (p *Projection) CreateComment(ctx context.Context, content, parentCommentId string) (*models.Comment, error) {
	if p.viewer == nil {
		return nil, ErrUnauthenticated
	}
	if p.State() != Bound {
		return nil, ErrNotBound
	}

	comment, err := p.api.CreateComment(ctx, models.CreateCommentRequest{
		PostId:          p.postId,
		Content:         content,
		ParentCommentId: parentCommentId,
	})
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Not optimistic: state changes only when
// the deletedComment event arrives, so a failed request leaves nothing to
// roll back.
func (p *Projection) DeleteComment(ctx context.Context, commentId, parentCommentId string) error {
	if p.viewer == nil {
		return ErrUnauthenticated
	}
	if p.State() != Bound {
		return ErrNotBound
	}

	err := p.api.DeleteComment(ctx, commentId, models.DeleteCommentRequest{
		PostId:          p.postId,
		ParentCommentId: parentCommentId,
	})
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

// DeletePost deletes the post itself. Authorship is enforced by the server;
// the client only gates the affordance via ViewerOwnsPost.
func (p *Projection) DeletePost(ctx context.Context) error {
	if p.viewer == nil {
		return ErrUnauthenticated
	}
	if p.State() != Bound {
		return ErrNotBound
	}

	if err := p.api.DeletePost(ctx, p.postId); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// notifyLocked fires the change hook while p.mu is held. The callback runs on
// the caller's goroutine and must not call back into the projection.
func (p *Projection) notifyLocked(kind models.EventKind) {
	if p.onChange == nil {
		return
	}
	p.onChange(InteractionChange{
		PostId:       p.postId,
		Kind:         kind,
		CommentCount: p.view.CommentCount,
		LikeCount:    p.view.LikeCount,
	})
}
