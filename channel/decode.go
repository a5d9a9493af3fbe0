package channel

import (
	"encoding/json"
	"fmt"

	"github.com/tvuforum/syncGo/models"
)

// frame is the wire envelope for every message on the socket, both directions.
type frame struct {
	Event   string          `json:"event"`
	EventId string          `json:"eventId,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type roomPayload struct {
	PostId string `json:"postId"`
}

type commentDeletedPayload struct {
	CommentId       string `json:"commentId"`
	PostId          string `json:"postId"`
	ParentCommentId string `json:"parentCommentId,omitempty"`
}

type likeUpdatePayload struct {
	TargetId   string         `json:"targetId"`
	TargetType string         `json:"targetType"`
	LikeCount  int64          `json:"likeCount"`
	UserId     string         `json:"userId"`
	Action     string         `json:"action"`
	LikedUser  models.UserRef `json:"likedUser"`
}

// DecodeEvent turns a raw socket message into a typed event. Payloads are
// validated here once so the reducers downstream never see loosely shaped
// input.
func DecodeEvent(raw []byte) (models.Event, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding event frame: %w", err)
	}

	switch models.EventKind(f.Event) {
	case models.CommentCreated:
		comment, err := decodeComment(f.Data)
		if err != nil {
			return nil, err
		}
		return models.CommentCreatedEvent{EventId: f.EventId, Comment: comment}, nil

	case models.CommentUpdated:
		comment, err := decodeComment(f.Data)
		if err != nil {
			return nil, err
		}
		return models.CommentUpdatedEvent{EventId: f.EventId, Comment: comment}, nil

	case models.CommentDeleted:
		var payload commentDeletedPayload
		if err := json.Unmarshal(f.Data, &payload); err != nil {
			return nil, fmt.Errorf("decoding deletedComment payload: %w", err)
		}
		if len(payload.CommentId) == 0 || len(payload.PostId) == 0 {
			return nil, fmt.Errorf("deletedComment payload missing ids")
		}
		return models.CommentDeletedEvent{
			EventId:         f.EventId,
			PostId:          payload.PostId,
			CommentId:       payload.CommentId,
			ParentCommentId: payload.ParentCommentId,
		}, nil

	case models.LikeChanged:
		var payload likeUpdatePayload
		if err := json.Unmarshal(f.Data, &payload); err != nil {
			return nil, fmt.Errorf("decoding likeUpdate payload: %w", err)
		}
		action := models.LikeAction(payload.Action)
		if action != models.Liked && action != models.Unliked {
			return nil, fmt.Errorf("unknown like action %q", payload.Action)
		}
		if len(payload.TargetId) == 0 {
			return nil, fmt.Errorf("likeUpdate payload missing target id")
		}
		return models.LikeChangedEvent{
			EventId:    f.EventId,
			TargetId:   payload.TargetId,
			TargetType: payload.TargetType,
			LikeCount:  payload.LikeCount,
			UserId:     payload.UserId,
			Action:     action,
			LikedUser:  payload.LikedUser,
		}, nil
	}

	return nil, fmt.Errorf("unknown event %q", f.Event)
}

func decodeComment(data json.RawMessage) (models.Comment, error) {
	var comment models.Comment
	if err := json.Unmarshal(data, &comment); err != nil {
		return comment, fmt.Errorf("decoding comment payload: %w", err)
	}
	if len(comment.CommentId) == 0 || len(comment.PostId) == 0 {
		return comment, fmt.Errorf("comment payload missing ids")
	}
	return comment, nil
}
