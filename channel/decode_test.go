package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvuforum/syncGo/models"
)

func TestDecodeNewComment(t *testing.T) {
	raw := []byte(`{
		"event": "newComment",
		"eventId": "e1",
		"data": {
			"commentId": "c1",
			"postId": "p1",
			"content": "hi",
			"createdOn": 1700000000000,
			"author": {"userId": "u1", "name": "An", "photoUrl": "https://cdn.example/a.png"}
		}
	}`)

	event, err := DecodeEvent(raw)
	require.NoError(t, err)

	created, ok := event.(models.CommentCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, models.CommentCreated, event.Kind())
	assert.Equal(t, "p1", event.Post())
	assert.Equal(t, "e1", event.Id())
	assert.Equal(t, "c1", created.Comment.CommentId)
	assert.Equal(t, "An", created.Comment.Author.Name)
}

func TestDecodeReplyComment(t *testing.T) {
	raw := []byte(`{
		"event": "newComment",
		"data": {"commentId": "r1", "postId": "p1", "parentCommentId": "c1", "content": "nested"}
	}`)

	event, err := DecodeEvent(raw)
	require.NoError(t, err)

	created := event.(models.CommentCreatedEvent)
	assert.True(t, created.Comment.IsReply())
	assert.Empty(t, event.Id())
}

func TestDecodeDeletedComment(t *testing.T) {
	raw := []byte(`{
		"event": "deletedComment",
		"eventId": "e2",
		"data": {"commentId": "c1", "postId": "p1", "parentCommentId": "c0"}
	}`)

	event, err := DecodeEvent(raw)
	require.NoError(t, err)

	deleted := event.(models.CommentDeletedEvent)
	assert.Equal(t, "c1", deleted.CommentId)
	assert.Equal(t, "c0", deleted.ParentCommentId)
	assert.Equal(t, "p1", event.Post())
}

func TestDecodeUpdatedComment(t *testing.T) {
	raw := []byte(`{
		"event": "updatedComment",
		"data": {"commentId": "c1", "postId": "p1", "content": "edited"}
	}`)

	event, err := DecodeEvent(raw)
	require.NoError(t, err)

	updated := event.(models.CommentUpdatedEvent)
	assert.Equal(t, "edited", updated.Comment.Content)
}

func TestDecodeLikeUpdate(t *testing.T) {
	raw := []byte(`{
		"event": "likeUpdate",
		"data": {
			"targetId": "p1",
			"targetType": "post",
			"likeCount": 7,
			"userId": "u2",
			"action": "liked",
			"likedUser": {"userId": "u2", "name": "Binh"}
		}
	}`)

	event, err := DecodeEvent(raw)
	require.NoError(t, err)

	like := event.(models.LikeChangedEvent)
	assert.Equal(t, int64(7), like.LikeCount)
	assert.Equal(t, models.Liked, like.Action)
	assert.Equal(t, "Binh", like.LikedUser.Name)
	assert.Equal(t, "p1", event.Post())
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"unknown event", `{"event": "typing", "data": {}}`},
		{"comment missing ids", `{"event": "newComment", "data": {"content": "x"}}`},
		{"delete missing ids", `{"event": "deletedComment", "data": {"parentCommentId": "c0"}}`},
		{"unknown like action", `{"event": "likeUpdate", "data": {"targetId": "p1", "action": "loved"}}`},
		{"like missing target", `{"event": "likeUpdate", "data": {"action": "liked"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
