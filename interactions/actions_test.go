package interactions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvuforum/syncGo/models"
)

func TestToggleLikeOptimisticThenConfirmed(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	require.NoError(t, projection.ToggleLike(context.Background()))

	view := projection.View()
	assert.Equal(t, int64(4), view.LikeCount)
	assert.True(t, view.ViewerHasLiked)
	assert.True(t, rosterHasUser(view.LikedUsers, "u1"))
	assert.Equal(t, 1, api.toggleCalls)
}

func TestToggleLikeRollsBackExactSnapshotOnFailure(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot(), toggleErr: errors.New("connection reset")}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	before := projection.View()
	err := projection.ToggleLike(context.Background())
	require.Error(t, err)

	after := projection.View()
	assert.Equal(t, before.LikeCount, after.LikeCount)
	assert.Equal(t, before.ViewerHasLiked, after.ViewerHasLiked)
	assert.Equal(t, before.LikedUsers, after.LikedUsers)
}

func TestToggleLikeShowsOptimisticStateWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{snapshot: testSnapshot(), toggleGate: gate, toggleErr: errors.New("timeout")}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	result := make(chan error, 1)
	go func() { result <- projection.ToggleLike(context.Background()) }()

	// the local estimate is visible before the network call resolves
	assert.Eventually(t, func() bool {
		view := projection.View()
		return view.LikeCount == 4 && view.ViewerHasLiked
	}, time.Second, 5*time.Millisecond)

	close(gate)
	require.Error(t, <-result)

	view := projection.View()
	assert.Equal(t, int64(3), view.LikeCount)
	assert.False(t, view.ViewerHasLiked)
	assert.False(t, rosterHasUser(view.LikedUsers, "u1"))
}

func TestToggleLikeUnliking(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.LikedUsers = append(snapshot.LikedUsers, models.UserRef{UserId: "u1", Name: "An"})
	api := &fakeAPI{snapshot: snapshot}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})
	require.True(t, projection.View().ViewerHasLiked)

	require.NoError(t, projection.ToggleLike(context.Background()))

	view := projection.View()
	assert.Equal(t, int64(2), view.LikeCount)
	assert.False(t, view.ViewerHasLiked)
	assert.False(t, rosterHasUser(view.LikedUsers, "u1"))
}

func TestToggleLikeSerializedPerPost(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{snapshot: testSnapshot(), toggleGate: gate}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	result := make(chan error, 1)
	go func() { result <- projection.ToggleLike(context.Background()) }()

	assert.Eventually(t, func() bool {
		return projection.View().ViewerHasLiked
	}, time.Second, 5*time.Millisecond)

	// second invocation while the first is in flight is rejected untouched
	err := projection.ToggleLike(context.Background())
	assert.ErrorIs(t, err, ErrToggleInFlight)

	close(gate)
	require.NoError(t, <-result)
	assert.Equal(t, 1, api.toggleCalls)

	// resolved toggles accept new invocations again
	require.NoError(t, projection.ToggleLike(context.Background()))
	assert.Equal(t, 2, api.toggleCalls)
}

func TestToggleLikeRequiresViewer(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), nil, Options{})

	err := projection.ToggleLike(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, api.toggleCalls)
	assert.Equal(t, int64(3), projection.View().LikeCount)
}

func TestToggleLikeAfterCloseIsRejected(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})
	projection.Close()

	assert.ErrorIs(t, projection.ToggleLike(context.Background()), ErrNotBound)
}

func TestToggleLikeFailureAfterCloseDiscardsResult(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{snapshot: testSnapshot(), toggleGate: gate, toggleErr: errors.New("late failure")}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	result := make(chan error, 1)
	go func() { result <- projection.ToggleLike(context.Background()) }()

	assert.Eventually(t, func() bool {
		return projection.View().ViewerHasLiked
	}, time.Second, 5*time.Millisecond)

	projection.Close()
	close(gate)
	require.Error(t, <-result)

	// no rollback into a torn-down projection
	assert.Equal(t, Unbound, projection.State())
}

func TestCreateCommentDelegatesWithoutLocalInsert(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	comment, err := projection.CreateComment(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "server-id", comment.CommentId)

	require.Len(t, api.created, 1)
	assert.Equal(t, "p1", api.created[0].PostId)

	// the server echo arrives via the event channel, not here
	assert.Len(t, projection.View().Comments, 2)
}

func TestCreateReplyCarriesParentId(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	_, err := projection.CreateComment(context.Background(), "nested", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", api.created[0].ParentCommentId)
}

func TestCreateCommentRequiresViewer(t *testing.T) {
	projection := openProjection(t, &fakeAPI{snapshot: testSnapshot()}, newFakeChannel(), nil, Options{})
	_, err := projection.CreateComment(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDeleteCommentDelegates(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	require.NoError(t, projection.DeleteComment(context.Background(), "r1", "c1"))
	assert.Equal(t, []string{"r1"}, api.deleted)

	// deletion is not optimistic
	view := projection.View()
	assert.Equal(t, 1, view.Comments[1].NumReplies)
}

func TestDeletePostDelegates(t *testing.T) {
	api := &fakeAPI{snapshot: testSnapshot()}
	projection := openProjection(t, api, newFakeChannel(), testViewer(), Options{})

	require.NoError(t, projection.DeletePost(context.Background()))
	assert.Equal(t, []string{"p1"}, api.deletedPosts)
}
