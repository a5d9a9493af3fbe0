package interactions

import (
	"github.com/thoas/go-funk"
	"github.com/tvuforum/syncGo/logger"
	"github.com/tvuforum/syncGo/models"
	"go.uber.org/zap"
)

// Pure transitions over the two-level comment tree. Root comments stay
// newest-first because every insert happens at the head; replies stay
// append-ordered. None of these ever fail: unmatched or duplicate targets are
// dropped with a debug log.

func insertRootComment(comments []models.Comment, c models.Comment) []models.Comment {
	if containsCommentId(comments, c.CommentId) {
		logger.Debug("Dropping duplicate root comment", zap.String("commentId", c.CommentId))
		return comments
	}
	return append([]models.Comment{c}, comments...)
}

func insertReply(comments []models.Comment, reply models.Comment) []models.Comment {
	if containsCommentId(comments, reply.CommentId) {
		logger.Debug("Dropping duplicate reply", zap.String("commentId", reply.CommentId))
		return comments
	}

	for i := range comments {
		if comments[i].CommentId == reply.ParentId {
			comments[i].Replies = append(comments[i].Replies, reply)
			comments[i].NumReplies++
			return comments
		}
	}

	// parent root is not materialized locally, drop the reply
	logger.Debug("Dropping reply for unknown parent",
		zap.String("commentId", reply.CommentId),
		zap.String("parentId", reply.ParentId))
	return comments
}

func deleteComment(comments []models.Comment, commentId, parentId string) []models.Comment {
	if len(parentId) == 0 {
		return funk.Filter(comments, func(c models.Comment) bool {
			return c.CommentId != commentId
		}).([]models.Comment)
	}

	for i := range comments {
		if comments[i].CommentId != parentId {
			continue
		}
		before := len(comments[i].Replies)
		comments[i].Replies = funk.Filter(comments[i].Replies, func(r models.Comment) bool {
			return r.CommentId != commentId
		}).([]models.Comment)
		if len(comments[i].Replies) < before && comments[i].NumReplies > 0 {
			comments[i].NumReplies--
		}
		return comments
	}

	logger.Debug("Dropping delete for unknown parent",
		zap.String("commentId", commentId),
		zap.String("parentId", parentId))
	return comments
}

func updateComment(comments []models.Comment, updated models.Comment) []models.Comment {
	for i := range comments {
		if comments[i].CommentId == updated.CommentId {
			// the wire payload never carries the materialized reply tree
			updated.Replies = comments[i].Replies
			updated.NumReplies = comments[i].NumReplies
			comments[i] = updated
			return comments
		}
		for j := range comments[i].Replies {
			if comments[i].Replies[j].CommentId == updated.CommentId {
				comments[i].Replies[j] = updated
				return comments
			}
		}
	}

	logger.Debug("Dropping update for unknown comment", zap.String("commentId", updated.CommentId))
	return comments
}

// containsCommentId scans roots and replies; a comment id appears at most once
// across both.
func containsCommentId(comments []models.Comment, commentId string) bool {
	for i := range comments {
		if comments[i].CommentId == commentId {
			return true
		}
		for j := range comments[i].Replies {
			if comments[i].Replies[j].CommentId == commentId {
				return true
			}
		}
	}
	return false
}
