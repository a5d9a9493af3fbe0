package extensions

import (
	"context"

	"github.com/thoas/go-funk"
	"github.com/tvuforum/syncGo/logger"
	"github.com/tvuforum/syncGo/models"
	"go.uber.org/zap"
)

type ProfileFetcher interface {
	GetProfile(ctx context.Context, userId string) (*models.UserRef, error)
}

// AttachCommentAuthorsAsync fills in display profiles for snapshot comments
// that arrived with a bare author id. Missing profiles are left bare; the
// snapshot stays usable either way.
func AttachCommentAuthorsAsync(ctx context.Context, fetcher ProfileFetcher, snapshot *models.PostSnapshot) chan bool {
	done := make(chan bool)

	go func() {
		userIds := bareAuthorIds(snapshot.Comments)
		if len(userIds) == 0 {
			done <- true
			return
		}

		profiles := make(map[string]models.UserRef)
		for _, userId := range userIds {
			profile, err := fetcher.GetProfile(ctx, userId)
			if err != nil {
				logger.Error("Failed getting author profile", zap.String("userId", userId), zap.Error(err))
				continue
			}
			profiles[userId] = *profile
		}

		for i := range snapshot.Comments {
			fillAuthor(&snapshot.Comments[i], profiles)
			for j := range snapshot.Comments[i].Replies {
				fillAuthor(&snapshot.Comments[i].Replies[j], profiles)
			}
		}
		done <- true
	}()

	return done
}

func bareAuthorIds(comments []models.Comment) []string {
	userIds := []string{}
	for i := range comments {
		if isBareAuthor(comments[i].Author) {
			userIds = append(userIds, comments[i].Author.UserId)
		}
		for j := range comments[i].Replies {
			if isBareAuthor(comments[i].Replies[j].Author) {
				userIds = append(userIds, comments[i].Replies[j].Author.UserId)
			}
		}
	}
	return funk.UniqString(userIds)
}

func isBareAuthor(author models.UserRef) bool {
	return len(author.UserId) > 0 && len(author.Name) == 0
}

func fillAuthor(comment *models.Comment, profiles map[string]models.UserRef) {
	if profile, ok := profiles[comment.Author.UserId]; ok && isBareAuthor(comment.Author) {
		comment.Author = profile
	}
}
