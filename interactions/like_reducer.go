package interactions

import (
	"github.com/thoas/go-funk"
	"github.com/tvuforum/syncGo/models"
)

// The like roster is keyed strictly by user id and the like count is always
// taken from the server, so these commute under arbitrary network
// interleaving.

func applyLike(roster []models.UserRef, user models.UserRef) []models.UserRef {
	if rosterHasUser(roster, user.UserId) {
		return roster
	}
	return append(roster, user)
}

func applyUnlike(roster []models.UserRef, userId string) []models.UserRef {
	return funk.Filter(roster, func(u models.UserRef) bool {
		return u.UserId != userId
	}).([]models.UserRef)
}

func rosterHasUser(roster []models.UserRef, userId string) bool {
	for i := range roster {
		if roster[i].UserId == userId {
			return true
		}
	}
	return false
}
