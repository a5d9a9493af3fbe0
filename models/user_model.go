package models

// UserRef is a display-only snapshot of a user at the time an event or
// snapshot was received. It is never mutated after receipt.
type UserRef struct {
	UserId   string `json:"userId"`
	Name     string `json:"name"`
	PhotoUrl string `json:"photoUrl"`
}
