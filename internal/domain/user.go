package domain

import "time"

// User represents a registered account and its favorites list.
type User struct {
	ID             string
	Username       string
	PasswordHash   string
	Email          string
	Birthday       *time.Time
	FavoriteMovies []string
}

// UserPatch carries the fields of a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Birthday     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.PasswordHash == nil && p.Birthday == nil
}
