package pastemyst

import (
	"context"
	"net/http"
	"net/url"
)

// User is the public profile of a PasteMyst account. Users are read-only
// through this API; there is no update operation. Supporter and contributor
// status are independent capabilities, not a hierarchy.
type User struct {
	// ID of the user.
	ID       string `json:"_id"`
	Username string `json:"username"`
	// AvatarURL points at the avatar image.
	AvatarURL string `json:"avatarUrl"`
	// DefaultLang is the user's default pasty language.
	DefaultLang string `json:"defaultLang"`
	// PublicProfile reports whether the profile and its public pastes are
	// visible to others.
	PublicProfile bool `json:"publicProfile"`
	// SupporterLength is how long the user has been a supporter, 0 if not
	// a supporter.
	SupporterLength uint32 `json:"supporterLength"`
	// Contributor reports whether the user has contributed to PasteMyst.
	Contributor bool `json:"contributor"`
}

// GetUser fetches a user's public profile by username.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserAsync is the non-blocking form of GetUser.
func (c *Client) GetUserAsync(ctx context.Context, username string) *Future[*User] {
	return newFuture(func() (*User, error) {
		return c.GetUser(ctx, username)
	})
}

// UserExists reports whether a user with the given username exists.
// A user that does not exist is a normal false result, never an error.
func (c *Client) UserExists(ctx context.Context, username string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(username)+"/exists", nil, nil)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// UserExistsAsync is the non-blocking form of UserExists.
func (c *Client) UserExistsAsync(ctx context.Context, username string) *Future[bool] {
	return newFuture(func() (bool, error) {
		return c.UserExists(ctx, username)
	})
}
