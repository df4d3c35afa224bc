package pastemyst

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// The relative expiration tokens the PasteMyst API accepts. In this fixed
// set "1m" means one month; it is unrelated to the minute-capable grammar
// of the expires package.
const (
	ExpiresNever    = "never"
	ExpiresOneHour  = "1h"
	ExpiresTwoHours = "2h"
	ExpiresTenHours = "10h"
	ExpiresOneDay   = "1d"
	ExpiresTwoDays  = "2d"
	ExpiresOneWeek  = "1w"
	ExpiresOneMonth = "1m"
	ExpiresOneYear  = "1y"
)

var acceptedExpiresIn = map[string]struct{}{
	ExpiresNever:    {},
	ExpiresOneHour:  {},
	ExpiresTwoHours: {},
	ExpiresTenHours: {},
	ExpiresOneDay:   {},
	ExpiresTwoDays:  {},
	ExpiresOneWeek:  {},
	ExpiresOneMonth: {},
	ExpiresOneYear:  {},
}

// validExpiresIn reports whether the API accepts the token.
func validExpiresIn(token string) bool {
	_, ok := acceptedExpiresIn[token]
	return ok
}

func acceptedExpiresInList() string {
	tokens := make([]string, 0, len(acceptedExpiresIn))
	for token := range acceptedExpiresIn {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ", ")
}

// ExpiresIntoUnix asks the API when a paste created at createdAt with the
// given relative expiration token will be deleted. expiresIn must be one of
// the ExpiresIn* constants. For a local, network-free equivalent see the
// expires package.
func (c *Client) ExpiresIntoUnix(ctx context.Context, createdAt time.Time, expiresIn string) (time.Time, error) {
	if !validExpiresIn(expiresIn) {
		return time.Time{}, &Error{Code: ErrValidation, Message: fmt.Sprintf("invalid expiration %q, accepted values are %s", expiresIn, acceptedExpiresInList())}
	}

	query := url.Values{}
	query.Set("createdAt", fmt.Sprintf("%d", createdAt.Unix()))
	query.Set("expiresIn", expiresIn)

	var out struct {
		Result int64 `json:"result"`
	}
	if err := c.do(ctx, http.MethodGet, "/time/expiresInToUnixTime?"+query.Encode(), nil, &out); err != nil {
		return time.Time{}, err
	}
	return time.Unix(out.Result, 0).UTC(), nil
}

// ExpiresIntoUnixAsync is the non-blocking form of ExpiresIntoUnix.
func (c *Client) ExpiresIntoUnixAsync(ctx context.Context, createdAt time.Time, expiresIn string) *Future[time.Time] {
	return newFuture(func() (time.Time, error) {
		return c.ExpiresIntoUnix(ctx, createdAt, expiresIn)
	})
}
