package pastemyst

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Visibility is the tri-state access level of a paste. The wire format
// expresses it as two booleans (isPrivate/isPublic); the translation lives
// entirely in the (un)marshaling layer so an invalid combination can never
// reach callers.
type Visibility int

const (
	// VisibilityUnlisted pastes are reachable by link but not listed on the
	// owner's profile. This is the default.
	VisibilityUnlisted Visibility = iota
	// VisibilityPublic pastes are shown on the owner's public profile.
	VisibilityPublic
	// VisibilityPrivate pastes are accessible only by the owner.
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	default:
		return "unlisted"
	}
}

// wireBools translates a Visibility to the wire format's boolean pair.
func (v Visibility) wireBools() (isPrivate, isPublic bool) {
	switch v {
	case VisibilityPrivate:
		return true, false
	case VisibilityPublic:
		return false, true
	default:
		return false, false
	}
}

// visibilityFromWire translates the wire booleans back. Both set at once is
// a state the API does not document; it fails decoding rather than guessing.
func visibilityFromWire(isPrivate, isPublic bool) (Visibility, error) {
	switch {
	case isPrivate && isPublic:
		return 0, fmt.Errorf("paste is both private and public")
	case isPrivate:
		return VisibilityPrivate, nil
	case isPublic:
		return VisibilityPublic, nil
	default:
		return VisibilityUnlisted, nil
	}
}

// ExpirationPolicy classifies how a paste expires.
type ExpirationPolicy int

const (
	// ExpireNever means the paste is kept indefinitely.
	ExpireNever ExpirationPolicy = iota
	// ExpireRelative means the paste expires a fixed duration after
	// creation, carried as one of the ExpiresIn* tokens.
	ExpireRelative
	// ExpireAbsolute means the paste has a deletion timestamp without a
	// relative token.
	ExpireAbsolute
)

// Pasty is a single titled code snippet inside a paste. ID is assigned by
// the server; client-constructed pasties leave it empty.
type Pasty struct {
	ID       string `json:"_id,omitempty"`
	Language string `json:"language"`
	Title    string `json:"title"`
	Code     string `json:"code"`
}

// EditType classifies a single entry in a paste's edit history.
type EditType int

const (
	EditTitle EditType = iota
	EditPastyTitle
	EditPastyLanguage
	EditPastyContent
	EditPastyAdded
	EditPastyRemoved
)

// EditRecord is one entry of a paste's edit history. It stores the old data
// from before the edit; the paste itself carries the new data. Multiple
// records can share an EditID when several fields changed at once.
type EditRecord struct {
	ID       string   `json:"_id"`
	EditID   string   `json:"editId"`
	Type     EditType `json:"editType"`
	Metadata []string `json:"metadata"`
	Edit     string   `json:"edit"`
	EditedAt int64    `json:"editedAt"`
}

// Paste is a stored paste as returned by the API.
type Paste struct {
	// ID of the paste.
	ID string
	// OwnerID is empty for anonymous pastes.
	OwnerID string
	Title   string
	// CreatedAt is when the paste was created.
	CreatedAt time.Time
	// ExpiresIn is the raw relative expiration token ("never", "1h", ...).
	ExpiresIn string
	// Expiration classifies ExpiresIn/ExpiresAt.
	Expiration ExpirationPolicy
	// ExpiresAt is the deletion time; nil when the paste never expires.
	ExpiresAt *time.Time
	// Stars is the number of stars the paste received.
	Stars      int64
	Visibility Visibility
	Tags       []string
	// Pasties holds the paste's snippets, never empty on a stored paste.
	Pasties []Pasty
	// Edits is the paste's edit history, newest data lives on the paste.
	Edits []EditRecord
}

// pasteWire is the v2 JSON shape of a stored paste.
type pasteWire struct {
	ID        string       `json:"_id"`
	OwnerID   string       `json:"ownerId"`
	Title     string       `json:"title"`
	CreatedAt int64        `json:"createdAt"`
	ExpiresIn string       `json:"expiresIn"`
	DeletesAt int64        `json:"deletesAt"`
	Stars     int64        `json:"stars"`
	IsPrivate bool         `json:"isPrivate"`
	IsPublic  bool         `json:"isPublic"`
	Tags      []string     `json:"tags"`
	Pasties   []Pasty      `json:"pasties"`
	Edits     []EditRecord `json:"edits"`
}

// UnmarshalJSON decodes the wire shape, translating the visibility boolean
// pair and deriving the expiration policy.
func (p *Paste) UnmarshalJSON(data []byte) error {
	var wire pasteWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	visibility, err := visibilityFromWire(wire.IsPrivate, wire.IsPublic)
	if err != nil {
		return fmt.Errorf("paste %s: %w", wire.ID, err)
	}

	*p = Paste{
		ID:         wire.ID,
		OwnerID:    wire.OwnerID,
		Title:      wire.Title,
		CreatedAt:  time.Unix(wire.CreatedAt, 0).UTC(),
		ExpiresIn:  wire.ExpiresIn,
		Stars:      wire.Stars,
		Visibility: visibility,
		Tags:       wire.Tags,
		Pasties:    wire.Pasties,
		Edits:      wire.Edits,
	}

	switch {
	case wire.ExpiresIn != "" && wire.ExpiresIn != ExpiresNever:
		p.Expiration = ExpireRelative
	case wire.DeletesAt != 0:
		p.Expiration = ExpireAbsolute
	default:
		p.Expiration = ExpireNever
	}
	if wire.DeletesAt != 0 {
		at := time.Unix(wire.DeletesAt, 0).UTC()
		p.ExpiresAt = &at
	}

	return nil
}

// MarshalJSON encodes the paste back into the wire shape.
func (p Paste) MarshalJSON() ([]byte, error) {
	isPrivate, isPublic := p.Visibility.wireBools()
	wire := pasteWire{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt.Unix(),
		ExpiresIn: p.ExpiresIn,
		Stars:     p.Stars,
		IsPrivate: isPrivate,
		IsPublic:  isPublic,
		Tags:      p.Tags,
		Pasties:   p.Pasties,
		Edits:     p.Edits,
	}
	if p.ExpiresAt != nil {
		wire.DeletesAt = p.ExpiresAt.Unix()
	}
	return json.Marshal(wire)
}

// CreatePasteRequest is the payload for CreatePaste. Pasties must contain
// at least one entry; everything else is optional. An empty ExpiresIn means
// the paste never expires, and a pasty with an empty Language is submitted
// as "Autodetect".
type CreatePasteRequest struct {
	Title      string
	ExpiresIn  string
	Visibility Visibility
	Tags       []string
	Pasties    []Pasty
}

// createWire is the v2 JSON shape of a create payload. Unlike the stored
// paste, tags go over the wire as a single comma-separated string.
type createWire struct {
	Title     string  `json:"title"`
	ExpiresIn string  `json:"expiresIn"`
	IsPrivate bool    `json:"isPrivate"`
	IsPublic  bool    `json:"isPublic"`
	Tags      string  `json:"tags"`
	Pasties   []Pasty `json:"pasties"`
}

func (r CreatePasteRequest) MarshalJSON() ([]byte, error) {
	isPrivate, isPublic := r.Visibility.wireBools()
	expiresIn := r.ExpiresIn
	if expiresIn == "" {
		expiresIn = ExpiresNever
	}
	return json.Marshal(createWire{
		Title:     r.Title,
		ExpiresIn: expiresIn,
		IsPrivate: isPrivate,
		IsPublic:  isPublic,
		Tags:      strings.Join(r.Tags, ","),
		Pasties:   outgoingPasties(r.Pasties),
	})
}

// EditPasteRequest is the payload for EditPaste. The API replaces the whole
// pasty list, so Pasties must carry every pasty of the paste, changed or
// not. Expiration cannot be changed through an edit.
type EditPasteRequest struct {
	Title      string
	Visibility Visibility
	Tags       []string
	Pasties    []Pasty
}

// editWire mirrors createWire without the expiresIn field.
type editWire struct {
	Title     string  `json:"title"`
	IsPrivate bool    `json:"isPrivate"`
	IsPublic  bool    `json:"isPublic"`
	Tags      string  `json:"tags"`
	Pasties   []Pasty `json:"pasties"`
}

func (r EditPasteRequest) MarshalJSON() ([]byte, error) {
	isPrivate, isPublic := r.Visibility.wireBools()
	return json.Marshal(editWire{
		Title:     r.Title,
		IsPrivate: isPrivate,
		IsPublic:  isPublic,
		Tags:      strings.Join(r.Tags, ","),
		Pasties:   outgoingPasties(r.Pasties),
	})
}

// outgoingPasties copies the pasty list for submission, defaulting an empty
// language to Autodetect. The input is never mutated.
func outgoingPasties(pasties []Pasty) []Pasty {
	out := make([]Pasty, len(pasties))
	for i, pasty := range pasties {
		if pasty.Language == "" {
			pasty.Language = "Autodetect"
		}
		out[i] = pasty
	}
	return out
}

// GetPaste fetches a paste by ID. Accessing a private paste requires the
// client to be configured with the owner's token; without it the API
// responds as if the paste did not exist.
func (c *Client) GetPaste(ctx context.Context, id string) (*Paste, error) {
	var paste Paste
	if err := c.do(ctx, http.MethodGet, "/paste/"+url.PathEscape(id), nil, &paste); err != nil {
		return nil, err
	}
	return &paste, nil
}

// GetPasteAsync is the non-blocking form of GetPaste.
func (c *Client) GetPasteAsync(ctx context.Context, id string) *Future[*Paste] {
	return newFuture(func() (*Paste, error) {
		return c.GetPaste(ctx, id)
	})
}

// CreatePaste creates a paste and returns it with server-assigned IDs
// filled in. Anonymous creation is allowed; configure a token to associate
// the paste with an account. A payload with zero pasties or an expiration
// token the API does not accept fails with ErrValidation before any request
// is made.
func (c *Client) CreatePaste(ctx context.Context, req CreatePasteRequest) (*Paste, error) {
	if len(req.Pasties) == 0 {
		return nil, &Error{Code: ErrValidation, Message: "paste must contain at least one pasty"}
	}
	if req.ExpiresIn != "" && !validExpiresIn(req.ExpiresIn) {
		return nil, &Error{Code: ErrValidation, Message: fmt.Sprintf("invalid expiration %q, accepted values are %s", req.ExpiresIn, acceptedExpiresInList())}
	}

	var paste Paste
	if err := c.do(ctx, http.MethodPost, "/paste", req, &paste); err != nil {
		return nil, err
	}
	return &paste, nil
}

// CreatePasteAsync is the non-blocking form of CreatePaste.
func (c *Client) CreatePasteAsync(ctx context.Context, req CreatePasteRequest) *Future[*Paste] {
	return newFuture(func() (*Paste, error) {
		return c.CreatePaste(ctx, req)
	})
}

// EditPaste edits a paste owned by the authenticated account and returns
// the updated paste. A client without a token fails with ErrUnauthorized
// before any request is made.
func (c *Client) EditPaste(ctx context.Context, id string, req EditPasteRequest) (*Paste, error) {
	if c.token == "" {
		return nil, &Error{Code: ErrUnauthorized, Message: "editing a paste requires an auth token"}
	}

	var paste Paste
	if err := c.do(ctx, http.MethodPatch, "/paste/"+url.PathEscape(id), req, &paste); err != nil {
		return nil, err
	}
	return &paste, nil
}

// EditPasteAsync is the non-blocking form of EditPaste.
func (c *Client) EditPasteAsync(ctx context.Context, id string, req EditPasteRequest) *Future[*Paste] {
	return newFuture(func() (*Paste, error) {
		return c.EditPaste(ctx, id, req)
	})
}

// DeletePaste deletes a paste owned by the authenticated account. Deletion
// is irreversible. A client without a token fails with ErrUnauthorized
// before any request is made.
func (c *Client) DeletePaste(ctx context.Context, id string) error {
	if c.token == "" {
		return &Error{Code: ErrUnauthorized, Message: "deleting a paste requires an auth token"}
	}
	return c.do(ctx, http.MethodDelete, "/paste/"+url.PathEscape(id), nil, nil)
}

// DeletePasteAsync is the non-blocking form of DeletePaste.
func (c *Client) DeletePasteAsync(ctx context.Context, id string) *Future[struct{}] {
	return newFuture(func() (struct{}, error) {
		return struct{}{}, c.DeletePaste(ctx, id)
	})
}
