package pastemyst

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
)

// The mock API below stands in for paste.myst.rs. Fixtures mirror real v2
// response shapes so decode paths are exercised end to end.

const (
	testToken = "test-token-123"

	fixturePasteJSON = `{
		"_id": "hipfqanx",
		"ownerId": "",
		"title": "Hello World!",
		"createdAt": 1585900000,
		"expiresIn": "never",
		"deletesAt": 0,
		"stars": 4,
		"isPrivate": false,
		"isPublic": false,
		"tags": ["example", "hello"],
		"pasties": [
			{"_id": "a1b2c3d4", "language": "Markdown", "title": "readme", "code": "# hello"},
			{"_id": "e5f6a7b8", "language": "Go", "title": "main.go", "code": "package main"}
		],
		"edits": [
			{"_id": "ed1", "editId": "0", "editType": 0, "metadata": [], "edit": "Old Title", "editedAt": 1585910000}
		]
	}`

	privatePasteJSON = `{
		"_id": "secretpaste",
		"ownerId": "user1",
		"title": "secret",
		"createdAt": 1585900000,
		"expiresIn": "1d",
		"deletesAt": 1585986400,
		"stars": 0,
		"isPrivate": true,
		"isPublic": false,
		"tags": [],
		"pasties": [
			{"_id": "aaaa1111", "language": "Plain Text", "title": "note", "code": "dont tell"}
		],
		"edits": []
	}`

	// Invalid by construction: both visibility booleans set.
	conflictedPasteJSON = `{
		"_id": "badvis",
		"ownerId": "",
		"title": "bad",
		"createdAt": 1585900000,
		"expiresIn": "never",
		"deletesAt": 0,
		"stars": 0,
		"isPrivate": true,
		"isPublic": true,
		"tags": [],
		"pasties": [
			{"_id": "bbbb2222", "language": "Plain Text", "title": "", "code": "x"}
		],
		"edits": []
	}`

	fixtureUserJSON = `{
		"_id": "user1",
		"username": "ANF-Studios",
		"avatarUrl": "https://paste.myst.rs/static/avatar.png",
		"defaultLang": "Autodetect",
		"publicProfile": true,
		"supporterLength": 0,
		"contributor": true
	}`
)

type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// apiServer is an in-process stand-in for the PasteMyst v2 API, recording
// every request it serves so tests can compare what the two call forms put
// on the wire.
type apiServer struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	api := &apiServer{}

	r := httprouter.New()
	r.GET("/paste/:id", api.record(api.getPaste))
	r.POST("/paste", api.record(api.createPaste))
	r.PATCH("/paste/:id", api.record(api.editPaste))
	r.DELETE("/paste/:id", api.record(api.deletePaste))
	r.GET("/user/:username", api.record(api.getUser))
	r.GET("/user/:username/exists", api.record(api.userExists))
	r.GET("/time/expiresInToUnixTime", api.record(api.expiresIntoUnix))

	api.srv = httptest.NewServer(r)
	t.Cleanup(api.srv.Close)
	return api
}

// client returns a Client pointed at the mock, with extra options applied
// after the base URL.
func (a *apiServer) client(opts ...Option) *Client {
	return New(append([]Option{WithBaseURL(a.srv.URL)}, opts...)...)
}

func (a *apiServer) record(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		body, _ := io.ReadAll(r.Body)
		a.mu.Lock()
		a.requests = append(a.requests, recordedRequest{Method: r.Method, Path: r.URL.RequestURI(), Body: body})
		a.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		h(w, r, ps)
	}
}

func (a *apiServer) recorded() []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]recordedRequest, len(a.requests))
	copy(out, a.requests)
	return out
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	msg, _ := json.Marshal(map[string]string{"statusMessage": message})
	writeJSON(w, status, string(msg))
}

func (a *apiServer) getPaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "hipfqanx":
		writeJSON(w, http.StatusOK, fixturePasteJSON)
	case "secretpaste":
		// A private paste reads as nonexistent without the owner's token.
		if r.Header.Get("Authorization") != testToken {
			writeAPIError(w, http.StatusNotFound, "paste not found")
			return
		}
		writeJSON(w, http.StatusOK, privatePasteJSON)
	case "badvis":
		writeJSON(w, http.StatusOK, conflictedPasteJSON)
	default:
		writeAPIError(w, http.StatusNotFound, "paste not found")
	}
}

func (a *apiServer) createPaste(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Title     string  `json:"title"`
		ExpiresIn string  `json:"expiresIn"`
		IsPrivate bool    `json:"isPrivate"`
		IsPublic  bool    `json:"isPublic"`
		Tags      string  `json:"tags"`
		Pasties   []Pasty `json:"pasties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "malformed payload")
		return
	}
	if len(payload.Pasties) == 0 {
		writeAPIError(w, http.StatusBadRequest, "a paste must have at least one pasty")
		return
	}

	// Echo the payload back as a stored paste with server-assigned IDs.
	echo := map[string]any{
		"_id":       "newpaste",
		"ownerId":   "",
		"title":     payload.Title,
		"createdAt": 1700000000,
		"expiresIn": payload.ExpiresIn,
		"deletesAt": 0,
		"stars":     0,
		"isPrivate": payload.IsPrivate,
		"isPublic":  payload.IsPublic,
		"tags":      splitTags(payload.Tags),
		"edits":     []any{},
	}
	pasties := make([]map[string]any, len(payload.Pasties))
	for i, pasty := range payload.Pasties {
		pasties[i] = map[string]any{
			"_id":      "srv" + strconv.Itoa(i),
			"language": pasty.Language,
			"title":    pasty.Title,
			"code":     pasty.Code,
		}
	}
	echo["pasties"] = pasties

	body, _ := json.Marshal(echo)
	writeJSON(w, http.StatusOK, string(body))
}

func (a *apiServer) editPaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// Auth is checked before existence, so a foreign or missing token can
	// never learn whether an id exists.
	if r.Header.Get("Authorization") != testToken {
		writeAPIError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if ps.ByName("id") != "hipfqanx" {
		writeAPIError(w, http.StatusNotFound, "paste not found")
		return
	}

	var payload struct {
		Title     string  `json:"title"`
		IsPrivate bool    `json:"isPrivate"`
		IsPublic  bool    `json:"isPublic"`
		Tags      string  `json:"tags"`
		Pasties   []Pasty `json:"pasties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	echo := map[string]any{
		"_id":       "hipfqanx",
		"ownerId":   "user1",
		"title":     payload.Title,
		"createdAt": 1585900000,
		"expiresIn": "never",
		"deletesAt": 0,
		"stars":     4,
		"isPrivate": payload.IsPrivate,
		"isPublic":  payload.IsPublic,
		"tags":      splitTags(payload.Tags),
		"pasties":   payload.Pasties,
		"edits":     []any{},
	}
	body, _ := json.Marshal(echo)
	writeJSON(w, http.StatusOK, string(body))
}

func (a *apiServer) deletePaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if r.Header.Get("Authorization") != testToken {
		writeAPIError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if ps.ByName("id") != "hipfqanx" {
		writeAPIError(w, http.StatusNotFound, "paste not found")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *apiServer) getUser(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	if ps.ByName("username") != "ANF-Studios" {
		writeAPIError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, fixtureUserJSON)
}

func (a *apiServer) userExists(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	if ps.ByName("username") != "ANF-Studios" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *apiServer) expiresIntoUnix(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	createdAt, err := strconv.ParseInt(r.URL.Query().Get("createdAt"), 10, 64)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid createdAt")
		return
	}
	seconds, ok := map[string]int64{
		ExpiresOneHour:  3600,
		ExpiresTwoHours: 7200,
		ExpiresTenHours: 36000,
		ExpiresOneDay:   86400,
		ExpiresTwoDays:  172800,
		ExpiresOneWeek:  604800,
	}[r.URL.Query().Get("expiresIn")]
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid expiresIn")
		return
	}
	writeJSON(w, http.StatusOK, `{"result": `+strconv.FormatInt(createdAt+seconds, 10)+`}`)
}

func splitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	return strings.Split(tags, ",")
}
