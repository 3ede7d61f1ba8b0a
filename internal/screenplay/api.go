package screenplay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// APIResponse is the last response an actor received from the backend
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// Get reads a gjson path from the JSON body, e.g. "token" or "user.id"
func (r APIResponse) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// InteractWithAPIAbility calls the Stickify REST backend. It remembers the
// bearer token and the last response for later questions.
type InteractWithAPIAbility struct {
	baseURL string
	client  *http.Client

	mu      sync.Mutex
	headers map[string]string
	last    *APIResponse
}

// CallAnAPIAt grants access to the backend at baseURL
func CallAnAPIAt(baseURL string) *InteractWithAPIAbility {
	return &InteractWithAPIAbility{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: make(map[string]string),
	}
}

func (a *InteractWithAPIAbility) Kind() AbilityKind { return InteractWithAPI }

func (a *InteractWithAPIAbility) Forget() error {
	a.client.CloseIdleConnections()
	return nil
}

func (a *InteractWithAPIAbility) BaseURL() string { return a.baseURL }

// SetAuth sends token as a bearer credential on every later request
func (a *InteractWithAPIAbility) SetAuth(token string) {
	if token == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.headers["Authorization"] = "Bearer " + token
}

// LastResponse returns the most recent response, or nil before any call
func (a *InteractWithAPIAbility) LastResponse() *APIResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Send performs one JSON request. Non-2xx statuses are responses, not errors.
func (a *InteractWithAPIAbility) Send(ctx context.Context, method, path string, body any) (*APIResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	a.mu.Lock()
	for k, v := range a.headers {
		req.Header.Set(k, v)
	}
	a.mu.Unlock()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read body: %w", method, path, err)
	}

	out := &APIResponse{StatusCode: resp.StatusCode, Body: data}
	a.mu.Lock()
	a.last = out
	a.mu.Unlock()
	return out, nil
}

var calling = []AbilityKind{InteractWithAPI}

type apiCall struct {
	method string
	path   string
	body   any
}

// Post sends body as JSON to path
func Post(path string, body any) Action {
	return apiCall{method: http.MethodPost, path: path, body: body}
}

// Get requests path
func Get(path string) Action {
	return apiCall{method: http.MethodGet, path: path}
}

// Put sends body as JSON to path
func Put(path string, body any) Action {
	return apiCall{method: http.MethodPut, path: path, body: body}
}

// Delete requests deletion of path
func Delete(path string) Action {
	return apiCall{method: http.MethodDelete, path: path}
}

func (c apiCall) Description() string              { return fmt.Sprintf("Send %s %s", c.method, c.path) }
func (c apiCall) RequiredAbilities() []AbilityKind { return calling }

func (c apiCall) PerformAs(ctx context.Context, actor Abilities) error {
	api, err := AbilityOf[*InteractWithAPIAbility](actor, InteractWithAPI)
	if err != nil {
		return err
	}
	_, err = api.Send(ctx, c.method, c.path, c.body)
	return err
}

type bearer struct {
	token string
}

// Authenticate sends token as the bearer credential on later API calls
func Authenticate(token string) Action {
	return bearer{token: token}
}

func (b bearer) Description() string              { return "Authenticate with a bearer token" }
func (b bearer) RequiredAbilities() []AbilityKind { return calling }

func (b bearer) PerformAs(ctx context.Context, actor Abilities) error {
	api, err := AbilityOf[*InteractWithAPIAbility](actor, InteractWithAPI)
	if err != nil {
		return err
	}
	if b.token == "" {
		return fmt.Errorf("empty bearer token")
	}
	api.SetAuth(b.token)
	return nil
}

type authenticate struct {
	path string
}

// AuthenticateWithLastResponse uses the token at path in the last response
// body (e.g. "token" or "user.token") as the bearer credential
func AuthenticateWithLastResponse(path string) Action {
	return authenticate{path: path}
}

func (a authenticate) Description() string {
	return fmt.Sprintf("Authenticate with the %s of the last response", a.path)
}

func (a authenticate) RequiredAbilities() []AbilityKind { return calling }

func (a authenticate) PerformAs(ctx context.Context, actor Abilities) error {
	api, err := AbilityOf[*InteractWithAPIAbility](actor, InteractWithAPI)
	if err != nil {
		return err
	}
	last := api.LastResponse()
	if last == nil {
		return fmt.Errorf("no response to read %s from", a.path)
	}
	token := last.Get(a.path)
	if !token.Exists() || token.String() == "" {
		return fmt.Errorf("last response (status %d) has no %s", last.StatusCode, a.path)
	}
	api.SetAuth(token.String())
	return nil
}

// LastResponseStatus answers the HTTP status of the last API response
func LastResponseStatus() Question[int] {
	return QuestionFunc[int]{
		Desc:     "the status of the last response",
		Requires: calling,
		Answer: func(ctx context.Context, actor Abilities) (int, error) {
			last, err := lastResponse(actor)
			if err != nil {
				return 0, err
			}
			return last.StatusCode, nil
		},
	}
}

// LastResponseField answers the field at a gjson path of the last response
// body, as a string. A missing field answers "".
func LastResponseField(path string) Question[string] {
	return QuestionFunc[string]{
		Desc:     fmt.Sprintf("the %s of the last response", path),
		Requires: calling,
		Answer: func(ctx context.Context, actor Abilities) (string, error) {
			last, err := lastResponse(actor)
			if err != nil {
				return "", err
			}
			return last.Get(path).String(), nil
		},
	}
}

func lastResponse(actor Abilities) (*APIResponse, error) {
	api, err := AbilityOf[*InteractWithAPIAbility](actor, InteractWithAPI)
	if err != nil {
		return nil, err
	}
	last := api.LastResponse()
	if last == nil {
		return nil, fmt.Errorf("%s has not called the API yet", actor.Name())
	}
	return last, nil
}
