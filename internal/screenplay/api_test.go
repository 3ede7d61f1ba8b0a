package screenplay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if creds.Password != "1234" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"abc123","user":{"email":"` + creds.Email + `"}}`))
	})
	mux.HandleFunc("GET /api/playlists", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"playlists":[{"name":"Rock"},{"name":"Chill"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestInteractWithAPI_LoginThenAuthorizedCall(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()

	actor := Named("Tester")
	require.NoError(t, actor.WhoCan(CallAnAPIAt(srv.URL+"/api/")))

	require.NoError(t, actor.AttemptsTo(ctx,
		Post("/auth/login", map[string]string{"email": "test@example.com", "password": "1234"}),
		See(LastResponseStatus(), IsEqualTo(http.StatusOK)),
		See(LastResponseField("user.email"), IsEqualTo("test@example.com")),
		AuthenticateWithLastResponse("token"),
		Get("playlists"),
		See(LastResponseStatus(), IsEqualTo(http.StatusOK)),
		See(LastResponseField("playlists.#"), IsEqualTo("2")),
		See(LastResponseField("playlists.1.name"), IsEqualTo("Chill")),
	))
}

func TestInteractWithAPI_ErrorStatusIsAResponse(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()

	actor := Named("Tester")
	require.NoError(t, actor.WhoCan(CallAnAPIAt(srv.URL+"/api")))

	require.NoError(t, actor.AttemptsTo(ctx,
		Post("/auth/login", map[string]string{"email": "test@example.com", "password": "nope"}),
		See(LastResponseStatus(), IsEqualTo(http.StatusUnauthorized)),
		See(LastResponseField("message"), ContainsTheText("invalid")),
	))

	err := actor.AttemptsTo(ctx, AuthenticateWithLastResponse("token"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no token")
}

func TestInteractWithAPI_QuestionsBeforeAnyCall(t *testing.T) {
	actor := Named("Tester")
	require.NoError(t, actor.WhoCan(CallAnAPIAt("http://localhost:3000/api")))

	_, err := AsksFor(context.Background(), actor, LastResponseStatus())
	assert.ErrorContains(t, err, "has not called the API yet")
}

func TestAuthenticate_WithKnownToken(t *testing.T) {
	srv := newBackend(t)
	actor := Named("Tester")
	require.NoError(t, actor.WhoCan(CallAnAPIAt(srv.URL+"/api")))

	require.NoError(t, actor.AttemptsTo(context.Background(),
		Authenticate("abc123"),
		Get("/playlists"),
		See(LastResponseStatus(), IsEqualTo(http.StatusOK)),
	))
	assert.Error(t, actor.AttemptsTo(context.Background(), Authenticate("")))
}

func TestCallAnAPIAt_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/api", CallAnAPIAt("http://localhost:3000/api///").BaseURL())
}

func TestAPIStepsRequireTheAbility(t *testing.T) {
	err := Named("Tester").AttemptsTo(context.Background(), Get("/playlists"))
	var missing *MissingAbilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, InteractWithAPI, missing.Kind)
}
