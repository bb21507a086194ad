package Client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Quill/Client"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return Client.NewClient(Client.ClientConfig{
		BaseURL:    server.URL,
		SessionDir: t.TempDir(),
	})
}

func authSuccessHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]string{"token": "token-123", "user_id": "42"})
	})
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, authSuccessHandler(t))
	flow := Client.NewAuthFlow(client)

	ok := flow.Login(Client.LoginForm{Email: "user@domain.tld", Password: "hunter22"})
	require.True(t, ok)
	require.Equal(t, Client.LoggedIn, flow.State)
	require.Equal(t, "token-123", client.Session.Token())
	require.Equal(t, "42", client.Session.UserID())
}

func TestLoginValidationBlocksNetworkCall(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	flow := Client.NewAuthFlow(client)

	ok := flow.Login(Client.LoginForm{Email: "not-an-email", Password: "hunter22"})
	require.False(t, ok)
	require.False(t, called, "invalid form must not reach the network")
	require.Contains(t, flow.FieldErrors, "email")
	require.Equal(t, Client.LoggedOut, flow.State)
}

func TestRegistrationValidation(t *testing.T) {
	client := newTestClient(t, authSuccessHandler(t))
	flow := Client.NewAuthFlow(client)

	t.Run("weak password", func(t *testing.T) {
		ok := flow.Register(Client.RegistrationForm{
			Email:           "user@domain.tld",
			Password:        "aaaaaaaa",
			ConfirmPassword: "aaaaaaaa",
		})
		require.False(t, ok)
		require.Equal(t, "Password is too weak", flow.FieldErrors["password"])
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		ok := flow.Register(Client.RegistrationForm{
			Email:           "user@domain.tld",
			Password:        "Aaaaaa1!",
			ConfirmPassword: "different",
		})
		require.False(t, ok)
		require.Equal(t, "Passwords do not match", flow.FieldErrors["confirmPassword"])
	})

	t.Run("valid form registers", func(t *testing.T) {
		ok := flow.Register(Client.RegistrationForm{
			Email:           "user@domain.tld",
			Password:        "Aaaaaa1!",
			ConfirmPassword: "Aaaaaa1!",
		})
		require.True(t, ok)
		require.Equal(t, Client.LoggedIn, flow.State)
	})
}

func TestRememberMe(t *testing.T) {
	t.Run("checked persists the email", func(t *testing.T) {
		client := newTestClient(t, authSuccessHandler(t))
		flow := Client.NewAuthFlow(client)
		flow.Login(Client.LoginForm{Email: "user@domain.tld", Password: "hunter22", RememberMe: true})
		require.Equal(t, "user@domain.tld", client.Session.RememberedEmail())

		// The remembered email outlives the session
		flow.Logout()
		require.False(t, client.Session.LoggedIn())
		require.Equal(t, "user@domain.tld", client.Session.RememberedEmail())
	})

	t.Run("unchecked clears a previous email", func(t *testing.T) {
		client := newTestClient(t, authSuccessHandler(t))
		client.Session.RememberEmail("old@domain.tld")
		flow := Client.NewAuthFlow(client)
		flow.Login(Client.LoginForm{Email: "user@domain.tld", Password: "hunter22"})
		require.Equal(t, "", client.Session.RememberedEmail())
	})
}

func TestErrorRouting(t *testing.T) {
	t.Run("structured field wins", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Already registered", "field": "email"})
		}))
		flow := Client.NewAuthFlow(client)
		flow.Login(Client.LoginForm{Email: "user@domain.tld", Password: "hunter22"})
		require.Equal(t, "Already registered", flow.FieldErrors["email"])
		require.Equal(t, Client.LoggedOut, flow.State)
	})

	t.Run("substring heuristic fallback", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Incorrect password provided"})
		}))
		flow := Client.NewAuthFlow(client)
		flow.Login(Client.LoginForm{Email: "user@domain.tld", Password: "hunter22"})
		require.Equal(t, "Incorrect password provided", flow.FieldErrors["password"])
	})

	t.Run("unroutable message shown generically", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Service unavailable"})
		}))
		flow := Client.NewAuthFlow(client)
		flow.Login(Client.LoginForm{Email: "user@domain.tld", Password: "hunter22"})
		require.Empty(t, flow.FieldErrors)
		require.Equal(t, "Service unavailable", flow.GeneralError)
	})
}

func TestFieldForError(t *testing.T) {
	require.Equal(t, "email", Client.FieldForError("Email already exists"))
	require.Equal(t, "email", Client.FieldForError("no such email"))
	require.Equal(t, "password", Client.FieldForError("Password too short"))
	// Case-sensitive substring match: "EMAIL" matches neither "email" nor "Email"
	require.Equal(t, "", Client.FieldForError("EMAIL REJECTED"))
	require.Equal(t, "", Client.FieldForError("something broke"))
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, client.Session.Save("stale-token", "42"))
	client.Session.RememberEmail("user@domain.tld")

	invalidated := false
	client.Session.OnInvalidate(func() { invalidated = true })

	composer := Client.NewComposer(client)
	_, err := composer.FetchHistory()
	require.Error(t, err)

	require.True(t, invalidated, "401 must fire the invalidation callback")
	require.Equal(t, "", client.Session.Token())
	require.Equal(t, "", client.Session.UserID())
	require.Equal(t, "user@domain.tld", client.Session.RememberedEmail())
}

func TestSessionPersistsAcrossClients(t *testing.T) {
	dir := t.TempDir()
	first := Client.NewSession(dir)
	require.NoError(t, first.Save("token-abc", "7"))

	second := Client.NewSession(dir)
	require.Equal(t, "token-abc", second.Token())
	require.Equal(t, "7", second.UserID())
}
