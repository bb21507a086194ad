package Client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	sessionFile  = "session.json"
	rememberFile = "remembered_email.json"
)

// Session holds the bearer token and user id for the current login, persisted
// across restarts. The remembered email lives in a separate file so it
// survives logout and 401 invalidation.
type Session struct {
	mu           sync.Mutex
	token        string
	userID       string
	dir          string
	onInvalidate func()
}

type sessionState struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type rememberState struct {
	Email string `json:"email"`
}

// NewSession loads any persisted state from dir.
func NewSession(dir string) *Session {
	s := &Session{dir: dir}
	var state sessionState
	if readJSON(filepath.Join(dir, sessionFile), &state) == nil {
		s.token = state.Token
		s.userID = state.UserID
	}
	return s
}

// OnInvalidate registers the callback invoked when a 401 clears the session.
func (s *Session) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = fn
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Save stores the token and user id and persists them.
func (s *Session) Save(token, userID string) error {
	s.mu.Lock()
	s.token = token
	s.userID = userID
	s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, sessionFile), sessionState{Token: token, UserID: userID})
}

// Clear wipes the token and user id. The remembered email is untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.userID = ""
	s.mu.Unlock()
	os.Remove(filepath.Join(s.dir, sessionFile))
}

// Invalidate clears the session and fires the registered callback.
// Called by the client when any request comes back 401.
func (s *Session) Invalidate() {
	s.Clear()
	s.mu.Lock()
	fn := s.onInvalidate
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// RememberEmail persists the login email independently of the session.
func (s *Session) RememberEmail(email string) error {
	return writeJSON(filepath.Join(s.dir, rememberFile), rememberState{Email: email})
}

// ForgetEmail removes any previously remembered email.
func (s *Session) ForgetEmail() {
	os.Remove(filepath.Join(s.dir, rememberFile))
}

// RememberedEmail returns the stored email, or "".
func (s *Session) RememberedEmail() string {
	var state rememberState
	if readJSON(filepath.Join(s.dir, rememberFile), &state) != nil {
		return ""
	}
	return state.Email
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
