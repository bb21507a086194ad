package Client

import (
	"strings"

	"Quill/Validation"
)

// AuthState tracks where the auth flow is.
type AuthState int

const (
	LoggedOut AuthState = iota
	Submitting
	LoggedIn
)

// LoginForm and RegistrationForm are distinct types: registration carries the
// confirmation field and strength checks, login does not.
type LoginForm struct {
	Email      string
	Password   string
	RememberMe bool
}

type RegistrationForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	RememberMe      bool
}

// AuthFlow orchestrates login and registration against the auth endpoints.
type AuthFlow struct {
	client *Client

	State        AuthState
	FieldErrors  map[string]string
	GeneralError string
}

func NewAuthFlow(client *Client) *AuthFlow {
	flow := &AuthFlow{client: client, FieldErrors: map[string]string{}}
	if client.Session.LoggedIn() {
		flow.State = LoggedIn
	}
	return flow
}

// ValidateLoginForm returns field errors; the confirmation field is not
// checked in login mode and strength scoring is skipped.
func ValidateLoginForm(form LoginForm) map[string]string {
	errors := map[string]string{}
	creds := Validation.CredentialForm{Password: form.Password}
	if msg := Validation.ValidateCredentialField("email", form.Email, creds); msg != "" {
		errors["email"] = msg
	}
	if msg := Validation.ValidateCredentialField("password", form.Password, creds); msg != "" {
		errors["password"] = msg
	}
	return errors
}

func ValidateRegistrationForm(form RegistrationForm) map[string]string {
	errors := map[string]string{}
	creds := Validation.CredentialForm{Password: form.Password, Registration: true}
	if msg := Validation.ValidateCredentialField("email", form.Email, creds); msg != "" {
		errors["email"] = msg
	}
	if msg := Validation.ValidateCredentialField("password", form.Password, creds); msg != "" {
		errors["password"] = msg
	}
	if msg := Validation.ValidateCredentialField("confirmPassword", form.ConfirmPassword, creds); msg != "" {
		errors["confirmPassword"] = msg
	}
	return errors
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Login validates the form and, only if every field passes, exchanges the
// credentials for a session token.
func (f *AuthFlow) Login(form LoginForm) bool {
	if errors := ValidateLoginForm(form); len(errors) > 0 {
		f.FieldErrors = errors
		return false
	}
	return f.submit("/api/auth/login", form.Email, form.Password, form.RememberMe)
}

// Register validates the registration form and creates the account.
func (f *AuthFlow) Register(form RegistrationForm) bool {
	if errors := ValidateRegistrationForm(form); len(errors) > 0 {
		f.FieldErrors = errors
		return false
	}
	return f.submit("/api/auth/register", form.Email, form.Password, form.RememberMe)
}

func (f *AuthFlow) submit(path, email, password string, rememberMe bool) bool {
	f.State = Submitting
	f.FieldErrors = map[string]string{}
	f.GeneralError = ""

	payload := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := f.client.postJSON(path, payload, &resp); err != nil {
		f.State = LoggedOut
		f.routeError(err)
		return false
	}

	if err := f.client.Session.Save(resp.Token, resp.UserID); err != nil {
		f.State = LoggedOut
		f.GeneralError = "Failed to persist session"
		return false
	}
	if rememberMe {
		f.client.Session.RememberEmail(email)
	} else {
		f.client.Session.ForgetEmail()
	}

	f.State = LoggedIn
	return true
}

// routeError places a server error next to the field it concerns. The server's
// structured field wins; failing that, the message text is probed for
// "email"/"Email" or "password"/"Password" (case-sensitive each), and a
// message matching neither is shown generically.
func (f *AuthFlow) routeError(err error) {
	apiErr, ok := err.(*APIError)
	if !ok {
		f.GeneralError = err.Error()
		return
	}
	if apiErr.Field != "" {
		f.FieldErrors[apiErr.Field] = apiErr.Message
		return
	}
	if field := FieldForError(apiErr.Message); field != "" {
		f.FieldErrors[field] = apiErr.Message
		return
	}
	f.GeneralError = apiErr.Message
}

// FieldForError guesses which field a free-form error message belongs to.
func FieldForError(message string) string {
	if strings.Contains(message, "email") || strings.Contains(message, "Email") {
		return "email"
	}
	if strings.Contains(message, "password") || strings.Contains(message, "Password") {
		return "password"
	}
	return ""
}

// Logout clears the session. The remembered email survives.
func (f *AuthFlow) Logout() {
	f.client.Session.Clear()
	f.State = LoggedOut
}
