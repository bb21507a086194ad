package Validation_test

import (
	"testing"

	"Quill/Validation"

	"github.com/stretchr/testify/require"
)

func TestCheckPasswordStrength(t *testing.T) {
	t.Run("score equals count of satisfied criteria", func(t *testing.T) {
		cases := []struct {
			password string
			score    int
		}{
			{"", 0},
			{"aaaaaaaa", 2},  // length + lowercase
			{"Aaaaaaaa", 3},  // length + upper + lower
			{"Aaaaaaa1", 4},  // length + upper + lower + digit
			{"Aaaaaa1!", 5},  // all five
			{"A1!", 3},       // upper + digit + special, too short, no lower
			{"abcABC1!", 5},
		}
		for _, tc := range cases {
			strength := Validation.CheckPasswordStrength(tc.password)
			require.Equal(t, tc.score, strength.Score, "password %q", tc.password)
			require.Len(t, strength.Feedback, 5-tc.score, "password %q", tc.password)
		}
	})

	t.Run("score is monotonic as criteria are added", func(t *testing.T) {
		progression := []string{"", "aaaaaaaa", "Aaaaaaaa", "Aaaaaaa1", "Aaaaaa1!"}
		previous := -1
		for _, password := range progression {
			score := Validation.CheckPasswordStrength(password).Score
			require.GreaterOrEqual(t, score, previous)
			previous = score
		}
	})

	t.Run("feedback lists unmet criteria in check order", func(t *testing.T) {
		strength := Validation.CheckPasswordStrength("aaaaaaaa")
		require.Equal(t, []string{
			"Include at least one uppercase letter",
			"Include at least one number",
			"Include at least one special character (!@#$%^&*)",
		}, strength.Feedback)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := Validation.CheckPasswordStrength("Aaaaaa1!")
		second := Validation.CheckPasswordStrength("Aaaaaa1!")
		require.Equal(t, first, second)
	})
}

func TestValidEmail(t *testing.T) {
	valid := []string{"user@domain.tld", "first.last@sub.example.com", "a@b.co"}
	for _, email := range valid {
		require.True(t, Validation.ValidEmail(email), email)
	}
	invalid := []string{"", "user", "user@domain", "user @domain.tld", "@domain.tld", "user@.tld"}
	for _, email := range invalid {
		require.False(t, Validation.ValidEmail(email), email)
	}
}

func TestValidateCredentialField(t *testing.T) {
	t.Run("email shape", func(t *testing.T) {
		require.Empty(t, Validation.ValidateCredentialField("email", "user@domain.tld", Validation.CredentialForm{}))
		require.NotEmpty(t, Validation.ValidateCredentialField("email", "nope", Validation.CredentialForm{}))
	})

	t.Run("password strength only checked for registration", func(t *testing.T) {
		weak := "aaaaaaaa"
		login := Validation.CredentialForm{Password: weak}
		registration := Validation.CredentialForm{Password: weak, Registration: true}
		require.Empty(t, Validation.ValidateCredentialField("password", weak, login))
		require.Equal(t, "Password is too weak", Validation.ValidateCredentialField("password", weak, registration))
	})

	t.Run("short registration password", func(t *testing.T) {
		form := Validation.CredentialForm{Password: "Ab1!", Registration: true}
		require.Equal(t, "Password must be at least 8 characters",
			Validation.ValidateCredentialField("password", "Ab1!", form))
	})

	t.Run("confirmation must match", func(t *testing.T) {
		form := Validation.CredentialForm{Password: "Aaaaaa1!", Registration: true}
		require.Empty(t, Validation.ValidateCredentialField("confirmPassword", "Aaaaaa1!", form))
		require.Equal(t, "Passwords do not match",
			Validation.ValidateCredentialField("confirmPassword", "different", form))
	})
}

func TestValidateAddressList(t *testing.T) {
	require.NoError(t, Validation.ValidateAddressList(""))
	require.NoError(t, Validation.ValidateAddressList("a@b.co"))
	require.NoError(t, Validation.ValidateAddressList("a@b.co, c@d.org"))
	require.Error(t, Validation.ValidateAddressList("a@b.co, nope"))
}

func TestNormalizeTone(t *testing.T) {
	cases := map[string]string{
		"":                "Formal",
		"formal":          "Formal",
		"FRIENDLY":        "Friendly",
		" persuasive ":    "Persuasive",
		"very apologetic": "Apologetic",
		"sarcastic":       "Formal",
	}
	for input, expected := range cases {
		require.Equal(t, expected, Validation.NormalizeTone(input), "input %q", input)
	}
}

func TestValidateContext(t *testing.T) {
	require.Error(t, Validation.ValidateContext(""))
	require.Error(t, Validation.ValidateContext("   "))
	require.NoError(t, Validation.ValidateContext("short and sweet"))

	long := make([]byte, Validation.MaxContextLength+1)
	for i := range long {
		long[i] = 'x'
	}
	require.Error(t, Validation.ValidateContext(string(long)))
	require.NoError(t, Validation.ValidateContext(string(long[:Validation.MaxContextLength])))
}

func TestAllowedAttachmentType(t *testing.T) {
	require.True(t, Validation.AllowedAttachmentType("application/pdf"))
	require.True(t, Validation.AllowedAttachmentType("text/plain; charset=utf-8"))
	require.True(t, Validation.AllowedAttachmentType("IMAGE/PNG"))
	require.False(t, Validation.AllowedAttachmentType("application/x-msdownload"))
	require.False(t, Validation.AllowedAttachmentType(""))
}
