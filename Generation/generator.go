package Generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"Quill/Config"
	"Quill/Validation"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. With no API
// key configured it falls back to a deterministic scaffold body, which keeps
// development and tests offline.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    Config.AppConfig.GenerationBaseURL,
		APIKey:     Config.AppConfig.GenerationAPIKey,
		Model:      Config.AppConfig.GenerationModel,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// BuildPrompt assembles the tone-conditioned instruction for the model.
func BuildPrompt(subject, context, tone string) string {
	tone = Validation.NormalizeTone(tone)
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s email based on the following:\n\n", toneDescriptions[tone])
	fmt.Fprintf(&b, "Subject: %s\nContext: %s\n\n", subject, context)
	fmt.Fprintf(&b, "Requirements:\n- Use a %s tone\n- Be clear and concise\n- Follow proper email structure\n\n", strings.ToLower(tone))
	fmt.Fprintf(&b, "Start with: %q\nEnd with: %q\n", toneGreetings[tone], toneClosings[tone])
	return b.String()
}

// Generate produces an email body for the given subject, context and tone.
func (c *Client) Generate(subject, context, tone string) (string, error) {
	tone = Validation.NormalizeTone(tone)
	if c.APIKey == "" {
		return fallbackBody(subject, context, tone), nil
	}

	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a professional email writing assistant."},
			{Role: "user", Content: BuildPrompt(subject, context, tone)},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error encoding generation request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error building generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling generation service: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("error decoding generation response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("generation service error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// fallbackBody builds a plain scaffold letter without calling any service.
func fallbackBody(subject, context, tone string) string {
	var b strings.Builder
	b.WriteString(toneGreetings[tone])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "I am writing to you regarding %s.\n\n", strings.TrimSpace(subject))
	b.WriteString(strings.TrimSpace(context))
	b.WriteString("\n\n")
	b.WriteString(toneClosings[tone])
	b.WriteString("\n")
	return b.String()
}
