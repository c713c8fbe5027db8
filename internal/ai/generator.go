package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/hanzitutor/internal/config"
	"github.com/example/hanzitutor/pkg/models"
)

// Limits applied to generation requests before anything is sent upstream
const (
	// MaxPromptWords caps how many vocabulary words go into one prompt
	MaxPromptWords = 8
	// MaxHeadwordLen rejects degenerate "words" that would blow up the prompt
	MaxHeadwordLen = 16
	// maxCompletionTokens bounds the generated sentence length
	maxCompletionTokens = 150
)

// Client talks to an OpenAI-compatible chat-completions API
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// New creates a generation client from the configuration. The API key must
// be set; the URL defaults to the OpenAI endpoint and is overridable for
// self-hosted compatible servers (and tests).
func New(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &Client{
		apiKey:      cfg.OpenAIKey,
		apiURL:      cfg.OpenAIURL,
		model:       "gpt-4o-mini",
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat-completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat-completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeneratedSentence is the output of one generation call: the Chinese text
// (trimmed, still punctuated) and its English translation.
type GeneratedSentence struct {
	Text        string
	Translation string
	Model       string
}

// GenerateSentence asks the model for one short practice sentence using the
// given vocabulary words. At most MaxPromptWords words are included; any
// word whose headword exceeds MaxHeadwordLen characters is rejected before
// the API is called.
func (c *Client) GenerateSentence(words []models.Word) (*GeneratedSentence, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no vocabulary words to generate from")
	}

	// Enforce the word-count limit
	if len(words) > MaxPromptWords {
		words = words[:MaxPromptWords]
	}

	// Enforce the input-size limit
	var wordList []string
	for _, w := range words {
		if len([]rune(w.Chinese)) > MaxHeadwordLen {
			return nil, fmt.Errorf("vocabulary entry %q exceeds %d characters", w.Chinese, MaxHeadwordLen)
		}
		wordList = append(wordList, fmt.Sprintf("%s (%s)", w.Chinese, w.English))
	}

	prompt := fmt.Sprintf(
		"Write one short, simple Chinese sentence (at most 25 characters) for a beginner, "+
			"using as many of these vocabulary words as possible: %s. "+
			"Return only the sentence itself, no pinyin and no explanations.",
		strings.Join(wordList, ", "),
	)

	messages := []Message{
		{Role: "system", Content: "You are an assistant for Chinese learners. You write short, natural practice sentences that reuse the learner's known vocabulary."},
		{Role: "user", Content: prompt},
	}

	text, err := c.complete(messages, c.temperature)
	if err != nil {
		return nil, err
	}

	translation, err := c.Translate(text)
	if err != nil {
		// A sentence without a translation is still usable
		translation = ""
	}

	return &GeneratedSentence{
		Text:        strings.TrimSpace(text),
		Translation: translation,
		Model:       c.model,
	}, nil
}

// Translate translates the given Chinese text to English
func (c *Client) Translate(text string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following Chinese text to English. Return only the translation, no explanations:\n\n%s",
		text,
	)

	messages := []Message{
		{Role: "system", Content: "You are a Chinese-to-English translator. Keep the meaning and register of the original."},
		{Role: "user", Content: prompt},
	}

	// Lower temperature for more accurate translations
	return c.complete(messages, 0.3)
}

// complete performs one chat-completions call and returns the trimmed
// content of the first choice
func (c *Client) complete(messages []Message, temperature float64) (string, error) {
	request := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxCompletionTokens,
		Temperature: temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
