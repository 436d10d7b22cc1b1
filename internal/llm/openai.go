package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portagees/backend/internal/model"
)

type openAIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIProvider creates a Provider backed by an OpenAI-compatible
// chat-completions API at baseURL.
func NewOpenAIProvider(baseURL, apiKey, modelName string) Provider {
	return &openAIProvider{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   modelName,
	}
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chatCompletion performs one POST /v1/chat/completions round trip and
// returns the first choice's content.
func (p *openAIProvider) chatCompletion(ctx context.Context, messages []Message, temperature float64) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("api error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("api returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *openAIProvider) Complete(ctx context.Context, message string, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: tutorSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	return p.chatCompletion(ctx, messages, 0.7)
}

func (p *openAIProvider) GenerateQuestions(ctx context.Context, topic string, difficulty model.Difficulty, count int, questionType model.QuestionType) ([]RawQuestion, error) {
	prompt := questionBatchPrompt(topic, difficulty, count, questionType)
	messages := []Message{
		{Role: "system", Content: questionSystemPrompt},
		{Role: "user", Content: prompt},
	}

	content, err := p.chatCompletion(ctx, messages, 0.7)
	if err != nil {
		return nil, err
	}

	items, parseErr := parseQuestionArray(content)
	if parseErr == nil {
		return items, nil
	}

	// The model sometimes wraps JSON in prose. One retry with a stricter
	// prompt before giving up.
	content, err = p.chatCompletion(ctx, []Message{
		{Role: "system", Content: questionSystemPrompt},
		{Role: "user", Content: strictRetryPrompt(topic, count, questionType)},
	}, 0.2)
	if err != nil {
		return nil, err
	}
	items, parseErr = parseQuestionArray(content)
	if parseErr != nil {
		return nil, fmt.Errorf("could not parse question output: %w", parseErr)
	}
	return items, nil
}

// parseQuestionArray extracts a JSON array of question objects from model
// output, tolerating markdown code fences and surrounding prose.
func parseQuestionArray(content string) ([]RawQuestion, error) {
	text := stripCodeFences(content)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		// A single object is also acceptable; wrap it.
		start = strings.Index(text, "{")
		end = strings.LastIndex(text, "}")
		if start == -1 || end == -1 || end < start {
			return nil, fmt.Errorf("no JSON array or object in output")
		}
		text = "[" + text[start:end+1] + "]"
	} else {
		text = text[start : end+1]
	}

	var items []RawQuestion
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
