package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// OpenAIGenerator implements Generator on an OpenAI compatible chat completions endpoint.
type OpenAIGenerator struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	prompts    prompter
	eventSize  int
}

// NewOpenAIGenerator creates a generator from provider settings and game rules.
func NewOpenAIGenerator(cfg config.ProviderConfig, rules config.Rules) *OpenAIGenerator {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		prompts:   newPrompter(rules),
		eventSize: max(1, rules.Events.LightningQuestions),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete runs one chat completion and returns the first choice's content.
func (g *OpenAIGenerator) complete(ctx context.Context, prompt string, temperature float64, jsonMode bool) (string, error) {
	if g.apiKey == "" {
		return "", ErrOffline
	}

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: g.prompts.system()},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	resp, err := doWithRetry(ctx, g.httpClient, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
		return req, nil
	}, formatAPIError)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrNoContent)
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty message", ErrNoContent)
	}
	return content, nil
}

// formatAPIError maps provider failures. Throttling that mentions the quota
// becomes ErrQuotaExceeded; plain rate limiting stays retryable.
func formatAPIError(status int, body []byte) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	}

	detail := strings.ToLower(msg + " " + apiErr.Error.Code + " " + apiErr.Error.Type)
	if status == http.StatusTooManyRequests && strings.Contains(detail, "quota") {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
	}
	return fmt.Errorf("provider API error %d: %s", status, msg)
}

func (g *OpenAIGenerator) questionList(ctx context.Context, prompt string, temperature float64) ([]player.Question, error) {
	content, err := g.complete(ctx, prompt, temperature, true)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Questions []player.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("parse questions JSON: %w", err)
	}
	if len(envelope.Questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrNoContent)
	}
	return envelope.Questions, nil
}

func (g *OpenAIGenerator) singleQuestion(ctx context.Context, prompt string, temperature float64) (player.Question, error) {
	content, err := g.complete(ctx, prompt, temperature, true)
	if err != nil {
		return player.Question{}, err
	}
	var q player.Question
	if err := json.Unmarshal([]byte(content), &q); err != nil {
		return player.Question{}, fmt.Errorf("parse question JSON: %w", err)
	}
	if q.Question == "" {
		return player.Question{}, fmt.Errorf("%w: question without prompt", ErrNoContent)
	}
	return q, nil
}

// GenerateQuestions asks for a quiz batch.
func (g *OpenAIGenerator) GenerateQuestions(ctx context.Context, req Request) ([]player.Question, error) {
	return g.questionList(ctx, g.prompts.questions(req), 0.9)
}

// GenerateEventChallenge asks for quick lightning round questions.
func (g *OpenAIGenerator) GenerateEventChallenge(ctx context.Context, grade, level int) ([]player.Question, error) {
	return g.questionList(ctx, g.prompts.eventChallenge(grade, level, g.eventSize), 0.8)
}

// GenerateRiddle asks for one riddle.
func (g *OpenAIGenerator) GenerateRiddle(ctx context.Context, grade int) (player.Question, error) {
	return g.singleQuestion(ctx, g.prompts.riddle(grade), 0.9)
}

// GenerateSingleQuestion turns a child's idea into a word problem.
func (g *OpenAIGenerator) GenerateSingleQuestion(ctx context.Context, idea string, grade int) (player.Question, error) {
	return g.singleQuestion(ctx, g.prompts.single(idea, grade), 0.8)
}

// Hint asks for a nudge that does not reveal the answer.
func (g *OpenAIGenerator) Hint(ctx context.Context, question string, grade int) (string, error) {
	return g.complete(ctx, g.prompts.hint(question, grade), 0.7, false)
}

// TutorExplanation asks for a step by step explanation of a miss.
func (g *OpenAIGenerator) TutorExplanation(ctx context.Context, answered player.AnsweredQuestion, grade int) (string, error) {
	return g.complete(ctx, g.prompts.tutor(answered, grade), 0.7, false)
}

// ParentalAnalysis summarizes weak spots for the parent dashboard.
func (g *OpenAIGenerator) ParentalAnalysis(ctx context.Context, grade int, missed []player.AnsweredQuestion) (string, error) {
	return g.complete(ctx, g.prompts.analysis(grade, missed), 0.7, false)
}
