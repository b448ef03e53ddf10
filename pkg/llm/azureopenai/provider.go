package azureopenai

import (
	"ai-docassist-be/pkg/llm"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AzureOpenAIProvider talks to an Azure OpenAI chat-completions deployment.
// Endpoint shape: {endpoint}/openai/deployments/{deployment}/chat/completions?api-version=...
type AzureOpenAIProvider struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Client     *http.Client
}

// Ensure AzureOpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &AzureOpenAIProvider{}

func NewAzureOpenAIProvider(endpoint, apiKey, deployment string) *AzureOpenAIProvider {
	return &AzureOpenAIProvider{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		Deployment: deployment,
		APIVersion: "2024-02-15-preview",
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatCompletionRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *AzureOpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}

	deployment := p.Deployment
	if opts.Model != "" {
		deployment = opts.Model
	}

	messages := make([]chatMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	reqBody := chatCompletionRequest{
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"%s/openai/deployments/%s/chat/completions?api-version=%s",
		p.Endpoint, deployment, p.APIVersion,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.APIKey)

	res, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("azure openai error, code %d, body %s", res.StatusCode, string(bodyBytes))
	}

	var completionRes chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completionRes); err != nil {
		return "", err
	}

	if len(completionRes.Choices) == 0 {
		return "", fmt.Errorf("azure openai returned no choices")
	}

	return completionRes.Choices[0].Message.Content, nil
}

func (p *AzureOpenAIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
