package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Provider is one completion backend in the fallback chain. Complete may
// fail; the Client above it converts failures into degraded responses.
type Provider interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, prompt, system string) (string, error)
}

const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	groqModel       = "llama-3.3-70b-versatile"
	groqTemperature = 0.7
)

// GroqProvider talks to Groq through its OpenAI-compatible
// chat-completions endpoint.
type GroqProvider struct {
	apiKey  string
	baseURL string
	model   string
	logger  *logrus.Logger
}

func NewGroqProvider(apiKey string, logger *logrus.Logger) *GroqProvider {
	return &GroqProvider{
		apiKey:  apiKey,
		baseURL: groqBaseURL,
		model:   groqModel,
		logger:  logger,
	}
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Configured() bool { return p.apiKey != "" }

func (p *GroqProvider) Complete(ctx context.Context, prompt, system string) (string, error) {
	client := openai.NewClient(
		openaioption.WithAPIKey(p.apiKey),
		openaioption.WithBaseURL(p.baseURL),
		openaioption.WithMaxRetries(0),
	)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       p.model,
		Temperature: openai.Float(groqTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("groq completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Gemini model ladder, tried in order. Quota (429) and not-found (404)
// errors skip to the next model instead of failing the provider.
var geminiModels = []string{"gemini-1.5-flash", "gemini-pro"}

type GeminiProvider struct {
	apiKey string
	models []string
	logger *logrus.Logger
}

func NewGeminiProvider(apiKey string, logger *logrus.Logger) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		models: geminiModels,
		logger: logger,
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Configured() bool { return p.apiKey != "" }

func (p *GeminiProvider) Complete(ctx context.Context, prompt, system string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	var lastErr error
	for _, modelName := range p.models {
		model := client.GenerativeModel(modelName)
		if strings.TrimSpace(system) != "" {
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(system)},
			}
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			if isSkippable(err) {
				p.logger.WithFields(logrus.Fields{
					"model": modelName,
					"error": err.Error(),
				}).Warn("Gemini model unavailable, trying next")
				continue
			}
			return "", fmt.Errorf("gemini completion failed: %w", err)
		}

		text := candidateText(resp)
		if text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("gemini model %s returned empty response", modelName)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no gemini models configured")
	}
	return "", fmt.Errorf("all gemini models exhausted: %w", lastErr)
}

func isSkippable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "404")
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
