package llm

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Degraded responses returned in place of an error. Every feature in the
// system depends on Complete never raising, so failures surface as text.
const (
	MsgNotConfigured = "AI API keys not configured. Please check your environment."
	MsgExhausted     = "All AI models failed or reached quota. Please check your API keys."
)

// Client runs an ordered chain of completion providers and returns the
// first non-empty response.
type Client struct {
	providers []Provider
	logger    *logrus.Logger
}

// NewClient builds the default Groq-then-Gemini chain. Either key may be
// empty; an unconfigured provider is skipped, not an error.
func NewClient(groqAPIKey, geminiAPIKey string, logger *logrus.Logger) *Client {
	return &Client{
		providers: []Provider{
			NewGroqProvider(groqAPIKey, logger),
			NewGeminiProvider(geminiAPIKey, logger),
		},
		logger: logger,
	}
}

// NewClientWithProviders wires an explicit chain. Used by tests and by
// anything that needs a non-default provider order.
func NewClientWithProviders(logger *logrus.Logger, providers ...Provider) *Client {
	return &Client{providers: providers, logger: logger}
}

// Complete sends the prompt down the provider chain and always returns a
// non-empty string: a model response, or a fixed failure message.
func (c *Client) Complete(ctx context.Context, prompt, system string) string {
	configured := 0
	for _, p := range c.providers {
		if !p.Configured() {
			continue
		}
		configured++

		text, err := p.Complete(ctx, prompt, system)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"provider": p.Name(),
				"error":    err.Error(),
			}).Warn("Provider failed, falling back")
			continue
		}

		if strings.TrimSpace(text) != "" {
			c.logger.WithField("provider", p.Name()).Debug("Completion served")
			return text
		}

		c.logger.WithField("provider", p.Name()).Warn("Provider returned empty response, falling back")
	}

	if configured == 0 {
		return MsgNotConfigured
	}
	return MsgExhausted
}

// Available reports whether at least one provider has credentials.
func (c *Client) Available() bool {
	for _, p := range c.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}
