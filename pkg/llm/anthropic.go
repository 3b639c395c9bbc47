package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"fundbrief/internal/model"
)

// AnthropicClient is a drop-in TextModel backend. Image generation stays on
// OpenAI regardless of the configured text provider.
type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) chat(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   1024,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return strings.TrimSpace(resp.Content[0].Text), nil
}

func (c *AnthropicClient) RankArticles(ctx context.Context, articles []model.RawArticle, topN int) ([]RankedStory, error) {
	content, err := c.chat(ctx, RankingPrompt(articles, topN), 0.3)
	if err != nil {
		return nil, err
	}

	return parseTopStories(content, len(articles), topN)
}

func (c *AnthropicClient) ExtractSubject(ctx context.Context, headline string) (string, error) {
	return c.chat(ctx, SubjectPrompt(headline), 0)
}

func (c *AnthropicClient) CheckAssociation(ctx context.Context, company, subject string) Association {
	content, err := c.chat(ctx, AssociationPrompt(company, subject), 0)
	if err != nil {
		slog.Error("association check failed", "company", company, "subject", subject, "error", err)
		return AssociationUnavailable
	}

	if strings.EqualFold(content, "YES") {
		return AssociationYes
	}
	return AssociationNo
}
