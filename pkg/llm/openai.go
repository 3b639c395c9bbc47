package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"fundbrief/internal/model"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) chat(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) RankArticles(ctx context.Context, articles []model.RawArticle, topN int) ([]RankedStory, error) {
	content, err := c.chat(ctx, RankingPrompt(articles, topN), 0.3)
	if err != nil {
		return nil, err
	}

	return parseTopStories(content, len(articles), topN)
}

func (c *OpenAIClient) ExtractSubject(ctx context.Context, headline string) (string, error) {
	return c.chat(ctx, SubjectPrompt(headline), 0)
}

func (c *OpenAIClient) CheckAssociation(ctx context.Context, company, subject string) Association {
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

func (c *OpenAIClient) PortraitImage(ctx context.Context, prompt string) model.ImageResult {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:        openai.ImageModelGPTImage1,
		Prompt:       prompt,
		Size:         openai.ImageGenerateParamsSize1024x1536,
		Quality:      openai.ImageGenerateParamsQualityLow,
		Background:   openai.ImageGenerateParamsBackgroundOpaque,
		OutputFormat: openai.ImageGenerateParamsOutputFormatPNG,
		N:            openai.Int(1),
	})

	if err != nil {
		slog.Error("image generation failed", "error", err)
		return model.ImageResult{}
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		slog.Error("image generation returned no payload")
		return model.ImageResult{}
	}

	return model.ImageResult{Base64: resp.Data[0].B64JSON, Success: true}
}
