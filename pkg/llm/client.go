package llm

import (
	"context"

	"fundbrief/internal/model"
)

// RankedStory is one entry of the ranking model's response. StoryNumber is
// the 1-based position of the source article in the submitted list.
type RankedStory struct {
	StoryNumber int    `json:"storyNumber"`
	Title       string `json:"title"`
	Reasoning   string `json:"reasoning"`
	ImpactScore int    `json:"impactScore"`
}

// Association is the outcome of the company/product association question.
// Unavailable means the model call failed; callers that only care about the
// branded/unbranded split treat it the same as No.
type Association int

const (
	AssociationUnavailable Association = iota
	AssociationNo
	AssociationYes
)

// TextModel covers the language-model calls of the briefing pipeline.
type TextModel interface {
	RankArticles(ctx context.Context, articles []model.RawArticle, topN int) ([]RankedStory, error)
	ExtractSubject(ctx context.Context, headline string) (string, error)
	CheckAssociation(ctx context.Context, company, subject string) Association
}

// ImageModel produces a single portrait illustration for a prompt. It never
// returns an error: any failure yields a result with Success=false.
type ImageModel interface {
	PortraitImage(ctx context.Context, prompt string) model.ImageResult
}
