package llm

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"fundbrief/internal/model"
)

// The prompt wording is a contract with the models: the sentinel handling and
// the strict YES/NO matching depend on it, so these assert exact phrases.

func TestSubjectPrompt(t *testing.T) {
	prompt := SubjectPrompt("Tesla reports steepest decline in quarterly revenue")

	assert.Equal(t, true, strings.Contains(prompt, `Headline: "Tesla reports steepest decline in quarterly revenue"`))
	assert.Equal(t, true, strings.Contains(prompt, `respond with just the word "NOTHING"`))
	assert.Equal(t, true, strings.Contains(prompt, "EXACTLY one short noun phrase (1–3 words)"))
}

func TestAssociationPrompt(t *testing.T) {
	prompt := AssociationPrompt("Apple Inc.", "iPhone")

	assert.Equal(t, true, strings.Contains(prompt, `Answer with only "YES" or "NO" (no punctuation).`))
	assert.Equal(t, true, strings.Contains(prompt, "Does the company Apple Inc. directly manufacture, sell, or provide iPhone?"))
}

func TestImagePrompts(t *testing.T) {
	office := OfficePrompt("Apple Inc.")
	assert.Equal(t, true, strings.Contains(office, "headquarters or office (interior or exterior) of Apple Inc."))
	assert.Equal(t, true, strings.Contains(office, "genuine photograph suitable for a news article"))

	branded := BrandedProductPrompt("iPhone", "Apple Inc.")
	assert.Equal(t, true, strings.Contains(branded, "stock photo of iPhone produced or branded by Apple Inc."))

	generic := SubjectImagePrompt("electric cars")
	assert.Equal(t, true, strings.Contains(generic, "stock photo of electric cars"))
	assert.Equal(t, true, strings.Contains(generic, "Do NOT include any company logos or references."))
}

func TestRankingPrompt(t *testing.T) {
	articles := []model.RawArticle{
		{
			Symbol:        "AAPL",
			PublishedDate: "2026-03-05",
			Title:         "Apple Beats Earnings Expectations",
			Site:          "example.com",
			Text:          "Apple reported record revenue.",
			URL:           "https://example.com/apple",
		},
		{
			Symbol:        "TSLA",
			PublishedDate: "2026-03-05",
			Title:         "Tesla Recalls Vehicles",
			Site:          "example.org",
			Text:          "Tesla issued a recall.",
			URL:           "https://example.org/tesla",
		},
	}

	prompt := RankingPrompt(articles, 5)

	assert.Equal(t, true, strings.Contains(prompt, "identifying the top 5 most impactful news stories"))
	assert.Equal(t, true, strings.Contains(prompt, "Here are 2 news stories to evaluate:"))
	assert.Equal(t, true, strings.Contains(prompt, "1. Symbol: AAPL"))
	assert.Equal(t, true, strings.Contains(prompt, "2. Symbol: TSLA"))
	assert.Equal(t, true, strings.Contains(prompt, "storyNumber: the story number from the list (1-2)"))
	assert.Equal(t, true, strings.Contains(prompt, `"topStories"`))
}
