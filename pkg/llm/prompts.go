package llm

import (
	"fmt"
	"strings"

	"fundbrief/internal/model"
)

const subjectPromptTemplate = `You are given ONE news headline about a public company.
1. Identify a concrete, tangible product, service, asset or physical location that is CENTRAL to the headline.
    • Examples: "electric cars", "iPhone", "oil refinery", "theme park".
2. If the headline is about INTANGIBLE topics such as earnings, profits, guidance, lawsuits, stock price, dividends, market sentiment, leadership changes, etc. — or if no concrete product/location is mentioned — respond with just the word "NOTHING".
3. Otherwise, respond with EXACTLY one short noun phrase (1–3 words).
4. Respond with NO extra words, no quotes, no punctuation.

Headline: "%s"
Thing: `

const associationPromptTemplate = `Answer with only "YES" or "NO" (no punctuation).
Question: Does the company %s directly manufacture, sell, or provide %s?
Answer: `

const officePromptTemplate = `Create a high-quality, photo-realistic image showing the headquarters or office (interior or exterior) of %s. It should look like a genuine photograph suitable for a news article.`

const brandedProductPromptTemplate = `Create a high-quality, photo-realistic stock photo of %s produced or branded by %s. The scene should look authentic and news-worthy.`

const subjectImagePromptTemplate = `Create a high-quality, photo-realistic stock photo of %s. Do NOT include any company logos or references.`

const rankingPromptTemplate = `
You are a financial analyst tasked with identifying the top %d most impactful news stories from a collection of stock news.

IMPORTANT: Filter out promotional content, clickbait, and non-news items such as:
- "X Reasons to Buy [Stock]" articles
- "Why [Stock] is a Great Investment" pieces
- Generic stock recommendations
- Marketing content disguised as news
- Articles that are just opinions without actual news events

Focus only on REAL news events such as:
- Earnings announcements and financial results
- Merger and acquisition news
- Regulatory changes or legal developments
- Product launches or business developments
- Management changes
- Industry-specific events
- Market-moving announcements

Consider these factors when evaluating impact:
- Market sentiment impact (positive/negative)
- Potential price movement magnitude
- Industry-wide implications
- Regulatory or policy changes
- Competitive landscape changes
- Timeliness and relevance
- Source credibility

Here are %d news stories to evaluate:

%s

Please identify the TOP %d most impactful news stories from the above list, ranked by impact (1 being most impactful).

Respond with JSON only, no other text, as an object containing a "topStories" array of objects, each with:
- storyNumber: the story number from the list (1-%d)
- title: a short, high-level title (3-7 words) that captures the key point
- reasoning: brief reasoning in simple, easy-to-understand language (15-20 words max)
- impactScore: a score from 1-10 indicating relative impact level

Format:
{
    "topStories": [
        {
            "storyNumber": number,
            "title": "string",
            "reasoning": "string",
            "impactScore": number
        }
    ]
}
`

const articleTemplate = `
%d. Symbol: %s
    Title: %s
    Summary: %s
    Source: %s
    Date: %s
    URL: %s
`

// SubjectPrompt asks for the concrete noun phrase central to a headline, or
// the "NOTHING" sentinel.
func SubjectPrompt(headline string) string {
	return fmt.Sprintf(subjectPromptTemplate, headline)
}

// AssociationPrompt asks the strict YES/NO company-product question.
func AssociationPrompt(company, subject string) string {
	return fmt.Sprintf(associationPromptTemplate, company, subject)
}

// OfficePrompt requests a journalistic photo of the company's headquarters.
func OfficePrompt(company string) string {
	return fmt.Sprintf(officePromptTemplate, company)
}

// BrandedProductPrompt requests a photo of the subject branded by the company.
func BrandedProductPrompt(subject, company string) string {
	return fmt.Sprintf(brandedProductPromptTemplate, subject, company)
}

// SubjectImagePrompt requests a logo-free photo of the subject alone.
func SubjectImagePrompt(subject string) string {
	return fmt.Sprintf(subjectImagePromptTemplate, subject)
}

// RankingPrompt formats the whole candidate pool as a numbered list and asks
// for the topN most impactful stories.
func RankingPrompt(articles []model.RawArticle, topN int) string {
	var sb strings.Builder
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf(articleTemplate,
			i+1, a.Symbol, a.Title, a.Text, a.Site, a.PublishedDate, a.URL))
		sb.WriteString("\n")
	}

	return fmt.Sprintf(rankingPromptTemplate,
		topN, len(articles), sb.String(), topN, len(articles))
}
