package model

// PromptCategory selects which kind of illustration gets generated for a story.
type PromptCategory string

const (
	CategoryOffice PromptCategory = "office"
	CategoryThing  PromptCategory = "thing"
)

// SubjectNone is the sentinel the subject-extraction model returns when a
// headline has no concrete, tangible subject.
const SubjectNone = "NOTHING"

// Holding is one constituent company of a fund.
type Holding struct {
	Symbol string
	Name   string
	Weight float64
}

// CompanyProfile carries the display fields needed for a brief. CompanyName
// is always populated; providers fall back to the symbol itself.
type CompanyProfile struct {
	Symbol      string
	CompanyName string
	Icon        string
}

// RawArticle is a news article exactly as the content provider returned it.
type RawArticle struct {
	Symbol        string
	PublishedDate string // YYYY-MM-DD
	Title         string
	Image         string
	Site          string
	Text          string
	URL           string
}

// RankedArticle is a RawArticle the ranking model selected as a top story,
// with a rewritten short title.
type RankedArticle struct {
	RawArticle
	ImpactScore int
	Reasoning   string
}

// ImageResult holds the outcome of image generation. Base64 is empty when
// Success is false.
type ImageResult struct {
	Base64  string
	Success bool
}

// EnrichedArticle is a ranked article with its company profile, extracted
// subject, chosen image category, and generated illustration attached.
type EnrichedArticle struct {
	RankedArticle
	Profile  CompanyProfile
	Subject  string
	Category PromptCategory
	Image    ImageResult
	ImageURL string
}

// DailyBrief is the persisted, client-facing record. The JSON field names and
// the YYYY-MM-DD publish date format are load-bearing: the retention store
// prunes on PublishedDate and serves the stored document verbatim.
type DailyBrief struct {
	UUID          string  `json:"uuid"`
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"companyName"`
	Icon          string  `json:"icon,omitempty"`
	Title         string  `json:"title"`
	Text          string  `json:"text"`
	PublishedDate string  `json:"publishedDate"`
	InlineImage   *string `json:"inlineImage"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Site          string  `json:"site"`
	URL           string  `json:"url"`
}
