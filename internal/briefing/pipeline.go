package briefing

import (
	"context"
	"encoding/base64"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"fundbrief/internal/model"
	"fundbrief/pkg/blob"
	"fundbrief/pkg/fund"
	"fundbrief/pkg/imageopt"
	"fundbrief/pkg/llm"
)

const (
	// DefaultTopStories caps how many stories the ranking model may select.
	DefaultTopStories = 5

	// perHoldingCap bounds articles taken from a single holding; poolCap
	// bounds the whole candidate pool so ranking cost stays flat no matter
	// how many holdings the fund has.
	perHoldingCap = 5
	poolCap       = 100

	defaultFetchDelay = 100 * time.Millisecond
)

// CategoryDraw picks the illustration category used when a headline has a
// concrete subject. Injectable so tests can force either branch.
type CategoryDraw func() model.PromptCategory

func randomDraw() model.PromptCategory {
	if rand.IntN(2) == 0 {
		return model.CategoryOffice
	}
	return model.CategoryThing
}

// Deps wires the external collaborators into the pipeline. Blobs is
// optional; everything else is required.
type Deps struct {
	Holdings  fund.HoldingsProvider
	Articles  fund.ArticleProvider
	Profiles  fund.ProfileProvider
	Text      llm.TextModel
	Images    llm.ImageModel
	Optimizer imageopt.Optimizer
	Blobs     blob.Store

	TopStories int
	FetchDelay time.Duration
	Draw       CategoryDraw
}

// Pipeline turns a fund's holdings into finalized daily briefs through the
// gather, rank, enrich, and finalize stages.
type Pipeline struct {
	holdings  fund.HoldingsProvider
	articles  fund.ArticleProvider
	profiles  fund.ProfileProvider
	text      llm.TextModel
	images    llm.ImageModel
	optimizer imageopt.Optimizer
	blobs     blob.Store

	topStories int
	fetchDelay time.Duration
	draw       CategoryDraw
}

func NewPipeline(deps Deps) *Pipeline {
	p := &Pipeline{
		holdings:   deps.Holdings,
		articles:   deps.Articles,
		profiles:   deps.Profiles,
		text:       deps.Text,
		images:     deps.Images,
		optimizer:  deps.Optimizer,
		blobs:      deps.Blobs,
		topStories: deps.TopStories,
		fetchDelay: deps.FetchDelay,
		draw:       deps.Draw,
	}

	if p.topStories <= 0 {
		p.topStories = DefaultTopStories
	}
	if p.fetchDelay <= 0 {
		p.fetchDelay = defaultFetchDelay
	}
	if p.draw == nil {
		p.draw = randomDraw
	}

	return p
}

// GatherAndRank collects recent articles across the fund's holdings and asks
// the ranking model for the most impactful ones. Every failure mode degrades
// to an empty result; a cycle with no ranking publishes nothing.
func (p *Pipeline) GatherAndRank(ctx context.Context, fundSymbol, fromDate, toDate string) []model.RankedArticle {
	holdings, err := p.holdings.Holdings(ctx, fundSymbol)
	if err != nil {
		slog.Error("error fetching holdings", "fund", fundSymbol, "error", err)
		return nil
	}
	if len(holdings) == 0 {
		slog.Warn("no holdings found", "fund", fundSymbol)
		return nil
	}

	pool := p.gather(ctx, holdings, fromDate, toDate)
	if len(pool) == 0 {
		slog.Warn("no articles found for any holding", "fund", fundSymbol, "from", fromDate, "to", toDate)
		return nil
	}

	stories, err := p.text.RankArticles(ctx, pool, p.topStories)
	if err != nil {
		slog.Error("error ranking articles", "pool_size", len(pool), "error", err)
		return nil
	}

	if len(stories) > p.topStories {
		stories = stories[:p.topStories]
	}

	ranked := make([]model.RankedArticle, 0, len(stories))
	for _, story := range stories {
		if story.StoryNumber < 1 || story.StoryNumber > len(pool) {
			slog.Error("ranking referenced a story outside the submitted pool",
				"story_number", story.StoryNumber, "pool_size", len(pool))
			return nil
		}

		article := pool[story.StoryNumber-1]
		article.Title = story.Title

		ranked = append(ranked, model.RankedArticle{
			RawArticle:  article,
			ImpactScore: story.ImpactScore,
			Reasoning:   story.Reasoning,
		})
	}

	return ranked
}

// gather walks holdings in provider order, taking a handful of articles per
// holding until the pool cap is hit. Fetches stay sequential with a fixed
// delay between them as rate-limit courtesy.
func (p *Pipeline) gather(ctx context.Context, holdings []model.Holding, fromDate, toDate string) []model.RawArticle {
	var pool []model.RawArticle

	for _, holding := range holdings {
		if len(pool) >= poolCap {
			break
		}

		articles, err := p.articles.Articles(ctx, holding.Symbol, fromDate, toDate)
		if err != nil {
			slog.Warn("error fetching articles for holding, skipping", "symbol", holding.Symbol, "error", err)
			articles = nil
		}

		if len(articles) > perHoldingCap {
			articles = articles[:perHoldingCap]
		}
		pool = append(pool, articles...)

		select {
		case <-ctx.Done():
			return pool
		case <-time.After(p.fetchDelay):
		}
	}

	return pool
}

// Enrich attaches a company profile, an extracted subject, and a generated
// illustration to each ranked article. Articles are enriched concurrently
// and are never dropped: sub-step failures degrade the article instead.
func (p *Pipeline) Enrich(ctx context.Context, ranked []model.RankedArticle) []model.EnrichedArticle {
	enriched := make([]model.EnrichedArticle, len(ranked))

	var wg sync.WaitGroup
	for i, article := range ranked {
		wg.Add(1)
		go func(i int, article model.RankedArticle) {
			defer wg.Done()
			enriched[i] = p.enrichOne(ctx, article)
		}(i, article)
	}
	wg.Wait()

	return enriched
}

func (p *Pipeline) enrichOne(ctx context.Context, article model.RankedArticle) model.EnrichedArticle {
	profile := p.profiles.Profile(ctx, article.Symbol)

	subject, err := p.text.ExtractSubject(ctx, article.Title)
	if err != nil {
		slog.Error("subject extraction failed, treating headline as abstract", "title", article.Title, "error", err)
		subject = model.SubjectNone
	}

	category := model.CategoryOffice
	if subject != model.SubjectNone {
		category = p.draw()
	}

	image := p.images.PortraitImage(ctx, p.imagePrompt(ctx, profile.CompanyName, category, subject))
	image = p.optimizer.Optimize(ctx, image)

	return model.EnrichedArticle{
		RankedArticle: article,
		Profile:       profile,
		Subject:       subject,
		Category:      category,
		Image:         image,
		ImageURL:      p.hostImage(ctx, image),
	}
}

func (p *Pipeline) imagePrompt(ctx context.Context, companyName string, category model.PromptCategory, subject string) string {
	if category == model.CategoryOffice {
		return llm.OfficePrompt(companyName)
	}

	if p.text.CheckAssociation(ctx, companyName, subject) == llm.AssociationYes {
		return llm.BrandedProductPrompt(subject, companyName)
	}
	return llm.SubjectImagePrompt(subject)
}

// hostImage uploads the optimized illustration to blob storage when a store
// is configured. Upload failures leave the brief inline-only.
func (p *Pipeline) hostImage(ctx context.Context, image model.ImageResult) string {
	if p.blobs == nil || !image.Success {
		return ""
	}

	payload, err := base64.StdEncoding.DecodeString(image.Base64)
	if err != nil {
		slog.Error("error decoding image for upload", "error", err)
		return ""
	}

	url, err := p.blobs.Upload(ctx, payload, "image/png")
	if err != nil {
		slog.Error("error uploading image to blob storage", "error", err)
		return ""
	}

	return url
}

// Finalize is a pure transform from enriched articles to client-facing
// briefs. Each brief gets a fresh identifier; the inline image is only set
// when generation succeeded.
func (p *Pipeline) Finalize(enriched []model.EnrichedArticle) []model.DailyBrief {
	briefs := make([]model.DailyBrief, 0, len(enriched))

	for _, article := range enriched {
		companyName := article.Profile.CompanyName
		if companyName == "" {
			companyName = article.Symbol
		}

		brief := model.DailyBrief{
			UUID:          uuid.NewString(),
			Symbol:        article.Symbol,
			CompanyName:   companyName,
			Icon:          article.Profile.Icon,
			Title:         article.Title,
			Text:          article.Text,
			PublishedDate: article.PublishedDate,
			ImageURL:      article.ImageURL,
			Site:          article.Site,
			URL:           article.URL,
		}

		if article.Image.Success {
			payload := article.Image.Base64
			brief.InlineImage = &payload
		}

		briefs = append(briefs, brief)
	}

	return briefs
}
