package fund

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"fundbrief/internal/model"
)

// FinnhubClient is an alternative article and profile provider. Finnhub has
// no free ETF-holdings endpoint, so it does not implement HoldingsProvider.
type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

func (c *FinnhubClient) Articles(ctx context.Context, symbol, fromDate, toDate string) ([]model.RawArticle, error) {
	res, _, err := c.client.CompanyNews(ctx).Symbol(symbol).From(fromDate).To(toDate).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}

	articles := make([]model.RawArticle, 0, len(res))
	for _, news := range res {
		a := model.RawArticle{Symbol: symbol}

		if news.Datetime != nil {
			a.PublishedDate = time.Unix(*news.Datetime, 0).UTC().Format("2006-01-02")
		}
		if news.Headline != nil {
			a.Title = *news.Headline
		}
		if news.Image != nil {
			a.Image = *news.Image
		}
		if news.Source != nil {
			a.Site = *news.Source
		}
		if news.Summary != nil {
			a.Text = *news.Summary
		}
		if news.Url != nil {
			a.URL = *news.Url
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (c *FinnhubClient) Profile(ctx context.Context, symbol string) model.CompanyProfile {
	res, _, err := c.client.CompanyProfile2(ctx).Symbol(symbol).Execute()
	if err != nil {
		slog.Warn("company profile lookup failed, falling back to symbol", "symbol", symbol, "error", err)
		return model.CompanyProfile{Symbol: symbol, CompanyName: symbol}
	}

	profile := model.CompanyProfile{Symbol: symbol, CompanyName: symbol}
	if res.Name != nil && *res.Name != "" {
		profile.CompanyName = *res.Name
	}
	if res.Logo != nil {
		profile.Icon = *res.Logo
	}

	return profile
}
