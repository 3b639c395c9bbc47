package fund

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fundbrief/internal/model"
)

// FMPClient talks to the FinancialModelingPrep REST API. It covers all three
// provider roles: fund holdings, stock news, and company profiles.
type FMPClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewFMPClient(apiKey string) *FMPClient {
	return &FMPClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *FMPClient) Name() string {
	return "FinancialModelingPrep"
}

func (c *FMPClient) Holdings(ctx context.Context, fundSymbol string) ([]model.Holding, error) {
	reqURL := fmt.Sprintf(
		"https://financialmodelingprep.com/stable/etf/holdings?symbol=%s&apikey=%s",
		url.QueryEscape(fundSymbol), c.apiKey,
	)

	var raw []fmpHolding
	if err := c.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, fmt.Errorf("fmp holdings: %w", err)
	}

	holdings := make([]model.Holding, 0, len(raw))
	for _, item := range raw {
		holdings = append(holdings, model.Holding{
			Symbol: item.Asset,
			Name:   item.Name,
			Weight: item.WeightPercentage,
		})
	}

	return holdings, nil
}

func (c *FMPClient) Articles(ctx context.Context, symbol, fromDate, toDate string) ([]model.RawArticle, error) {
	reqURL := fmt.Sprintf(
		"https://financialmodelingprep.com/api/v3/stock_news?tickers=%s&page=1&from=%s&to=%s&apikey=%s",
		url.QueryEscape(symbol), fromDate, toDate, c.apiKey,
	)

	var raw []fmpArticle
	if err := c.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, fmt.Errorf("fmp stock news: %w", err)
	}

	articles := make([]model.RawArticle, 0, len(raw))
	for _, item := range raw {
		articles = append(articles, model.RawArticle{
			Symbol:        item.Symbol,
			PublishedDate: datePrefix(item.PublishedDate),
			Title:         item.Title,
			Image:         item.Image,
			Site:          item.Site,
			Text:          item.Text,
			URL:           item.URL,
		})
	}

	return articles, nil
}

func (c *FMPClient) Profile(ctx context.Context, symbol string) model.CompanyProfile {
	reqURL := fmt.Sprintf(
		"https://financialmodelingprep.com/api/v3/profile/%s?apikey=%s",
		url.PathEscape(symbol), c.apiKey,
	)

	var raw []fmpProfile
	if err := c.getJSON(ctx, reqURL, &raw); err != nil || len(raw) == 0 {
		slog.Warn("company profile lookup failed, falling back to symbol", "symbol", symbol, "error", err)
		return model.CompanyProfile{Symbol: symbol, CompanyName: symbol}
	}

	profile := model.CompanyProfile{
		Symbol:      raw[0].Symbol,
		CompanyName: raw[0].CompanyName,
		Icon:        raw[0].Image,
	}
	if profile.Symbol == "" {
		profile.Symbol = symbol
	}
	if profile.CompanyName == "" {
		profile.CompanyName = symbol
	}

	return profile
}

func (c *FMPClient) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// datePrefix reduces FMP timestamps ("2025-07-22 14:00:00" or RFC 3339) to
// the YYYY-MM-DD form the retention store prunes on.
func datePrefix(published string) string {
	if cut, _, found := strings.Cut(published, " "); found {
		return cut
	}
	if cut, _, found := strings.Cut(published, "T"); found {
		return cut
	}
	return published
}

type fmpHolding struct {
	Symbol           string  `json:"symbol"`
	Asset            string  `json:"asset"`
	Name             string  `json:"name"`
	WeightPercentage float64 `json:"weightPercentage"`
}

type fmpArticle struct {
	Symbol        string `json:"symbol"`
	PublishedDate string `json:"publishedDate"`
	Title         string `json:"title"`
	Image         string `json:"image"`
	Site          string `json:"site"`
	Text          string `json:"text"`
	URL           string `json:"url"`
}

type fmpProfile struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Image       string `json:"image"`
}
