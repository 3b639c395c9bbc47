package fund

import (
	"context"

	"fundbrief/internal/model"
)

// HoldingsProvider lists the constituent companies of a fund.
type HoldingsProvider interface {
	Holdings(ctx context.Context, fundSymbol string) ([]model.Holding, error)
}

// ArticleProvider fetches news for one symbol within an inclusive date range
// (YYYY-MM-DD, no time component).
type ArticleProvider interface {
	Articles(ctx context.Context, symbol, fromDate, toDate string) ([]model.RawArticle, error)
}

// ProfileProvider resolves a company display profile. Implementations never
// fail: on any error they return a profile whose CompanyName is the symbol.
type ProfileProvider interface {
	Profile(ctx context.Context, symbol string) model.CompanyProfile
}
