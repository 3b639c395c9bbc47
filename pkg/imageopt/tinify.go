package imageopt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fundbrief/internal/model"
)

const shrinkEndpoint = "https://api.tinify.com/shrink"

// Optimizer compresses a generated image in place.
type Optimizer interface {
	Optimize(ctx context.Context, image model.ImageResult) model.ImageResult
}

// TinifyOptimizer compresses PNG payloads through the Tinify shrink API.
type TinifyOptimizer struct {
	apiKey     string
	httpClient *http.Client
}

func NewTinifyOptimizer(apiKey string) *TinifyOptimizer {
	return &TinifyOptimizer{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Optimize replaces the image payload with a compressed one. A failed input
// image yields an empty failed result; a provider failure returns the input
// unchanged, since a successfully generated image beats no image at all.
func (o *TinifyOptimizer) Optimize(ctx context.Context, image model.ImageResult) model.ImageResult {
	if !image.Success {
		slog.Warn("optimizer received an unsuccessful image result")
		return model.ImageResult{}
	}

	raw, err := base64.StdEncoding.DecodeString(image.Base64)
	if err != nil {
		slog.Error("error decoding image payload", "error", err)
		return image
	}

	optimized, err := o.shrink(ctx, raw)
	if err != nil {
		slog.Error("image optimization failed, keeping original", "error", err)
		return image
	}

	return model.ImageResult{
		Base64:  base64.StdEncoding.EncodeToString(optimized),
		Success: true,
	}
}

func (o *TinifyOptimizer) shrink(ctx context.Context, raw []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, shrinkEndpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tinify shrink: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("tinify shrink: unexpected status %d", resp.StatusCode)
	}

	var shrunk struct {
		Output struct {
			URL string `json:"url"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&shrunk); err != nil {
		return nil, fmt.Errorf("tinify decode: %w", err)
	}
	if shrunk.Output.URL == "" {
		return nil, fmt.Errorf("tinify shrink: missing output url")
	}

	return o.download(ctx, shrunk.Output.URL)
}

func (o *TinifyOptimizer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tinify download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tinify download: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
