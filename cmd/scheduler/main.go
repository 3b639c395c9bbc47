package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fundbrief/internal/briefing"
	"fundbrief/internal/config"
	"fundbrief/internal/store"
	"fundbrief/pkg/blob"
	"fundbrief/pkg/fund"
	"fundbrief/pkg/imageopt"
	"fundbrief/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("error loading timezone %q: %v", cfg.Timezone, err)
	}

	policy, err := briefing.ParsePolicy(cfg.RetentionPolicy)
	if err != nil {
		log.Fatalf("error parsing retention policy: %v", err)
	}

	briefStore, err := newBriefStore(cfg)
	if err != nil {
		log.Fatalf("error opening brief store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := buildPipeline(ctx, cfg)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}

	scheduler := briefing.NewScheduler(pipeline, briefStore, policy, cfg.FundSymbol, cfg.ScheduleHour, loc)
	scheduler.Start(ctx)

	slog.Info("briefing scheduler running",
		"fund", cfg.FundSymbol, "hour", cfg.ScheduleHour, "timezone", cfg.Timezone, "policy", cfg.RetentionPolicy)

	<-ctx.Done()
	scheduler.Stop()
}

func newBriefStore(cfg *config.Config) (store.BriefStore, error) {
	if cfg.RedisURL != "" {
		return store.NewRedisStore(cfg.RedisURL)
	}
	return store.NewFileStore(cfg.DataDir)
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*briefing.Pipeline, error) {
	fmp := fund.NewFMPClient(cfg.FMPAPIKey)

	var articles fund.ArticleProvider = fmp
	var profiles fund.ProfileProvider = fmp
	if cfg.FinnhubAPIKey != "" {
		finnhub := fund.NewFinnhubClient(cfg.FinnhubAPIKey)
		articles = finnhub
		profiles = finnhub
	}

	openAI := llm.NewOpenAIClient(cfg.OpenAIAPIKey)

	var text llm.TextModel = openAI
	if cfg.LLMProvider == "anthropic" {
		text = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}

	var optimizer imageopt.Optimizer = imageopt.Passthrough{}
	if cfg.TinifyAPIKey != "" {
		optimizer = imageopt.NewTinifyOptimizer(cfg.TinifyAPIKey)
	}

	var blobs blob.Store
	if cfg.S3Bucket != "" {
		s3Store, err := blob.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL)
		if err != nil {
			return nil, err
		}
		blobs = s3Store
	}

	return briefing.NewPipeline(briefing.Deps{
		Holdings:   fmp,
		Articles:   articles,
		Profiles:   profiles,
		Text:       text,
		Images:     openAI,
		Optimizer:  optimizer,
		Blobs:      blobs,
		TopStories: cfg.TopStories,
		FetchDelay: cfg.FetchDelay,
	}), nil
}
