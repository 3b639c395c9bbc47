package briefing

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"fundbrief/internal/model"
	"fundbrief/pkg/llm"
)

func TestParsePolicy(t *testing.T) {
	policy, err := ParsePolicy("weekday")
	assert.Equal(t, nil, err)
	assert.Equal(t, PolicyWeekday, policy)

	policy, err = ParsePolicy("simple")
	assert.Equal(t, nil, err)
	assert.Equal(t, PolicySimple, policy)

	_, err = ParsePolicy("hourly")
	assert.NotEqual(t, nil, err)
}

func TestPolicyWindows(t *testing.T) {
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	thursday := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		policy        Policy
		day           time.Time
		wantLookback  int
		wantRetention int
	}{
		{"simple weekday", PolicySimple, thursday, 1, 0},
		{"simple monday", PolicySimple, monday, 1, 0},
		{"weekday midweek", PolicyWeekday, thursday, 3, 3},
		{"weekday monday covers the weekend gap", PolicyWeekday, monday, 4, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantLookback, tc.policy.LookbackDays(tc.day))
			assert.Equal(t, tc.wantRetention, tc.policy.RetentionDays(tc.day))
		})
	}
}

func TestNextFire(t *testing.T) {
	loc := time.UTC
	s := NewScheduler(nil, nil, PolicyWeekday, "IVV", 9, loc)

	beforeNine := time.Date(2026, 3, 5, 7, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 5, 9, 0, 0, 0, loc), s.nextFire(beforeNine))

	afterNine := time.Date(2026, 3, 5, 10, 15, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 6, 9, 0, 0, 0, loc), s.nextFire(afterNine))

	exactlyNine := time.Date(2026, 3, 5, 9, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 6, 9, 0, 0, 0, loc), s.nextFire(exactlyNine))
}

func TestIsWeekend(t *testing.T) {
	assert.Equal(t, true, isWeekend(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, true, isWeekend(time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, false, isWeekend(time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, false, isWeekend(time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)))
}

// recordingStore captures the call sequence so tests can assert ordering.
type recordingStore struct {
	ops       []string
	pruneAges []int
	appended  []model.DailyBrief
}

func (r *recordingStore) Get() ([]model.DailyBrief, error) {
	r.ops = append(r.ops, "get")
	return nil, nil
}

func (r *recordingStore) Append(briefs []model.DailyBrief) error {
	r.ops = append(r.ops, "append")
	r.appended = append(r.appended, briefs...)
	return nil
}

func (r *recordingStore) Prune(maxAgeDays int) error {
	r.ops = append(r.ops, "prune")
	r.pruneAges = append(r.pruneAges, maxAgeDays)
	return nil
}

func cycleScheduler(text *fakeText, briefStore *recordingStore) *Scheduler {
	deps := testDeps(text, &fakeImages{})
	deps.Holdings = &fakeHoldings{holdings: []model.Holding{{Symbol: "AAPL"}}}
	deps.Articles = &fakeArticles{bySymbol: map[string][]model.RawArticle{
		"AAPL": {{Symbol: "AAPL", Title: "apple original", PublishedDate: "2026-03-05"}},
	}}
	return NewScheduler(NewPipeline(deps), briefStore, PolicyWeekday, "IVV", 9, time.UTC)
}

func TestRunCycle_PrunesBeforeAppend(t *testing.T) {
	briefStore := &recordingStore{}
	text := &fakeText{stories: []llm.RankedStory{{StoryNumber: 1, Title: "Apple Moves Markets", ImpactScore: 9}}}
	s := cycleScheduler(text, briefStore)

	thursday := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	err := s.RunCycle(context.Background(), thursday)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"prune", "append"}, briefStore.ops)
	assert.Equal(t, []int{3}, briefStore.pruneAges)
	assert.Equal(t, 1, len(briefStore.appended))
	assert.Equal(t, "Apple Moves Markets", briefStore.appended[0].Title)
}

func TestRunCycle_EmptyCycleStillPrunes(t *testing.T) {
	briefStore := &recordingStore{}
	s := cycleScheduler(&fakeText{}, briefStore)

	thursday := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	err := s.RunCycle(context.Background(), thursday)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"prune"}, briefStore.ops)
	assert.Equal(t, 0, len(briefStore.appended))
}

func TestRunCycle_MondayUsesWiderWindow(t *testing.T) {
	briefStore := &recordingStore{}
	s := cycleScheduler(&fakeText{}, briefStore)

	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	err := s.RunCycle(context.Background(), monday)

	assert.Equal(t, nil, err)
	assert.Equal(t, []int{4}, briefStore.pruneAges)
}
