package briefing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fundbrief/internal/store"
)

// Policy couples the article lookback window with the store retention length
// so a cycle never prunes briefs newer than what it can re-publish.
type Policy string

const (
	// PolicySimple looks back one day and fully resets the store each cycle.
	PolicySimple Policy = "simple"

	// PolicyWeekday looks back three days so Friday's briefs survive until
	// Monday's run, plus one extra day when the run lands on a Monday to
	// cover the Saturday/Sunday gap.
	PolicyWeekday Policy = "weekday"
)

func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case PolicySimple, PolicyWeekday:
		return Policy(name), nil
	default:
		return "", fmt.Errorf("unknown retention policy %q", name)
	}
}

func (p Policy) LookbackDays(day time.Time) int {
	if p != PolicyWeekday {
		return 1
	}
	if day.Weekday() == time.Monday {
		return 4
	}
	return 3
}

func (p Policy) RetentionDays(day time.Time) int {
	if p != PolicyWeekday {
		return 0
	}
	if day.Weekday() == time.Monday {
		return 4
	}
	return 3
}

// Scheduler fires the briefing cycle once per weekday at a fixed wall-clock
// hour in a fixed timezone.
type Scheduler struct {
	pipeline   *Pipeline
	store      store.BriefStore
	policy     Policy
	fundSymbol string
	hour       int
	loc        *time.Location

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(pipeline *Pipeline, briefStore store.BriefStore, policy Policy, fundSymbol string, hour int, loc *time.Location) *Scheduler {
	return &Scheduler{
		pipeline:   pipeline,
		store:      briefStore,
		policy:     policy,
		fundSymbol: fundSymbol,
		hour:       hour,
		loc:        loc,
		stop:       make(chan struct{}),
	}
}

// Start launches the schedule loop. Weekend fires are skipped; everything
// else runs a full cycle.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			now := time.Now().In(s.loc)
			timer := time.NewTimer(s.nextFire(now).Sub(now))

			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-s.stop:
				timer.Stop()
				return
			case fired := <-timer.C:
				fired = fired.In(s.loc)
				if isWeekend(fired) {
					slog.Info("skipping briefing cycle on weekend", "day", fired.Weekday().String())
					continue
				}
				if err := s.RunCycle(ctx, fired); err != nil {
					slog.Error("briefing cycle failed", "error", err)
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

// RunCycle executes one gather → rank → enrich → finalize → prune → append
// pass for the given moment. Manual callers may invoke it on any day; the
// schedule loop is the only place with a weekend guard.
func (s *Scheduler) RunCycle(ctx context.Context, now time.Time) error {
	started := time.Now()
	fromDate := now.AddDate(0, 0, -s.policy.LookbackDays(now)).Format("2006-01-02")
	toDate := now.Format("2006-01-02")

	slog.Info("starting briefing cycle", "fund", s.fundSymbol, "from", fromDate, "to", toDate, "policy", string(s.policy))

	ranked := s.pipeline.GatherAndRank(ctx, s.fundSymbol, fromDate, toDate)
	enriched := s.pipeline.Enrich(ctx, ranked)
	briefs := s.pipeline.Finalize(enriched)

	// Prune must come first so today's briefs never age out under the
	// retention math of a stale cycle.
	if err := s.store.Prune(s.policy.RetentionDays(now)); err != nil {
		return fmt.Errorf("prune briefs: %w", err)
	}

	if len(briefs) == 0 {
		slog.Warn("briefing cycle produced no briefs", "fund", s.fundSymbol)
		return nil
	}

	if err := s.store.Append(briefs); err != nil {
		return fmt.Errorf("publish briefs: %w", err)
	}

	slog.Info("briefing cycle complete", "briefs", len(briefs), "duration", time.Since(started).String())
	return nil
}

func (s *Scheduler) nextFire(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func isWeekend(day time.Time) bool {
	return day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
}
