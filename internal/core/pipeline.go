package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// interWeekPacing is the politeness delay between week iterations. It keeps
// the tool under the provider's rate limits; it is not a correctness
// requirement.
const interWeekPacing = 1500 * time.Millisecond

// Searcher retrieves raw offers for one direction on one date. A fully
// degraded search returns an empty slice and no error; errors are reserved
// for conditions the caller cannot retry, such as context cancellation.
type Searcher interface {
	Search(ctx context.Context, origin, destination, date string) ([]Offer, error)
}

// PipelineConfig carries the route and scheduling parameters for one run.
type PipelineConfig struct {
	Origin           string
	Destination      string
	Currency         string
	Weeks            int
	OutboundWeekday  time.Weekday
	ReturnOffsetDays int
	OutboundMinHour  int
	ReturnMinHour    int
}

// Pipeline drives the week-by-week scan: for each target week it fetches
// both directions concurrently, reduces each pool through the filter
// cascade, and builds the week's combos.
type Pipeline struct {
	Searcher Searcher
	Carriers CarrierMap
	Config   PipelineConfig
	Log      *zap.Logger

	// Now and Sleep exist so tests can run without real clocks or delays.
	// Nil values fall back to time.Now and time.Sleep.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Run executes the scan and assembles the report. Individual week failures
// degrade to empty records; Run itself only fails on context cancellation.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	sleep := time.Sleep
	if p.Sleep != nil {
		sleep = p.Sleep
	}

	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: now().UTC(),
		Route: Route{
			Origin:      p.Config.Origin,
			Destination: p.Config.Destination,
			Currency:    p.Config.Currency,
		},
	}

	for i, outDate := range p.targetWeeks(now()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			sleep(interWeekPacing)
		}

		retDate := outDate.AddDate(0, 0, p.Config.ReturnOffsetDays)
		week := p.scanWeek(ctx, outDate, retDate, now, report)
		if len(week.Combos) == 0 {
			report.EmptyWeeks++
		}
		report.Weeks = append(report.Weeks, week)
	}

	p.Log.Info("scan finished",
		zap.Int("weeks", len(report.Weeks)),
		zap.Int("emptyWeeks", report.EmptyWeeks),
		zap.Int("degradedFetches", report.DegradedFetches))
	return report, nil
}

// scanWeek fetches both directions in parallel, joins, filters, and builds
// the week's combo list.
func (p *Pipeline) scanWeek(ctx context.Context, outDate, retDate time.Time, now func() time.Time, report *Report) WeekRecord {
	outISO := outDate.Format("2006-01-02")
	retISO := retDate.Format("2006-01-02")

	var (
		wg       sync.WaitGroup
		outbound []Offer
		inbound  []Offer
		outErr   error
		inErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		outbound, outErr = p.Searcher.Search(ctx, p.Config.Origin, p.Config.Destination, outISO)
	}()
	go func() {
		defer wg.Done()
		inbound, inErr = p.Searcher.Search(ctx, p.Config.Destination, p.Config.Origin, retISO)
	}()
	wg.Wait()

	if outErr != nil || len(outbound) == 0 {
		p.warnDirection("outbound", outISO, outErr, report)
		outbound = nil
	}
	if inErr != nil || len(inbound) == 0 {
		p.warnDirection("return", retISO, inErr, report)
		inbound = nil
	}

	outPool := Reduce(outbound, p.Config.OutboundMinHour)
	retPool := Reduce(inbound, p.Config.ReturnMinHour)
	combos := BuildCombos(outPool, retPool, p.Carriers)

	p.Log.Info("week scanned",
		zap.String("outbound", outISO),
		zap.String("return", retISO),
		zap.Int("offersOut", len(outbound)),
		zap.Int("offersRet", len(inbound)),
		zap.Int("combos", len(combos)))

	return WeekRecord{
		OutboundDate: outISO,
		ReturnDate:   retISO,
		GeneratedAt:  now().UTC(),
		Combos:       combos,
	}
}

func (p *Pipeline) warnDirection(direction, date string, err error, report *Report) {
	report.DegradedFetches++
	fields := []zap.Field{zap.String("direction", direction), zap.String("date", date)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	p.Log.Warn("no offers for direction", fields...)
}

// targetWeeks returns the outbound dates to scan: the next occurrence of the
// configured weekday strictly after today, then weekly increments.
func (p *Pipeline) targetWeeks(today time.Time) []time.Time {
	first := nextWeekday(today, p.Config.OutboundWeekday)
	dates := make([]time.Time, 0, p.Config.Weeks)
	for i := 0; i < p.Config.Weeks; i++ {
		dates = append(dates, first.AddDate(0, 0, 7*i))
	}
	return dates
}

func nextWeekday(after time.Time, wd time.Weekday) time.Time {
	d := after.AddDate(0, 0, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
