package transfer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cour/internal/annict"
	"cour/internal/logging"
	"cour/internal/mapper"
	"cour/internal/notion"
	"cour/internal/services"
)

// Request carries everything one run needs. ExcludeWeb should default to true
// at the caller.
type Request struct {
	Season           string
	SourceToken      string
	DestinationToken string
	DatabaseID       string
	ExcludeWeb       bool
	DryRun           bool
}

// FetcherFactory builds a catalog fetcher for the given source token.
type FetcherFactory func(token string) (annict.Fetcher, error)

// WriterFactory builds a destination writer for the given destination token.
type WriterFactory func(token string) (notion.Writer, error)

// Recorder persists finished reports. Recording failures are logged and never
// change the run result.
type Recorder interface {
	Record(ctx context.Context, report *Report, status services.RunStatus) error
}

// Runner executes transfer runs.
type Runner struct {
	newFetcher     FetcherFactory
	newWriter      WriterFactory
	mapper         *mapper.Mapper
	properties     notion.Properties
	excludedMedium string
	recorder       Recorder
	logger         *slog.Logger
	now            func() time.Time
	newRunID       func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithFetcherFactory overrides how catalog fetchers are built.
func WithFetcherFactory(factory FetcherFactory) Option {
	return func(r *Runner) {
		if factory != nil {
			r.newFetcher = factory
		}
	}
}

// WithWriterFactory overrides how destination writers are built.
func WithWriterFactory(factory WriterFactory) Option {
	return func(r *Runner) {
		if factory != nil {
			r.newWriter = factory
		}
	}
}

// WithMapper overrides the record mapper.
func WithMapper(m *mapper.Mapper) Option {
	return func(r *Runner) {
		if m != nil {
			r.mapper = m
		}
	}
}

// WithProperties sets the property names used for dry-run previews. It should
// match the properties the writer factory configures.
func WithProperties(props notion.Properties) Option {
	return func(r *Runner) {
		r.properties = props
	}
}

// WithExcludedMedium overrides the medium dropped when ExcludeWeb is set.
func WithExcludedMedium(medium string) Option {
	return func(r *Runner) {
		if medium = strings.TrimSpace(medium); medium != "" {
			r.excludedMedium = medium
		}
	}
}

// WithRecorder attaches a report recorder.
func WithRecorder(recorder Recorder) Option {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRunIDGenerator overrides run ID generation.
func WithRunIDGenerator(gen func() string) Option {
	return func(r *Runner) {
		if gen != nil {
			r.newRunID = gen
		}
	}
}

// NewRunner constructs a Runner wired to the real Annict and Notion clients.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		newFetcher: func(token string) (annict.Fetcher, error) {
			return annict.New(token)
		},
		newWriter: func(token string) (notion.Writer, error) {
			return notion.New(token)
		},
		mapper:         mapper.New(),
		properties:     notion.DefaultProperties(),
		excludedMedium: annict.DefaultExcludedMedium,
		logger:         logging.NewNop(),
		now:            time.Now,
		newRunID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches the season, then maps and writes each work in source order.
//
// The returned report is never nil. A non-nil error means the run ended
// before any write: invalid request, client construction failure, or a failed
// fetch (report.FetchError holds the message). Write failures never produce an
// error; they are counted in the report.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		RunID:      r.newRunID(),
		Season:     strings.TrimSpace(req.Season),
		DatabaseID: strings.TrimSpace(req.DatabaseID),
		DryRun:     req.DryRun,
		StartedAt:  r.now(),
		Outcomes:   []notion.Outcome{},
	}
	ctx = services.WithRunID(ctx, report.RunID)
	ctx = services.WithSeason(ctx, report.Season)
	base := logging.NewComponentLogger(r.logger, "transfer")
	logger := logging.WithContext(ctx, base)

	err := r.run(ctx, base, req, report)
	report.FinishedAt = r.now()

	status := services.Classify(err, report.TotalAttempted, report.TotalSucceeded)
	logger.Info("transfer run finished",
		logging.String("status", string(status)),
		logging.Int("fetched", report.TotalFetched),
		logging.Int("attempted", report.TotalAttempted),
		logging.Int("succeeded", report.TotalSucceeded),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	if r.recorder != nil {
		if recErr := r.recorder.Record(context.WithoutCancel(ctx), report, status); recErr != nil {
			logger.Warn("run history not recorded", logging.Error(recErr))
		}
	}
	return report, err
}

func (r *Runner) run(ctx context.Context, base *slog.Logger, req Request, report *Report) error {
	if report.Season == "" {
		return services.Wrap(services.ErrValidation, "transfer", "", "season token required", nil)
	}
	if report.DatabaseID == "" && !req.DryRun {
		return services.Wrap(services.ErrValidation, "transfer", "", "destination database id required", nil)
	}

	fetcher, err := r.newFetcher(req.SourceToken)
	if err != nil {
		return err
	}
	var writer notion.Writer
	if !req.DryRun {
		if writer, err = r.newWriter(req.DestinationToken); err != nil {
			return err
		}
	}

	opts := annict.FetchOptions{}
	if req.ExcludeWeb {
		opts.ExcludeMedium = r.excludedMedium
	}
	fetchCtx := services.WithStage(ctx, "fetch")
	works, err := fetcher.FetchSeason(fetchCtx, report.Season, opts)
	if err != nil {
		report.FetchError = err.Error()
		logging.WithContext(fetchCtx, base).Error("season fetch failed", logging.Error(err))
		return err
	}
	report.TotalFetched = len(works)
	logging.WithContext(fetchCtx, base).Info("season fetched",
		logging.Int("works", len(works)),
		logging.Bool("exclude_web", req.ExcludeWeb),
		logging.Bool("dry_run", req.DryRun),
	)

	writeCtx := services.WithStage(ctx, "write")
	writeLogger := logging.WithContext(writeCtx, base)
	for idx, work := range works {
		if err := ctx.Err(); err != nil {
			writeLogger.Warn("transfer interrupted", logging.Int("remaining", len(works)-idx))
			return err
		}
		record := r.mapper.Map(work)
		if req.DryRun {
			report.Previews = append(report.Previews, Preview{
				Title:   record.Title,
				Record:  record,
				Payload: notion.BuildPayload(report.DatabaseID, record, r.properties),
			})
			continue
		}

		outcome := writer.CreatePage(writeCtx, report.DatabaseID, record)
		report.record(outcome)
		if outcome.Succeeded {
			writeLogger.Info("page created",
				logging.String("title", outcome.Title),
				logging.Int("index", idx+1),
				logging.Int("total", len(works)),
			)
			continue
		}
		writeLogger.Warn("page create failed",
			logging.String("title", outcome.Title),
			logging.Int("status", outcome.StatusCode),
			logging.String("body", outcome.ResponseBody),
			logging.Alert("write_failed"),
		)
	}
	return nil
}
