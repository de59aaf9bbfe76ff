package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/domain/research"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/telemetry"
)

// RowSource yields input rows; the first row is the header.
type RowSource interface {
	Next() ([]string, error)
	Line() int
}

// ErrorPolicy decides what happens to a row that cannot be converted.
type ErrorPolicy string

const (
	OnErrorAbort ErrorPolicy = "abort"
	OnErrorSkip  ErrorPolicy = "skip"
)

// RunMode is chosen by whether a study id was supplied.
type RunMode string

const (
	ModeStudy   RunMode = "study"
	ModeBundles RunMode = "bundles"
)

// Options configures a Driver.
type Options struct {
	// StudyID is the surrogate id of an already created ResearchStudy. Empty
	// selects the study run, which emits only the ResearchStudy.
	StudyID  string
	OnError  ErrorPolicy
	Logger   zerolog.Logger
	Metrics  *telemetry.Metrics
	Registry *Registry
}

// Summary reports what a run did.
type Summary struct {
	Mode    RunMode
	StudyID string
	Rows    int
	Bundles int
	Skipped int
}

// Driver runs one conversion. It is not safe for concurrent use.
type Driver struct {
	studyID  string
	onError  ErrorPolicy
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
	registry *Registry
}

func NewDriver(opts Options) *Driver {
	d := &Driver{
		studyID:  opts.StudyID,
		onError:  opts.OnError,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		registry: opts.Registry,
	}
	if d.onError == "" {
		d.onError = OnErrorAbort
	}
	if d.registry == nil {
		d.registry = NewRegistry()
	}
	return d
}

// Mode reports which run mode Run will execute.
func (d *Driver) Mode() RunMode {
	if d.studyID == "" {
		return ModeStudy
	}
	return ModeBundles
}

// Run executes the run mode selected by the study id. In study mode src is
// never read and may be nil.
func (d *Driver) Run(ctx context.Context, src RowSource, sink Sink) (Summary, error) {
	if d.Mode() == ModeStudy {
		return d.runStudy(ctx, sink)
	}
	return d.runBundles(ctx, src, sink)
}

func (d *Driver) runStudy(ctx context.Context, sink Sink) (Summary, error) {
	studyID := d.registry.Row().Assign(KindResearchStudy, research.StudyNaturalKey)
	summary := Summary{Mode: ModeStudy, StudyID: studyID}

	bundle, err := NewAssembler(d.registry, studyID).StudyBundle()
	if err != nil {
		return summary, fmt.Errorf("build study: %w", err)
	}
	loc, err := sink.WriteStudy(ctx, bundle)
	if err != nil {
		return summary, err
	}
	d.metrics.Output("study")
	d.metrics.Entries(bundle.ResourceTypes())

	d.logger.Info().
		Str("study_id", studyID).
		Str("location", loc).
		Msg("wrote research study; pass --research-study-id to convert rows")
	return summary, nil
}

func (d *Driver) runBundles(ctx context.Context, src RowSource, sink Sink) (Summary, error) {
	summary := Summary{Mode: ModeBundles, StudyID: d.studyID}
	assembler := NewAssembler(d.registry, d.studyID)

	if _, err := src.Next(); err != nil {
		if errors.Is(err, io.EOF) {
			d.logger.Warn().Msg("input is empty")
			return summary, nil
		}
		return summary, fmt.Errorf("read header: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fields, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, err
		}
		summary.Rows++
		line := src.Line()

		bundle, subjectKey, err := assembler.Assemble(fields)
		if err != nil {
			if d.onError == OnErrorSkip {
				summary.Skipped++
				d.metrics.Row(telemetry.OutcomeSkipped)
				d.logger.Warn().Err(err).Int("line", line).Str("subject", subjectKey).Msg("skipping row")
				continue
			}
			d.metrics.Row(telemetry.OutcomeFailed)
			return summary, fmt.Errorf("line %d: %w", line, err)
		}

		loc, err := sink.WriteBundle(ctx, subjectKey, bundle)
		if err != nil {
			d.metrics.Row(telemetry.OutcomeFailed)
			return summary, fmt.Errorf("line %d: %w", line, err)
		}
		summary.Bundles++
		d.metrics.Row(telemetry.OutcomeConverted)
		d.metrics.Output("bundle")
		d.metrics.Entries(bundle.ResourceTypes())

		d.logger.Info().
			Int("line", line).
			Str("subject", subjectKey).
			Int("entries", len(bundle.Entry)).
			Str("location", loc).
			Msg("wrote bundle")
	}

	d.logger.Info().
		Int("rows", summary.Rows).
		Int("bundles", summary.Bundles).
		Int("skipped", summary.Skipped).
		Msg("conversion finished")
	return summary, nil
}
