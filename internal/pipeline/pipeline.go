package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/cleaning"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"github.com/vfg2006/sales-pipeline/pkg/utils"
)

// Region labels attached to the rows of each sales file.
const (
	RegionA = "A"
	RegionB = "B"
)

var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// Settings holds the input paths of a run.
type Settings struct {
	SalesAPath     string
	SalesBPath     string
	ProductIDsPath string
}

// Summary describes one pipeline run. On failure it holds what the completed
// stages produced.
type Summary struct {
	RunID      string                 `json:"run_id"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	RowsA      int                    `json:"rows_region_a"`
	RowsB      int                    `json:"rows_region_b"`
	Products   int                    `json:"products"`
	Cleaned    int                    `json:"cleaned"`
	Rejected   int                    `json:"rejected"`
	Enriched   int                    `json:"enriched"`
	Unmatched  int                    `json:"unmatched"`
	Reports    *domain.Reports        `json:"reports,omitempty"`
	Tables     []domain.TableInfo     `json:"tables,omitempty"`
	Forecast   *domain.ForecastResult `json:"forecast,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// Prepared is the in-memory output of the stages before persistence.
type Prepared struct {
	RegionA  []domain.RawTransaction
	RegionB  []domain.RawTransaction
	Products []domain.Product
	Cleaned  *cleaning.Result
	Enriched []domain.EnrichedTransaction
	Reports  *domain.Reports
}

type Pipeline struct {
	settings   Settings
	loader     Loader
	cleaner    Cleaner
	enricher   Enricher
	aggregator Aggregator
	reports    repository.ReportRepository
	forecaster Forecaster

	running sync.Mutex
	mu      sync.RWMutex
	last    *Summary
	now     func() time.Time
}

func New(
	settings Settings,
	loader Loader,
	cleaner Cleaner,
	enricher Enricher,
	aggregator Aggregator,
	reports repository.ReportRepository,
	forecaster Forecaster,
) *Pipeline {
	return &Pipeline{
		settings:   settings,
		loader:     loader,
		cleaner:    cleaner,
		enricher:   enricher,
		aggregator: aggregator,
		reports:    reports,
		forecaster: forecaster,
		now:        time.Now,
	}
}

// Run executes every stage in order and stops at the first failure. Stages
// that already completed are not undone. Only one run executes at a time;
// a concurrent call returns ErrRunInProgress.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	if !p.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.running.Unlock()

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}
	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)

	summary := &Summary{RunID: runID, StartedAt: p.now().UTC()}
	logger.Info("pipeline started")

	err = p.run(ctx, summary)
	summary.FinishedAt = p.now().UTC()

	if err != nil {
		summary.Error = err.Error()
		p.setLast(summary)

		fields := log.Fields{"duration": summary.FinishedAt.Sub(summary.StartedAt).String()}
		var stageErr *domain.StageError
		if errors.As(err, &stageErr) {
			fields["stage"] = stageErr.Stage
			fields["kind"] = string(stageErr.Kind)
			fields["input"] = stageErr.Input
		}
		logger.WithError(err).WithFields(fields).Error("pipeline failed")

		return summary, err
	}

	p.setLast(summary)
	logger.WithFields(log.Fields{
		"duration": summary.FinishedAt.Sub(summary.StartedAt).String(),
		"rows":     summary.Enriched,
	}).Info("pipeline completed")

	return summary, nil
}

func (p *Pipeline) run(ctx context.Context, summary *Summary) error {
	prepared, err := p.Prepare(ctx)
	if prepared != nil {
		summary.RowsA = len(prepared.RegionA)
		summary.RowsB = len(prepared.RegionB)
		summary.Products = len(prepared.Products)
		if prepared.Cleaned != nil {
			summary.Cleaned = len(prepared.Cleaned.Transactions)
			summary.Rejected = len(prepared.Cleaned.Rejected)
		}
		summary.Enriched = len(prepared.Enriched)
		summary.Unmatched = countUnmatched(prepared.Enriched)
		summary.Reports = prepared.Reports
	}
	if err != nil {
		return err
	}

	logger := log.ForContext(ctx)

	if err := p.reports.ReplaceCategoryReport(ctx, prepared.Reports.ByCategory); err != nil {
		return err
	}
	if err := p.reports.ReplacePeriodReport(ctx, prepared.Reports.ByPeriod); err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"tables": []string{domain.CategoryReportTable, domain.PeriodReportTable},
	}).Info("Data saved to database successfully")

	if err := p.describeStore(ctx, summary); err != nil {
		return err
	}

	forecast, err := p.forecaster.Run(ctx, prepared.Enriched)
	summary.Forecast = forecast
	return err
}

// Prepare loads, cleans, enriches and aggregates the input files in memory.
// It writes nothing and may run alongside Run. On failure the returned value
// holds the stages that completed.
func (p *Pipeline) Prepare(ctx context.Context) (*Prepared, error) {
	prepared := &Prepared{}
	var err error

	prepared.RegionA, err = p.loader.LoadTransactions(p.settings.SalesAPath, RegionA)
	if err != nil {
		return prepared, err
	}
	prepared.RegionB, err = p.loader.LoadTransactions(p.settings.SalesBPath, RegionB)
	if err != nil {
		return prepared, err
	}
	prepared.Products, err = p.loader.LoadProducts(p.settings.ProductIDsPath)
	if err != nil {
		return prepared, err
	}

	prepared.Cleaned, err = p.cleaner.Clean(prepared.RegionA, prepared.RegionB)
	if err != nil {
		return prepared, err
	}

	prepared.Enriched, err = p.enricher.Enrich(prepared.Cleaned.Transactions, prepared.Products)
	if err != nil {
		return prepared, err
	}

	prepared.Reports, err = p.aggregator.Aggregate(prepared.Enriched)
	if err != nil {
		return prepared, err
	}

	return prepared, nil
}

// describeStore logs the tables of the store and the persisted period report.
func (p *Pipeline) describeStore(ctx context.Context, summary *Summary) error {
	logger := log.ForContext(ctx)

	tables, err := p.reports.DescribeTables(ctx)
	if err != nil {
		return err
	}
	summary.Tables = tables
	for _, table := range tables {
		logger.WithFields(log.Fields{
			"table":   table.Name,
			"columns": table.Columns,
		}).Info("Store table")
	}

	periods, err := p.reports.ListPeriodReport(ctx)
	if err != nil {
		return err
	}
	for _, row := range periods {
		logger.WithFields(log.Fields{
			"year":        row.Year,
			"month":       row.Month,
			"total_sales": row.TotalSales.String(),
		}).Debug("Persisted period total")
	}
	logger.WithField("rows", len(periods)).Info("Period report read back from the store")

	return nil
}

// LastSummary returns the summary of the most recent finished run, or nil.
func (p *Pipeline) LastSummary() *Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

func (p *Pipeline) setLast(summary *Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = summary
}

func countUnmatched(rows []domain.EnrichedTransaction) int {
	unmatched := 0
	for _, row := range rows {
		if row.ProductName == nil {
			unmatched++
		}
	}
	return unmatched
}
