package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"retail-insights/internal/domain"
)

// SalesReportUseCase orchestrates loading, cleaning and summarising sales.
type SalesReportUseCase struct {
	source TransactionSource
	log    zerolog.Logger
	now    func() time.Time
}

// NewSalesReportUseCase creates a new instance of the usecase.
func NewSalesReportUseCase(source TransactionSource, log zerolog.Logger) *SalesReportUseCase {
	return &SalesReportUseCase{
		source: source,
		log:    log.With().Str("component", "sales_report").Logger(),
		now:    time.Now,
	}
}

// Clean loads the raw rows at location and hands the canonical records to w.
func (uc *SalesReportUseCase) Clean(ctx context.Context, location string, policy domain.ErrorPolicy, w CanonicalWriter) (*NormalizeResult, error) {
	result, err := uc.load(ctx, location, policy)
	if err != nil {
		return nil, err
	}

	if err := w.WriteCanonical(ctx, result.Records); err != nil {
		return nil, fmt.Errorf("could not write cleaned transactions: %w", err)
	}
	uc.log.Info().Int("rows", len(result.Records)).Msg("cleaned transactions written")
	return result, nil
}

// Generate builds the sales report for the rows at location and passes it to
// every writer in order. The first writer error aborts the run.
func (uc *SalesReportUseCase) Generate(ctx context.Context, location string, policy domain.ErrorPolicy, writers ...ReportWriter) (*domain.SalesReport, error) {
	if policy == "" {
		policy = domain.ErrorPolicyAbort
	}

	result, err := uc.load(ctx, location, policy)
	if err != nil {
		return nil, err
	}

	report := &domain.SalesReport{
		Run: domain.RunInfo{
			RunID:       uuid.NewString(),
			Source:      location,
			ErrorPolicy: string(policy),
			GeneratedAt: uc.now().UTC(),
		},
		TotalTransactions: len(result.Records),
		TotalRevenue:      TotalRevenue(result.Records).Round(2),
		Summaries:         Aggregate(result.Records),
		Rejected:          make([]domain.RejectedRow, 0, len(result.Rejected)),
	}
	for _, rowErr := range result.Rejected {
		report.Rejected = append(report.Rejected, rowErr.Rejected())
	}
	for _, tx := range result.Records {
		if tx.TotalAmountDiverges() {
			report.DivergentTotalAmount++
		}
	}
	if report.DivergentTotalAmount > 0 {
		uc.log.Warn().
			Int("rows", report.DivergentTotalAmount).
			Msg("source total_amount differs from quantity x price_per_unit; derived revenue is used")
	}

	uc.log.Info().
		Str("run_id", report.Run.RunID).
		Int("transactions", report.TotalTransactions).
		Str("total_revenue", report.TotalRevenue.StringFixed(2)).
		Msg("sales report generated")

	for _, w := range writers {
		if err := w.WriteReport(ctx, report); err != nil {
			return nil, fmt.Errorf("could not write report: %w", err)
		}
	}
	return report, nil
}

func (uc *SalesReportUseCase) load(ctx context.Context, location string, policy domain.ErrorPolicy) (*NormalizeResult, error) {
	raws, err := uc.source.GetRawTransactions(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("could not get raw transactions: %w", err)
	}

	result, err := Normalize(raws, policy)
	if err != nil {
		return nil, fmt.Errorf("could not normalize transactions: %w", err)
	}

	for _, rowErr := range result.Rejected {
		uc.log.Warn().
			Int("row", rowErr.Row).
			Str("transaction_id", rowErr.TransactionID).
			Err(rowErr.Err).
			Msg("skipping row")
	}
	uc.log.Debug().
		Int("raw", len(raws)).
		Int("canonical", len(result.Records)).
		Int("rejected", len(result.Rejected)).
		Msg("transactions normalized")
	return result, nil
}
