package usecase

import (
	"context"

	"retail-insights/internal/domain"
)

// TransactionSource loads raw sales rows from a file or table.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type TransactionSource interface {
	GetRawTransactions(ctx context.Context, location string) ([]domain.RawTransaction, error)
}

// ReportWriter publishes a finished sales report.
type ReportWriter interface {
	WriteReport(ctx context.Context, report *domain.SalesReport) error
}

// CanonicalWriter stores cleaned transactions.
type CanonicalWriter interface {
	WriteCanonical(ctx context.Context, txs []domain.CanonicalTransaction) error
}
