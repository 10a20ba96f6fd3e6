// internal/core/services/importer.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/pkg/spreadsheet"
)

// Importer creates motorcycles from spreadsheet rows through the admin list
type Importer struct {
	admin  ports.AdminService
	logger *slog.Logger
}

var _ ports.ImportService = (*Importer)(nil)

// NewImporter creates a new importer
func NewImporter(admin ports.AdminService, logger *slog.Logger) *Importer {
	return &Importer{
		admin:  admin,
		logger: logger.With(slog.String("service", "importer")),
	}
}

// Import inserts every valid row as a new motorcycle. Invalid rows and rows
// the store rejects are reported and skipped; the remaining rows still run.
func (i *Importer) Import(ctx context.Context, data []byte) (*domain.ImportResult, error) {
	entries, rowErrs, err := spreadsheet.Read(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	result := &domain.ImportResult{Skipped: []domain.ImportRowError{}}
	for _, re := range rowErrs {
		result.Skipped = append(result.Skipped, domain.ImportRowError{Row: re.Row, Error: re.Err.Error()})
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := i.admin.Upsert(ctx, e.Form, nil); err != nil {
			result.Skipped = append(result.Skipped, domain.ImportRowError{
				Row:   e.Row,
				Error: err.Error(),
			})
			continue
		}
		result.Created++
	}

	i.logger.InfoContext(ctx, "spreadsheet imported",
		slog.Int("created", result.Created),
		slog.Int("skipped", len(result.Skipped)))

	return result, nil
}
