// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/wsvendas/motostock/internal/core/ports"
)

// ImportProcessor imports spreadsheets uploaded through the admin API
type ImportProcessor struct {
	importer ports.ImportService
	logger   *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(importer ports.ImportService, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		importer: importer,
		logger:   logger.With(slog.String("processor", "import")),
	}
}

// ProcessImport handles TypeInventoryImport. The file is removed once the
// import ran or can never run.
func (p *ImportProcessor) ProcessImport(ctx context.Context, t *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	data, err := os.ReadFile(payload.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("import file %s is gone: %w", payload.FilePath, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	result, err := p.importer.Import(ctx, data)
	if err != nil {
		p.remove(ctx, payload.FilePath)
		return fmt.Errorf("failed to import spreadsheet: %v: %w", err, asynq.SkipRetry)
	}
	p.remove(ctx, payload.FilePath)

	p.logger.InfoContext(ctx, "spreadsheet import completed",
		slog.String("file_path", payload.FilePath),
		slog.Int("created", result.Created),
		slog.Int("skipped", len(result.Skipped)))

	return nil
}

func (p *ImportProcessor) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.logger.WarnContext(ctx, "failed to remove import file",
			slog.String("file_path", path),
			slog.Any("error", err))
	}
}
