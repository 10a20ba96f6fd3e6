// internal/handlers/export.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/pkg/spreadsheet"
	"github.com/wsvendas/motostock/internal/workers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler moves the admin list in and out of spreadsheets
type ExportHandler struct {
	responder
	admin       ports.AdminService
	importer    ports.ImportService
	enqueuer    workers.Enqueuer
	maxFileSize int64
	uploadDir   string
	now         func() time.Time
}

// NewExportHandler creates a new export handler. With a nil enqueuer
// imports run inside the request.
func NewExportHandler(
	admin ports.AdminService,
	importer ports.ImportService,
	enqueuer workers.Enqueuer,
	maxFileSize int64,
	uploadDir string,
	logger *slog.Logger,
) *ExportHandler {
	return &ExportHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "export"))},
		admin:       admin,
		importer:    importer,
		enqueuer:    enqueuer,
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
		now:         time.Now,
	}
}

// ExportMetadata describes an export
type ExportMetadata struct {
	ExportDate time.Time `json:"exportDate"`
	TotalItems int       `json:"totalItems"`
}

// ExportExcel handles GET /api/v1/admin/export.xlsx
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.admin.Load(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to load motorcycles for export", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load motorcycles")
		return
	}
	items := h.admin.Items()

	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, items); err != nil {
		h.logger.ErrorContext(ctx, "failed to generate spreadsheet", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate spreadsheet")
		return
	}

	filename := fmt.Sprintf("motos_%s.xlsx", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())

	h.logger.InfoContext(ctx, "spreadsheet exported", slog.Int("items", len(items)))
}

// ExportJSON handles GET /api/v1/admin/export.json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Load(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load motorcycles for export", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load motorcycles")
		return
	}
	items := h.admin.Items()

	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="motos_%s.json"`, h.now().Format("2006-01-02")))
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"motorcycles": items,
		"metadata": ExportMetadata{
			ExportDate: h.now().UTC(),
			TotalItems: len(items),
		},
	})
}

// ImportExcel handles POST /api/v1/admin/import.xlsx. With a queue the file
// is saved and imported by the worker (202); otherwise it is imported now.
func (h *ExportHandler) ImportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.respondError(w, http.StatusBadRequest, "Only .xlsx files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	if h.enqueuer != nil {
		h.queueImport(w, r, data)
		return
	}

	result, err := h.importer.Import(ctx, data)
	if err != nil {
		h.logger.WarnContext(ctx, "spreadsheet import failed", slog.String("error", err.Error()))
		h.respondError(w, http.StatusUnprocessableEntity, "Could not read spreadsheet")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *ExportHandler) queueImport(w http.ResponseWriter, r *http.Request, data []byte) {
	ctx := r.Context()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload directory", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	path := filepath.Join(h.uploadDir, fmt.Sprintf("import_%s.xlsx", uuid.New().String()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	task, err := workers.NewImportTask(path, h.now().UTC())
	if err != nil {
		os.Remove(path)
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import")
		return
	}

	info, err := h.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		os.Remove(path)
		h.logger.ErrorContext(ctx, "failed to queue import", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import")
		return
	}

	h.logger.InfoContext(ctx, "spreadsheet import queued", slog.String("task_id", info.ID))
	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"taskId": info.ID,
		"status": "queued",
	})
}
