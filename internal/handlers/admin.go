// internal/handlers/admin.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/handlers/middleware"
	"github.com/wsvendas/motostock/internal/pkg/imaging"
)

// AdminHandler serves the inventory list manager
type AdminHandler struct {
	responder
	admin        ports.AdminService
	photos       ports.PhotoService
	feed         ports.NotificationFeed
	gate         *middleware.AdminGate
	maxUpload    int64
	secureCookie bool
	now          func() time.Time
}

// NewAdminHandler creates a new admin handler. maxUpload bounds photo
// uploads in bytes.
func NewAdminHandler(
	admin ports.AdminService,
	photos ports.PhotoService,
	feed ports.NotificationFeed,
	gate *middleware.AdminGate,
	maxUpload int64,
	secureCookie bool,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		responder:    responder{logger: logger.With(slog.String("handler", "admin"))},
		admin:        admin,
		photos:       photos,
		feed:         feed,
		gate:         gate,
		maxUpload:    maxUpload,
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

// AdminListResponse is returned by every list mutation
type AdminListResponse struct {
	Items        []domain.Motorcycle  `json:"items"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// LoginRequest is the body of POST /api/v1/admin/login
type LoginRequest struct {
	Password string `json:"password"`
}

// ReorderRequest is the body of POST /api/v1/admin/motorcycles/reorder
type ReorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.gate.Check(req.Password) {
		h.logger.WarnContext(r.Context(), "admin login rejected")
		h.respondError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	h.gate.SetCookie(w, h.secureCookie)
	h.respondJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// Logout handles POST /api/v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/admin/motorcycles
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	since := h.now()
	if err := h.admin.Load(r.Context()); err != nil {
		h.fail(w, r, err, since, "Failed to load motorcycles")
		return
	}
	h.respondList(w, http.StatusOK, since)
}

// Create handles POST /api/v1/admin/motorcycles
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form domain.MotorcycleForm
	if err := decodeJSON(w, r, &form); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	since := h.now()
	if err := h.admin.Upsert(r.Context(), form, nil); err != nil {
		h.fail(w, r, err, since, "Failed to save motorcycle")
		return
	}
	h.respondList(w, http.StatusCreated, since)
}

// Update handles PUT /api/v1/admin/motorcycles/{id}
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var form domain.MotorcycleForm
	if err := decodeJSON(w, r, &form); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	since := h.now()
	if err := h.admin.Upsert(r.Context(), form, &id); err != nil {
		h.fail(w, r, err, since, "Failed to save motorcycle")
		return
	}
	h.respondList(w, http.StatusOK, since)
}

// ToggleSold handles POST /api/v1/admin/motorcycles/{id}/toggle-sold
func (h *AdminHandler) ToggleSold(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	since := h.now()
	if err := h.admin.ToggleSold(r.Context(), id); err != nil {
		h.fail(w, r, err, since, "Failed to update sold status")
		return
	}
	h.respondList(w, http.StatusOK, since)
}

// Reorder handles POST /api/v1/admin/motorcycles/reorder
func (h *AdminHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decodeJSON(w, r, &req); err != nil || req.From == nil || req.To == nil {
		h.respondError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	since := h.now()
	if err := h.admin.Reorder(r.Context(), *req.From, *req.To); err != nil {
		h.fail(w, r, err, since, "Failed to save order")
		return
	}
	h.respondList(w, http.StatusOK, since)
}

// Delete handles DELETE /api/v1/admin/motorcycles/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	since := h.now()
	if err := h.admin.Remove(r.Context(), id); err != nil {
		h.fail(w, r, err, since, "Failed to delete motorcycle")
		return
	}
	h.respondList(w, http.StatusOK, since)
}

// UploadPhoto handles POST /api/v1/admin/photos. The multipart form carries
// the image as "file" and the crop rectangle as x, y, width and height, with
// an optional aspect ("1.333" or "4/3") standing in for height.
func (h *AdminHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+(1<<20))
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
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

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		h.respondError(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	rect, err := parseCropRect(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	since := h.now()
	url, err := h.photos.UploadCropped(r.Context(), file, rect)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Failed to upload photo"
		if errors.Is(err, imaging.ErrProcessing) {
			status, msg = http.StatusUnprocessableEntity, "Image processing failed"
		}
		h.logger.ErrorContext(r.Context(), "photo upload failed", slog.String("error", err.Error()))
		h.respondJSON(w, status, map[string]interface{}{
			"error":        msg,
			"notification": h.latest(since),
		})
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"url":          url,
		"notification": h.latest(since),
	})
}

// Notifications handles GET /api/v1/admin/notifications
func (h *AdminHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": h.feed.Recent(limit),
	})
}

func parseCropRect(r *http.Request) (imaging.CropRect, error) {
	var rect imaging.CropRect
	fields := []struct {
		name     string
		dst      *int
		required bool
	}{
		{"x", &rect.X, false},
		{"y", &rect.Y, false},
		{"width", &rect.Width, true},
		{"height", &rect.Height, false},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			if f.required {
				return rect, fmt.Errorf("%s is required", f.name)
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return rect, fmt.Errorf("%s must be a number", f.name)
		}
		if math.Abs(v) > imaging.MaxSourcePixels {
			return rect, fmt.Errorf("%s is out of range", f.name)
		}
		*f.dst = int(v)
	}

	if raw := strings.TrimSpace(r.FormValue("aspect")); raw != "" {
		aspect, err := parseAspect(raw)
		if err != nil {
			return rect, err
		}
		rect.Aspect = aspect
	}

	if rect.Height == 0 && rect.Aspect == 0 {
		return rect, fmt.Errorf("height or aspect is required")
	}
	return rect, nil
}

func parseAspect(raw string) (float64, error) {
	if num, den, ok := strings.Cut(raw, "/"); ok {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || d == 0 || !validAspect(n/d) {
			return 0, fmt.Errorf("aspect must be a ratio like 4/3")
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !validAspect(v) {
		return 0, fmt.Errorf("aspect must be positive")
	}
	return v, nil
}

func validAspect(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func (h *AdminHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid motorcycle ID")
		return uuid.Nil, false
	}
	return id, true
}

// latest returns the newest notification raised at or after since
func (h *AdminHandler) latest(since time.Time) *domain.Notification {
	recent := h.feed.Recent(1)
	if len(recent) == 0 || recent[0].At.Before(since) {
		return nil
	}
	return &recent[0]
}

func (h *AdminHandler) respondList(w http.ResponseWriter, status int, since time.Time) {
	h.respondJSON(w, status, AdminListResponse{
		Items:        h.admin.Items(),
		Notification: h.latest(since),
	})
}

// fail maps a list manager error onto a response carrying the notification
func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error, since time.Time, msg string) {
	if h.respondValidation(w, err) {
		return
	}

	body := map[string]interface{}{"notification": h.latest(since)}
	status := http.StatusInternalServerError

	var partial *services.PartialReorderError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "Motorcycle not found"
	case errors.Is(err, domain.ErrInvalidIndex):
		status, msg = http.StatusBadRequest, "Invalid list position"
	case errors.As(err, &partial):
		body["persisted"] = partial.Persisted
		body["total"] = partial.Total
	}

	if status >= 500 {
		h.logger.ErrorContext(r.Context(), msg, slog.String("error", err.Error()))
	}
	body["error"] = msg
	h.respondJSON(w, status, body)
}
