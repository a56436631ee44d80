package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/application/usecase"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
)

// DashboardService é o subconjunto do caso de uso exposto pela API.
type DashboardService interface {
	LoadDashboard(ctx context.Context, filter entity.Filter) (entity.DashboardView, error)
	GenerateReport(ctx context.Context, filter entity.Filter, notes string) (*entity.ExportResult, error)
	RenderChart(ctx context.Context, filter entity.Filter, chartID string, width int) ([]byte, error)
	ExportDataset(ctx context.Context, filter entity.Filter, dataset, format string, w io.Writer) (string, error)
}

type Handler struct {
	dashboard DashboardService
}

func NewHandler(dashboard DashboardService) *Handler {
	return &Handler{dashboard: dashboard}
}

// reportRequest é o corpo de POST /api/v1/reports. Products ausente seleciona todos.
type reportRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Products []string `json:"products"`
	Notes    string   `json:"notes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.dashboard.LoadDashboard(ctx, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chartID := chi.URLParam(r, "chart")

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	width := 0
	if value := r.URL.Query().Get("width"); value != "" {
		width, err = strconv.Atoi(value)
		if err != nil || width <= 0 {
			writeError(w, r, types.ErrInvalidChartWidth)
			return
		}
	}

	data, err := h.dashboard.RenderChart(ctx, filter, chartID, width)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")

	exportFormat := strings.ToLower(r.URL.Query().Get("format"))
	if exportFormat == "" {
		exportFormat = usecase.FormatCSV
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	mimeType, err := h.dashboard.ExportDataset(ctx, filter, dataset, exportFormat, &buf)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", dataset, exportFormat)
	writeAttachment(w, mimeType, filename, buf.Bytes())
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	filter, err := usecase.ParseFilter(req.From, req.To, req.Products)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.dashboard.GenerateReport(ctx, filter, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info().
		Str("report_id", result.ID).
		Str("filename", result.Filename).
		Int("pages", result.PageCount).
		Int("size", len(result.Data)).
		Msg("report generated")

	w.Header().Set("X-Report-ID", result.ID)
	w.Header().Set("X-Report-Pages", strconv.Itoa(result.PageCount))
	writeAttachment(w, result.MIMEType, result.Filename, result.Data)
}

// filterFromQuery lê from, to e products (separados por vírgula) da query string.
func filterFromQuery(r *http.Request) (entity.Filter, error) {
	query := r.URL.Query()

	var products []string
	if _, ok := query["products"]; ok {
		products = []string{}
		for _, value := range query["products"] {
			products = append(products, strings.Split(value, ",")...)
		}
	}

	return usecase.ParseFilter(query.Get("from"), query.Get("to"), products)
}

func writeAttachment(w http.ResponseWriter, mimeType, filename string, data []byte) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// writeError traduz erros de validação em 4xx; falhas do pipeline viram 500 com a mensagem ao usuário.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = types.UserMessage(err)
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}

	writeJSON(w, r, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidDateLiteral),
		errors.Is(err, types.ErrInvalidDateRange),
		errors.Is(err, types.ErrInvalidChartWidth),
		errors.Is(err, types.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnknownChart),
		errors.Is(err, types.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}
