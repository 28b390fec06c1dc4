// Package api exposes the report pipeline over HTTP: one route returning the
// workbook as a download, one emailing it to the distribution list.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tepnology/sam-report/internal/config"
	"github.com/tepnology/sam-report/internal/email"
	"github.com/tepnology/sam-report/internal/pkg/httputil"
	"github.com/tepnology/sam-report/internal/pkg/logger"
	"github.com/tepnology/sam-report/internal/report"
	"github.com/tepnology/sam-report/internal/sam"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers holds the wired pipeline collaborators behind the report routes.
type Handlers struct {
	cfg        *config.Config
	fetcher    *sam.Fetcher
	dispatcher *email.Dispatcher

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

// NewHandlers wires the handlers over the given collaborators.
func NewHandlers(cfg *config.Config, fetcher *sam.Fetcher, dispatcher *email.Dispatcher) *Handlers {
	return &Handlers{
		cfg:        cfg,
		fetcher:    fetcher,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}

// artifact is one assembled report: the encoded workbook plus the metadata
// the delivery path needs.
type artifact struct {
	RunDate   time.Time
	Filename  string
	Data      []byte
	Summaries []email.SheetSummary
}

// buildReport runs the fetch → flatten → build → encode pipeline once. The
// same flow backs both routes; only delivery differs.
func (h *Handlers) buildReport(ctx context.Context, runID string) (*artifact, error) {
	now := h.now().UTC()
	from, to := sam.WindowFor(now, h.cfg.SAM.MonthsBack, h.cfg.SAM.MonthsForward)

	logger.Info("report run started",
		"run_id", runID,
		"posted_from", sam.FormatDate(from),
		"posted_to", sam.FormatDate(to))

	results, err := h.fetcher.FetchAll(ctx, from, to, h.cfg.SAM.Codes)
	if err != nil {
		return nil, err
	}

	wb := report.NewWorkbook(h.cfg.Report.Creator, now)
	defer wb.Close()

	summaries := make([]email.SheetSummary, 0, len(results))
	for _, res := range results {
		rows := report.FlattenAll(res.Opportunities)
		if err := wb.AddSheet(res.Label, rows); err != nil {
			return nil, fmt.Errorf("building sheet %q: %w", res.Label, err)
		}
		summaries = append(summaries, email.SheetSummary{Name: res.Label, Count: len(rows)})
	}

	data, err := wb.Bytes()
	if err != nil {
		return nil, err
	}

	return &artifact{
		RunDate:   now,
		Filename:  report.Filename(now),
		Data:      data,
		Summaries: summaries,
	}, nil
}

// ExportReport assembles the report and streams it back as an .xlsx download.
func (h *Handlers) ExportReport(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()

	art, err := h.buildReport(r.Context(), runID)
	if err != nil {
		h.writeReportError(w, runID, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(art.Data)

	logger.Info("report exported", "run_id", runID, "filename", art.Filename, "bytes", len(art.Data))
}

// ExportAndSend assembles the report and emails it to every configured
// recipient, returning the per-recipient delivery summary.
func (h *Handlers) ExportAndSend(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()

	// Configuration failures fail fast, before any upstream call.
	recipients := h.cfg.Email.Recipients()
	if len(recipients) == 0 {
		logger.Error("report run misconfigured", "run_id", runID, "error", email.ErrNoRecipients.Error())
		httputil.Error(w, http.StatusInternalServerError, "recipient list is empty")
		return
	}

	art, err := h.buildReport(r.Context(), runID)
	if err != nil {
		h.writeReportError(w, runID, err)
		return
	}

	body, err := email.RenderReportBody(art.RunDate, h.cfg.Report.CompanyName, h.cfg.Report.LogoURL, art.Summaries)
	if err != nil {
		logger.Error("report body render failed", "run_id", runID, "error", err.Error())
		httputil.InternalError(w, err)
		return
	}

	subject := fmt.Sprintf("SAM Daily Report (%s)", art.RunDate.Format("2006-01-02"))
	summary, err := h.dispatcher.Deliver(r.Context(), recipients, subject, body, art.Filename, art.Data)
	if err != nil {
		logger.Error("report delivery aborted", "run_id", runID, "error", err.Error())
		httputil.InternalError(w, err)
		return
	}

	if !summary.OK {
		logger.Warn("report delivered with failures",
			"run_id", runID,
			"successes", len(summary.Successes),
			"failures", len(summary.Failures))
		httputil.JSON(w, http.StatusBadGateway, map[string]any{
			"ok":        false,
			"message":   "one or more emails failed to send",
			"successes": summary.Successes,
			"failures":  summary.Failures,
		})
		return
	}

	logger.Info("report delivered", "run_id", runID, "recipients", len(summary.Successes))
	httputil.OK(w, map[string]any{
		"ok":        true,
		"successes": summary.Successes,
	})
}

// writeReportError maps pipeline failures onto the response contract: fetch
// failures surface the upstream status (502 when unknown), everything else is
// a generic internal error.
func (h *Handlers) writeReportError(w http.ResponseWriter, runID string, err error) {
	var fe *sam.FetchError
	if errors.As(err, &fe) {
		status := fe.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		logger.Error("upstream fetch failed",
			"run_id", runID,
			"label", fe.Label,
			"status", fe.StatusCode,
			"error", fe.Error())
		httputil.Error(w, status, "upstream SAM API failed")
		return
	}

	logger.Error("report run failed", "run_id", runID, "error", err.Error())
	httputil.InternalError(w, err)
}
