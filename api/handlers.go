/*
handlers.go - HTTP API handlers for the overtime engine

PURPOSE:
  Exposes the record book, the pay calculator and the monthly aggregator
  via REST API. Handles HTTP request/response, JSON serialization, and
  delegates to domain logic.

ENDPOINTS:
  Records:
    GET    /api/records                List records (?month=YYYY-MM)
    POST   /api/records                Save a record (?overwrite=true)
    DELETE /api/records                Clear all records
    GET    /api/records/{id}           Get one record
    PUT    /api/records/{id}           Edit a record (?overwrite=true)
    DELETE /api/records/{id}           Delete a record
    GET    /api/records/{id}/pay       Premium pay for a record

  Pay:
    POST   /api/pay/preview            Provisional pay for unsaved input

  Months:
    GET    /api/months                 Months with records, newest first
    GET    /api/summary/{month}        Monthly summary and salary summary
    GET    /api/workdays/{month}       Statutory working days

  Calendar:
    GET    /api/holidays               Holidays of a year (?year=)
    GET    /api/holidays/{date}        Classify one date

  Settings:
    GET/PUT /api/settings/overtime
    GET/PUT /api/settings/salary
    GET     /api/settings/salary/examples  One-hour premium examples

ARCHITECTURE:
  Handler struct holds all dependencies. "Today" comes from the injected
  Clock so responses are reproducible under --today.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid time, date, month key or settings
  - 404: Record not found
  - 409: Date already has a record (body carries existing_id)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/factory"
	"github.com/warp/overtime-engine/holiday"
	"github.com/warp/overtime-engine/monthly"
	"github.com/warp/overtime-engine/payroll"
	"github.com/warp/overtime-engine/worktime"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Book       *worktime.Book
	Settings   core.SettingsStore
	Calendar   *holiday.Calendar
	Calculator *payroll.Calculator
	Clock      core.Clock
	Logger     *slog.Logger
}

// NewHandler creates a handler over a store implementing both storage
// interfaces.
func NewHandler(book *worktime.Book, settings core.SettingsStore, cal *holiday.Calendar, clock core.Clock) *Handler {
	return &Handler{
		Book:       book,
		Settings:   settings,
		Calendar:   cal,
		Calculator: payroll.NewCalculator(cal),
		Clock:      clock,
		Logger:     slog.Default(),
	}
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns all records, or one month's with ?month=.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		recs []core.WorkRecord
		err  error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		key, perr := core.ParseMonthKey(month)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "Invalid month", perr)
			return
		}
		recs, err = h.Book.RecordsInMonth(ctx, key)
	} else {
		recs, err = h.Book.Records(ctx)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": toRecordDTOs(recs)})
}

// CreateRecord saves a new record.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.buildRecord(r, worktime.NewRecordID(), req)
	if err != nil {
		h.writeDomainError(w, "Invalid record", err)
		return
	}

	saved, err := h.Book.Save(ctx, rec, overwriteRequested(r))
	if err != nil {
		h.writeDomainError(w, "Failed to save record", err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordDTO(saved))
}

// ClearRecords removes every record.
func (h *Handler) ClearRecords(w http.ResponseWriter, r *http.Request) {
	if err := h.Book.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear records", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRecord returns one record.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Book.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get record", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTO(rec))
}

// UpdateRecord replaces the raw input of a record and re-derives it
// with the current overtime settings.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.Book.Get(ctx, id); err != nil {
		h.writeDomainError(w, "Failed to get record", err)
		return
	}

	var req SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.buildRecord(r, id, req)
	if err != nil {
		h.writeDomainError(w, "Invalid record", err)
		return
	}

	saved, err := h.Book.Save(ctx, rec, overwriteRequested(r))
	if err != nil {
		h.writeDomainError(w, "Failed to save record", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTO(saved))
}

// DeleteRecord removes one record.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Book.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRecordPay returns the premium pay of a saved record.
func (h *Handler) GetRecordPay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.Book.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get record", err)
		return
	}

	pay, err := h.pay(r, rec)
	if err != nil {
		h.writeDomainError(w, "Failed to calculate pay", err)
		return
	}
	writeJSON(w, http.StatusOK, pay)
}

// PreviewPay derives hours and pay for input that has not been saved.
func (h *Handler) PreviewPay(w http.ResponseWriter, r *http.Request) {
	var req SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.buildRecord(r, "", req)
	if err != nil {
		h.writeDomainError(w, "Invalid record", err)
		return
	}

	pay, err := h.pay(r, rec)
	if err != nil {
		h.writeDomainError(w, "Failed to calculate pay", err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{Record: toRecordDTO(rec), Pay: pay})
}

// =============================================================================
// MONTH HANDLERS
// =============================================================================

// ListMonths returns the months that have records plus the current one.
func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Book.Records(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	months := monthly.AvailableMonths(recs, h.Clock.Today())
	dtos := make([]MonthDTO, len(months))
	for i, m := range months {
		dtos[i] = MonthDTO{Key: m.String(), Label: m.Label()}
	}
	writeJSON(w, http.StatusOK, map[string]any{"months": dtos})
}

// GetSummary returns the monthly hour summary and the salary summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := core.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	recs, err := h.Book.RecordsInMonth(ctx, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}
	salary, err := h.Settings.LoadSalarySettings(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load salary settings", err)
		return
	}

	today := h.Clock.Today()
	summary := monthly.Aggregate(recs, key, salary, h.Calendar, today)
	salarySummary, err := h.Calculator.SummarizeSalary(recs, monthly.ResolveSalary(salary, h.Calendar, today))
	if err != nil {
		h.writeDomainError(w, "Failed to summarize salary", err)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		Summary: toMonthlySummaryDTO(summary),
		Salary:  toSalarySummaryDTO(salarySummary),
	})
}

// GetWorkdays returns the statutory working days of a month.
func (h *Handler) GetWorkdays(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	var inMonth []core.Holiday
	for _, hd := range h.Calendar.GetHolidays(key.Year()) {
		if key.Contains(hd.Date) {
			inMonth = append(inMonth, hd)
		}
	}

	writeJSON(w, http.StatusOK, WorkdaysResponse{
		Month:                key.String(),
		StatutoryWorkingDays: monthly.StatutoryWorkingDays(h.Calendar, key.Year(), key.Month()),
		Holidays:             toHolidayDTOs(inMonth),
	})
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListHolidays returns the holidays of ?year= (default: this year).
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := h.Clock.Today().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	_, err := h.Calendar.NationalHolidays(year)
	if err != nil && !core.IsApproximation(err) {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}

	writeJSON(w, http.StatusOK, HolidaysResponse{
		Year:        year,
		Approximate: core.IsApproximation(err),
		Holidays:    toHolidayDTOs(h.Calendar.GetHolidays(year)),
	})
}

// ClassifyDate reports whether work on a date is paid as holiday work.
func (h *Handler) ClassifyDate(w http.ResponseWriter, r *http.Request) {
	d, err := core.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	writeJSON(w, http.StatusOK, toClassificationDTO(d, h.Calendar.Classify(d)))
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetOvertimeSettings returns the overtime settings.
func (h *Handler) GetOvertimeSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.LoadOvertimeSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load overtime settings", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.OvertimeDocumentOf(s))
}

// PutOvertimeSettings replaces the overtime settings. Omitted fields
// take the defaults.
func (h *Handler) PutOvertimeSettings(w http.ResponseWriter, r *http.Request) {
	var doc factory.OvertimeDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	s, err := doc.Build()
	if err != nil {
		h.writeDomainError(w, "Invalid overtime settings", err)
		return
	}
	if err := h.Settings.SaveOvertimeSettings(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save overtime settings", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.OvertimeDocumentOf(s))
}

// GetSalarySettings returns the salary settings.
func (h *Handler) GetSalarySettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.LoadSalarySettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load salary settings", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.SalaryDocumentOf(s))
}

// PutSalarySettings replaces the salary settings. Omitted fields take
// the defaults.
func (h *Handler) PutSalarySettings(w http.ResponseWriter, r *http.Request) {
	var doc factory.SalaryDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	s, err := doc.Build()
	if err != nil {
		h.writeDomainError(w, "Invalid salary settings", err)
		return
	}
	if err := h.Settings.SaveSalarySettings(r.Context(), s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save salary settings", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.SalaryDocumentOf(s))
}

// GetPremiumExamples returns the pay for one hour of each premium kind.
func (h *Handler) GetPremiumExamples(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.LoadSalarySettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load salary settings", err)
		return
	}
	s = monthly.ResolveSalary(s, h.Calendar, h.Clock.Today())
	writeJSON(w, http.StatusOK, toPremiumExamplesDTO(payroll.Examples(s)))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) buildRecord(r *http.Request, id string, req SaveRecordRequest) (core.WorkRecord, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.WorkRecord{}, err
	}
	settings, err := h.Settings.LoadOvertimeSettings(r.Context())
	if err != nil {
		return core.WorkRecord{}, err
	}

	breakMinutes := settings.DefaultBreakMinutes
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}
	if breakMinutes < 0 {
		return core.WorkRecord{}, &core.SettingsError{Field: "break_minutes", Message: "must not be negative"}
	}

	shift := worktime.Shift{
		Start:        req.StartTime,
		End:          req.EndTime,
		BreakMinutes: breakMinutes,
		Overnight:    req.Overnight,
	}
	return worktime.BuildRecord(id, date, shift, settings)
}

func (h *Handler) pay(r *http.Request, rec core.WorkRecord) (PayDTO, error) {
	salary, err := h.Settings.LoadSalarySettings(r.Context())
	if err != nil {
		return PayDTO{}, err
	}
	salary = monthly.ResolveSalary(salary, h.Calendar, h.Clock.Today())

	pay, err := h.Calculator.CalculatePay(rec, salary)
	if err != nil {
		return PayDTO{}, err
	}
	return toPayDTO(pay, h.Calendar.Classify(rec.Date), rec.Date), nil
}

func overwriteRequested(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("overwrite"))
	return ok
}

// writeDomainError maps core errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	var dup *core.DuplicateDateError
	switch {
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, DuplicateResponse{
			Error:      dup.Error(),
			Date:       dup.Date.String(),
			ExistingID: dup.ExistingID,
		})
	case core.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case core.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Logger.Error(message, "error", err)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
