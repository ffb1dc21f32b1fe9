package billing

import (
	"bytes"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/billing/ledger", h.GetLedger)
	api.GET("/billing/ledger.csv", h.ExportLedgerCSV)
	api.GET("/billing/summary", h.GetSummary)
	api.PUT("/billing/overrides", h.SetOverride)
	api.GET("/billing/overrides", h.ListOverrides)
}

func filterFromQuery(c echo.Context) Filter {
	return Filter{
		Doctor:  c.QueryParam("doctor"),
		Patient: c.QueryParam("patient"),
		Insurer: c.QueryParam("insurer"),
	}
}

func (h *Handler) GetLedger(c echo.Context) error {
	ledger, err := h.svc.Ledger(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ledger)
}

func (h *Handler) ExportLedgerCSV(c echo.Context) error {
	ledger, err := h.svc.Ledger(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	if err := WriteCSV(ledger, &buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="billing_summary.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// summaryResponse carries the numeric totals plus display strings. The
// display strings exist only for presentation; they round-trip through
// ParseUSD.
type summaryResponse struct {
	Rows    int    `json:"rows"`
	Totals  Totals `json:"totals"`
	Display struct {
		DoctorCharge  string `json:"doctor_charge"`
		InsurancePays string `json:"insurance_pays"`
		PatientPays   string `json:"patient_pays"`
	} `json:"display"`
}

func (h *Handler) GetSummary(c echo.Context) error {
	ledger, err := h.svc.Ledger(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := summaryResponse{Rows: len(ledger.Rows), Totals: ledger.Totals}
	resp.Display.DoctorCharge = FormatUSD(ledger.Totals.DoctorCharge)
	resp.Display.InsurancePays = FormatUSD(ledger.Totals.InsurancePays)
	resp.Display.PatientPays = FormatUSD(ledger.Totals.PatientPays)
	return c.JSON(http.StatusOK, resp)
}

type setOverrideRequest struct {
	PatientID  string          `json:"patient_id"`
	DoctorID   uuid.UUID       `json:"doctor_id"`
	ICDCode    string          `json:"icd_code"`
	CustomRate decimal.Decimal `json:"custom_rate"`
}

func (h *Handler) SetOverride(c echo.Context) error {
	var req setOverrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o := &Override{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		ICDCode:   req.ICDCode,
		Amount:    req.CustomRate,
	}
	if err := h.svc.SetOverride(c.Request().Context(), o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListOverrides(c echo.Context) error {
	overrides, err := h.svc.ListOverrides(c.Request().Context(), c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, overrides)
}
