package patient

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/pkg/pagination"
)

// DoctorNameFunc resolves a doctor id to a display name. Injected from the
// doctor domain to keep this package free of a cross-domain import.
type DoctorNameFunc func(ctx context.Context, id uuid.UUID) (string, error)

// CustomChargeFunc records a patient-specific charge override. Injected from
// the billing domain for the registration form's optional custom charge.
type CustomChargeFunc func(ctx context.Context, patientID string, doctorID uuid.UUID, icdCode string, amount decimal.Decimal) error

type Handler struct {
	svc          *Service
	doctorName   DoctorNameFunc
	customCharge CustomChargeFunc
}

func NewHandler(svc *Service, doctorName DoctorNameFunc, customCharge CustomChargeFunc) *Handler {
	return &Handler{svc: svc, doctorName: doctorName, customCharge: customCharge}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.RegisterPatient)
}

type registerRequest struct {
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	Disease           string           `json:"disease"`
	ICDCode           string           `json:"icd_code"`
	AssignedDoctorID  uuid.UUID        `json:"assigned_doctor_id"`
	InsuranceProvider string           `json:"insurance_provider"`
	CustomCharge      *decimal.Decimal `json:"custom_charge,omitempty"`
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	p, err := h.svc.Register(ctx, Registration{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Disease:           req.Disease,
		ICDCode:           req.ICDCode,
		AssignedDoctorID:  req.AssignedDoctorID,
		InsuranceProvider: req.InsuranceProvider,
	})
	if err != nil {
		var dup *DuplicateIDError
		if errors.As(err, &dup) {
			return echo.NewHTTPError(http.StatusConflict, dup.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.CustomCharge != nil {
		if err := h.customCharge(ctx, p.ID, p.AssignedDoctorID, p.ICDCode, *req.CustomCharge); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

// patientView is a Patient with the assigned doctor's name resolved for
// display.
type patientView struct {
	*Patient
	DoctorName string `json:"doctor_name"`
}

func (h *Handler) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)
	patients, total, err := h.svc.ListPatients(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	names := make(map[uuid.UUID]string)
	views := make([]patientView, 0, len(patients))
	for _, p := range patients {
		name, ok := names[p.AssignedDoctorID]
		if !ok {
			if name, err = h.doctorName(ctx, p.AssignedDoctorID); err != nil {
				name = "Unknown"
			}
			names[p.AssignedDoctorID] = name
		}
		views = append(views, patientView{Patient: p, DoctorName: name})
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(views, total, pg.Limit, pg.Offset))
}
