package insurance

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/insurance-rates", h.ListRates)
	api.GET("/insurance-providers", h.ListProviders)
	api.PUT("/insurance-rates", h.SetRate)
}

func (h *Handler) SetRate(c echo.Context) error {
	var rate Rate
	if err := c.Bind(&rate); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetRate(c.Request().Context(), &rate); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rate)
}

func (h *Handler) ListRates(c echo.Context) error {
	rates, err := h.svc.ListRates(c.Request().Context(), c.QueryParam("provider"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rates)
}

func (h *Handler) ListProviders(c echo.Context) error {
	providers, err := h.svc.ListProviders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, providers)
}
