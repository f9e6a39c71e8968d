package report

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/pkg/pagination"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/lab-reports", h.ListLabReports)
	g.GET("/lab-reports/:id", h.GetLabReport)
	g.POST("/lab-reports", h.CreateLabReport)
	g.DELETE("/lab-reports/:id", h.DeleteLabReport)

	g.GET("/doctor-reports", h.ListDoctorReports)
	g.GET("/doctor-reports/:id", h.GetDoctorReport)
	g.POST("/doctor-reports", h.CreateDoctorReport)
	g.PUT("/doctor-reports/:id", h.UpdateDoctorReport)
	g.DELETE("/doctor-reports/:id", h.DeleteDoctorReport)
}

// -- LabReport --

func (h *Handler) CreateLabReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var lr LabReport
	if err := c.Bind(&lr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	lr.UserID = uid
	if err := h.svc.CreateLabReport(c.Request().Context(), &lr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusCreated, lr)
}

func (h *Handler) GetLabReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	lr, err := h.svc.GetLabReport(c.Request().Context(), uid, id)
	if err != nil {
		return ownershipError(err)
	}
	return response.OK(c, http.StatusOK, lr)
}

func (h *Handler) ListLabReports(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListLabReports(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return response.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteLabReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteLabReport(c.Request().Context(), uid, id); err != nil {
		return ownershipError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- DoctorReport --

func (h *Handler) CreateDoctorReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var dr DoctorReport
	if err := c.Bind(&dr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dr.UserID = uid
	if err := h.svc.CreateDoctorReport(c.Request().Context(), &dr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusCreated, dr)
}

func (h *Handler) GetDoctorReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dr, err := h.svc.GetDoctorReport(c.Request().Context(), uid, id)
	if err != nil {
		return ownershipError(err)
	}
	return response.OK(c, http.StatusOK, dr)
}

func (h *Handler) ListDoctorReports(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctorReports(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return response.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateDoctorReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var dr DoctorReport
	if err := c.Bind(&dr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dr.ID = id
	if err := h.svc.UpdateDoctorReport(c.Request().Context(), uid, &dr); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return ownershipError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusOK, dr)
}

func (h *Handler) DeleteDoctorReport(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteDoctorReport(c.Request().Context(), uid, id); err != nil {
		return ownershipError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	return uid, nil
}

func ownershipError(err error) error {
	if errors.Is(err, ErrForbidden) {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}
	return echo.NewHTTPError(http.StatusNotFound, "report not found")
}
