package family

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/family", h.GetFamily)
	g.POST("/family/members", h.AddManagedMember)
	g.PUT("/family/members/:id", h.UpdateMember)
	g.DELETE("/family/members/:id", h.RemoveMember)
	g.POST("/family/members/:id/leave", h.Leave)
	g.POST("/family/invite", h.Invite)
	g.GET("/family/invites", h.ListInvites)
	g.POST("/family/invites/:id/accept", h.AcceptInvite)
	g.POST("/family/invites/:id/reject", h.RejectInvite)
}

func (h *Handler) GetFamily(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	view, err := h.svc.GetFamily(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return response.OK(c, http.StatusOK, view)
}

func (h *Handler) AddManagedMember(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var m Member
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddManagedMember(c.Request().Context(), uid, &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusCreated, m)
}

func (h *Handler) UpdateMember(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd MemberUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.UpdateMember(c.Request().Context(), uid, id, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return ownershipError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusOK, m)
}

func (h *Handler) RemoveMember(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.RemoveMember(c.Request().Context(), uid, id); err != nil {
		return ownershipError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Leave(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Leave(c.Request().Context(), uid, id); err != nil {
		return ownershipError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Invite(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req InviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.Invite(c.Request().Context(), uid, auth.UserEmailFromContext(c.Request().Context()), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateInvite) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusCreated, m)
}

func (h *Handler) ListInvites(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}
	email := auth.UserEmailFromContext(c.Request().Context())
	invites, err := h.svc.ListInvites(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return response.OK(c, http.StatusOK, invites)
}

func (h *Handler) AcceptInvite(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	email := auth.UserEmailFromContext(c.Request().Context())
	m, err := h.svc.AcceptInvite(c.Request().Context(), uid, email, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return ownershipError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusOK, m)
}

func (h *Handler) RejectInvite(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	email := auth.UserEmailFromContext(c.Request().Context())
	if err := h.svc.RejectInvite(c.Request().Context(), email, id); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return ownershipError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
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
	return echo.NewHTTPError(http.StatusNotFound, "member not found")
}
