package physiotherapy

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/workflow"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/physiotherapy", auth.RequireRole("admin", "physician", "therapist"))

	g.POST("/patients", h.RegisterPatient)
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/:id", h.GetPatient)
	g.PUT("/patients/:id/status", h.UpdatePatientStatus)
	g.POST("/patients/:id/discharge", h.DischargePatient)
	g.POST("/patients/:id/assessments", h.RecordAssessment)
	g.GET("/patients/:id/assessments", h.ListAssessments)
	g.GET("/patients/:id/sessions", h.ListSessionsByPatient)

	g.POST("/sessions", h.ScheduleSession)
	g.GET("/sessions", h.ListSessionsByDate)
	g.GET("/sessions/:id", h.GetSession)
	g.PUT("/sessions/:id/status", h.UpdateSessionStatus)

	g.GET("/availability", h.CheckAvailability)

	g.POST("/therapists", h.CreateTherapist)
	g.GET("/therapists", h.ListTherapists)
	g.PUT("/therapists/:id/status", h.UpdateTherapistStatus)

	g.POST("/equipment", h.CreateEquipment)
	g.GET("/equipment", h.ListEquipment)
	g.PUT("/equipment/:id/status", h.UpdateEquipmentStatus)
}

func svcError(err error) error {
	return echo.NewHTTPError(workflow.HTTPStatus(err), err.Error())
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterPatient(c.Request().Context(), &p); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdatePatientStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.UpdatePatientStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, p)
}

type dischargeRequest struct {
	Note *string `json:"note"`
}

func (h *Handler) DischargePatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dischargeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.DischargePatient(c.Request().Context(), id, req.Note)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) RecordAssessment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var a Assessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordAssessment(c.Request().Context(), id, &a); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAssessments(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListAssessments(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ScheduleSession(c echo.Context) error {
	var s Session
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ScheduleSession(c.Request().Context(), &s); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	s, err := h.svc.GetSession(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ListSessionsByPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListSessionsByPatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListSessionsByDate(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}
	items, err := h.svc.ListSessionsByDate(c.Request().Context(), date)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, items)
}

type sessionStatusRequest struct {
	Status        string  `json:"status"`
	TreatmentNote *string `json:"treatment_note"`
}

func (h *Handler) UpdateSessionStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req sessionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := h.svc.UpdateSessionStatus(c.Request().Context(), id, req.Status, req.TreatmentNote)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) CheckAvailability(c echo.Context) error {
	therapistID, err := uuid.Parse(c.QueryParam("therapist_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid therapist_id")
	}
	duration, err := strconv.Atoi(c.QueryParam("duration_minutes"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid duration_minutes")
	}
	available, err := h.svc.CheckAvailability(c.Request().Context(), therapistID,
		c.QueryParam("date"), c.QueryParam("start_time"), duration)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"available": available})
}

func (h *Handler) CreateTherapist(c echo.Context) error {
	var t Therapist
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTherapist(c.Request().Context(), &t); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListTherapists(c echo.Context) error {
	items, err := h.svc.ListTherapists(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateTherapistStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.svc.UpdateTherapistStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateEquipment(c echo.Context) error {
	var e Equipment
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateEquipment(c.Request().Context(), &e); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListEquipment(c echo.Context) error {
	items, err := h.svc.ListEquipment(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateEquipmentStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.UpdateEquipmentStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, e)
}
