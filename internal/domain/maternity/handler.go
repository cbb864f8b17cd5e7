package maternity

import (
	"net/http"

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
	g := api.Group("/maternity", auth.RequireRole("admin", "physician", "nurse", "midwife"))

	g.POST("/patients", h.RegisterPatient)
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/:id", h.GetPatient)
	g.POST("/patients/:id/visits", h.AddPrenatalVisit)
	g.GET("/patients/:id/visits", h.ListPrenatalVisits)
	g.POST("/patients/:id/admission", h.AdmitForLabor)
	g.POST("/patients/:id/labor-progress", h.RecordLaborProgress)
	g.GET("/patients/:id/labor-progress", h.ListLaborProgress)
	g.POST("/patients/:id/deliveries", h.RecordDelivery)
	g.GET("/patients/:id/deliveries", h.ListDeliveries)
	g.GET("/patients/:id/newborns", h.ListNewbornsByMother)
	g.POST("/patients/:id/checkups", h.RecordPostpartumCheckup)
	g.GET("/patients/:id/checkups", h.ListPostpartumCheckups)
	g.POST("/patients/:id/discharge", h.DischargePatient)

	g.POST("/deliveries/:id/newborns", h.AddNewborn)
	g.GET("/deliveries/:id/newborns", h.ListNewbornsByDelivery)
	g.PUT("/newborns/:id/status", h.UpdateNewbornStatus)
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

func (h *Handler) AddPrenatalVisit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var v PrenatalVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddPrenatalVisit(c.Request().Context(), id, &v); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) ListPrenatalVisits(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListPrenatalVisits(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AdmitForLabor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req AdmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.AdmitForLabor(c.Request().Context(), id, req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) RecordLaborProgress(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var l LaborProgress
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordLaborProgress(c.Request().Context(), id, &l); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) ListLaborProgress(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListLaborProgress(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) RecordDelivery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var d Delivery
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RecordDelivery(c.Request().Context(), id, &d)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"patient": p, "delivery": d})
}

func (h *Handler) ListDeliveries(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListDeliveries(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddNewborn(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var n Newborn
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddNewborn(c.Request().Context(), id, &n); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) ListNewbornsByDelivery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListNewbornsByDelivery(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListNewbornsByMother(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListNewbornsByMother(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type newbornStatusRequest struct {
	Status     string  `json:"status"`
	NICUReason *string `json:"nicu_reason"`
}

func (h *Handler) UpdateNewbornStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req newbornStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	n, err := h.svc.UpdateNewbornStatus(c.Request().Context(), id, req.Status, req.NICUReason)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) RecordPostpartumCheckup(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var checkup PostpartumCheckup
	if err := c.Bind(&checkup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RecordPostpartumCheckup(c.Request().Context(), id, &checkup)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"patient": p, "checkup": checkup})
}

func (h *Handler) ListPostpartumCheckups(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListPostpartumCheckups(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
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
