package emergency

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
	g := api.Group("/emergency", auth.RequireRole("admin", "physician", "nurse"))

	g.POST("/patients", h.RegisterPatient)
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/:id", h.GetPatient)
	g.PUT("/patients/:id/status", h.UpdatePatientStatus)
	g.PUT("/patients/:id/staff", h.AssignStaff)
	g.POST("/patients/:id/triage", h.PerformTriage)
	g.GET("/patients/:id/triage", h.ListTriageAssessments)
	g.POST("/patients/:id/bed", h.AssignBed)
	g.POST("/patients/:id/disposition", h.RecordDisposition)
	g.POST("/patients/:id/orders", h.CreateOrder)
	g.GET("/patients/:id/orders", h.ListOrders)
	g.PUT("/orders/:id/status", h.UpdateOrderStatus)

	g.GET("/queue", h.Queue)

	g.POST("/beds", h.CreateBed)
	g.GET("/beds", h.ListBeds)
	g.PUT("/beds/:id/status", h.UpdateBedStatus)
}

func svcError(err error) error {
	return echo.NewHTTPError(workflow.HTTPStatus(err), err.Error())
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
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), c.QueryParam("status"), c.QueryParam("triage_level"), pg.Limit, pg.Offset)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Queue(c echo.Context) error {
	items, err := h.svc.Queue(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdatePatientStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
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

type staffRequest struct {
	AttendingDoctor *string `json:"attending_doctor"`
	AssignedNurse   *string `json:"assigned_nurse"`
}

func (h *Handler) AssignStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.AssignStaff(c.Request().Context(), id, req.AttendingDoctor, req.AssignedNurse)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) PerformTriage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a TriageAssessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.PerformTriage(c.Request().Context(), id, &a)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListTriageAssessments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListTriageAssessments(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type assignBedRequest struct {
	BedID uuid.UUID `json:"bed_id"`
}

func (h *Handler) AssignBed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req assignBedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.BedID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bed_id is required")
	}
	p, err := h.svc.AssignBed(c.Request().Context(), id, req.BedID)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, p)
}

type dispositionRequest struct {
	Decision string  `json:"decision"`
	By       string  `json:"decided_by"`
	Note     *string `json:"note"`
}

func (h *Handler) RecordDisposition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req dispositionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RecordDisposition(c.Request().Context(), id, req.Decision, req.By, req.Note)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var o ClinicalOrder
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o.PatientID = id
	if err := h.svc.CreateOrder(c.Request().Context(), &o); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) ListOrders(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListOrders(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type orderStatusRequest struct {
	Status string  `json:"status"`
	Result *string `json:"result"`
}

func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o, err := h.svc.UpdateOrderStatus(c.Request().Context(), id, req.Status, req.Result)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) CreateBed(c echo.Context) error {
	var b Bed
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBed(c.Request().Context(), &b); err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) ListBeds(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListBeds(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateBedStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.UpdateBedStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, b)
}
