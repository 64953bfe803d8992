package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/hospital-api/internal/domain/department"
	"github.com/caredesk/hospital-api/internal/service"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

type DepartmentHandler struct {
	svc     *service.DepartmentService
	metrics *metrics.Collector
}

func NewDepartmentHandler(svc *service.DepartmentService, m *metrics.Collector) *DepartmentHandler {
	return &DepartmentHandler{svc: svc, metrics: m}
}

func (h *DepartmentHandler) Register(g *gin.RouterGroup) {
	g.GET("/departments", h.List)
	g.GET("/departments/:id", h.Get)
	g.POST("/departments", h.Create)
	g.PUT("/departments/:id", h.Update)
	g.DELETE("/departments/:id", h.Delete)
}

type departmentRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *DepartmentHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req departmentRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Create(c.Request.Context(), &department.CreateDepartmentCommand{
		Name:     req.Name,
		Location: req.Location,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNameTaken) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("department").Inc()
		}
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsCreatedTotal.WithLabelValues("department").Inc()
	respondCreated(c, d)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req departmentRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Update(c.Request.Context(), id, &department.UpdateDepartmentCommand{
		Name:     req.Name,
		Location: req.Location,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNameTaken) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("department").Inc()
		}
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Delete(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsDeletedTotal.WithLabelValues("department").Inc()
	respondOK(c, d)
}
