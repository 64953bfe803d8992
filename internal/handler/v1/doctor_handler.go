package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/hospital-api/internal/domain/doctor"
	"github.com/caredesk/hospital-api/internal/service"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

type DoctorHandler struct {
	svc     *service.DoctorService
	metrics *metrics.Collector
}

func NewDoctorHandler(svc *service.DoctorService, m *metrics.Collector) *DoctorHandler {
	return &DoctorHandler{svc: svc, metrics: m}
}

func (h *DoctorHandler) Register(g *gin.RouterGroup) {
	g.GET("/doctors", h.List)
	g.GET("/doctors/:id", h.Get)
	g.POST("/doctors", h.Create)
	g.PUT("/doctors/:id", h.Update)
	g.DELETE("/doctors/:id", h.Delete)
}

type doctorRequest struct {
	Name         string `json:"name"`
	CRM          string `json:"crm"`
	Specialty    string `json:"specialty"`
	HireDate     string `json:"hire_date"`
	DepartmentID *int64 `json:"department_id"`
}

func (h *DoctorHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *DoctorHandler) Get(c *gin.Context) {
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

func (h *DoctorHandler) Create(c *gin.Context) {
	var req doctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Create(c.Request.Context(), &doctor.CreateDoctorCommand{
		Name:         req.Name,
		CRM:          req.CRM,
		Specialty:    req.Specialty,
		HireDate:     req.HireDate,
		DepartmentID: req.DepartmentID,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, doctor.ErrCRMTaken) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("doctor").Inc()
		}
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsCreatedTotal.WithLabelValues("doctor").Inc()
	respondCreated(c, d)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req doctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.Update(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		Name:         req.Name,
		CRM:          req.CRM,
		Specialty:    req.Specialty,
		HireDate:     req.HireDate,
		DepartmentID: req.DepartmentID,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, doctor.ErrCRMTaken) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("doctor").Inc()
		}
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Delete(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsDeletedTotal.WithLabelValues("doctor").Inc()
	respondOK(c, d)
}
