package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/hospital-api/internal/domain/patient"
	"github.com/caredesk/hospital-api/internal/service"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

type PatientHandler struct {
	svc     *service.PatientService
	metrics *metrics.Collector
}

func NewPatientHandler(svc *service.PatientService, m *metrics.Collector) *PatientHandler {
	return &PatientHandler{svc: svc, metrics: m}
}

func (h *PatientHandler) Register(g *gin.RouterGroup) {
	g.GET("/patients", h.List)
	g.GET("/patients/:id", h.Get)
	g.POST("/patients", h.Create)
	g.PUT("/patients/:id", h.Update)
	g.DELETE("/patients/:id", h.Delete)
}

type patientRequest struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
}

func (h *PatientHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &patient.CreatePatientCommand{
		Name:      req.Name,
		CPF:       req.CPF,
		BirthDate: req.BirthDate,
		Address:   req.Address,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, patient.ErrCPFTaken) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("patient").Inc()
		}
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsCreatedTotal.WithLabelValues("patient").Inc()
	respondCreated(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, &patient.UpdatePatientCommand{
		Name:      req.Name,
		CPF:       req.CPF,
		BirthDate: req.BirthDate,
		Address:   req.Address,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, patient.ErrCPFTaken) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("patient").Inc()
		}
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Delete(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsDeletedTotal.WithLabelValues("patient").Inc()
	respondOK(c, p)
}
