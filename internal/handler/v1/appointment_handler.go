package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/hospital-api/internal/domain/appointment"
	"github.com/caredesk/hospital-api/internal/service"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

type AppointmentHandler struct {
	svc     *service.AppointmentService
	metrics *metrics.Collector
}

func NewAppointmentHandler(svc *service.AppointmentService, m *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, metrics: m}
}

func (h *AppointmentHandler) Register(g *gin.RouterGroup) {
	g.GET("/appointments", h.List)
	g.GET("/appointments/:id", h.Get)
	g.POST("/appointments", h.Create)
	g.PUT("/appointments/:id", h.Update)
	g.DELETE("/appointments/:id", h.Delete)
}

type appointmentRequest struct {
	PatientID       int64  `json:"patient_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	DurationMinutes int    `json:"duration_minutes"`
	Diagnosis       string `json:"diagnosis"`
	Notes           string `json:"notes"`
}

func (h *AppointmentHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.Create(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: req.DurationMinutes,
		Diagnosis:       req.Diagnosis,
		Notes:           req.Notes,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, appointment.ErrDuplicateBooking) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("appointment").Inc()
		}
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsCreatedTotal.WithLabelValues("appointment").Inc()
	respondCreated(c, a)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.Update(c.Request.Context(), id, &appointment.UpdateAppointmentCommand{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: req.DurationMinutes,
		Diagnosis:       req.Diagnosis,
		Notes:           req.Notes,
	}, actorFrom(c))
	if err != nil {
		if errors.Is(err, appointment.ErrDuplicateBooking) {
			h.metrics.DuplicatesRejectedTotal.WithLabelValues("appointment").Inc()
		}
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.Delete(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.metrics.RecordsDeletedTotal.WithLabelValues("appointment").Inc()
	respondOK(c, a)
}
