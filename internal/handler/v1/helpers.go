package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/appointment"
	"github.com/caredesk/hospital-api/internal/domain/department"
	"github.com/caredesk/hospital-api/internal/domain/doctor"
	"github.com/caredesk/hospital-api/internal/domain/patient"
	"github.com/caredesk/hospital-api/internal/handler/middleware"
	"github.com/caredesk/hospital-api/internal/service"
)

type APIResponse[T any] struct {
	Data T `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondServiceError translates the service/domain error taxonomy into
// status codes. Duplicates and failed reference checks are client errors
// (400), matching the pre-check semantics; only genuinely unknown failures
// become 500, with the raw store error kept out of the response body.
func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, department.ErrDepartmentNameTaken),
		errors.Is(err, doctor.ErrCRMTaken),
		errors.Is(err, patient.ErrCPFTaken),
		errors.Is(err, appointment.ErrDuplicateBooking),
		errors.Is(err, doctor.ErrUnknownDepartment),
		errors.Is(err, appointment.ErrUnknownPatient),
		errors.Is(err, appointment.ErrUnknownDoctor):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrAccountLocked):
		respondError(c, http.StatusTooManyRequests, err.Error())

	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "access denied")

	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

// parseID parses a path identifier. Anything that is not a positive
// integer is a client error, never a server one.
func parseID(c *gin.Context, param string) (int64, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid "+param+": must be a positive integer")
		return 0, false
	}
	return id, true
}

// actorFrom assembles the audit actor for the current request. Claims are
// present only on authenticated routes.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{
		IP:        c.ClientIP(),
		RequestID: c.GetString(middleware.RequestIDKey),
	}
	if v, ok := c.Get(middleware.ClaimsKey); ok {
		if claims, ok := v.(*domain.Claims); ok {
			uid := claims.UserID
			actor.UserID = &uid
			actor.Role = string(claims.Role)
		}
	}
	return actor
}
