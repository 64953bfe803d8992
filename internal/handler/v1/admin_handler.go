package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/caredesk/hospital-api/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Register(g *gin.RouterGroup) {
	g.POST("/admin/departments/reassign", h.ReassignDoctors)
}

type reassignRequest struct {
	FromDepartmentID int64 `json:"from_department_id"`
	ToDepartmentID   int64 `json:"to_department_id"`
}

type reassignResponse struct {
	DoctorsMoved int64 `json:"doctors_moved"`
}

// ReassignDoctors moves every doctor between two departments atomically.
func (h *AdminHandler) ReassignDoctors(c *gin.Context) {
	var req reassignRequest
	if !bindJSON(c, &req) {
		return
	}

	moved, err := h.svc.ReassignDoctors(c.Request.Context(), req.FromDepartmentID, req.ToDepartmentID, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, reassignResponse{DoctorsMoved: moved})
}
