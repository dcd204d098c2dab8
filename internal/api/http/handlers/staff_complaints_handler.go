package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// StaffComplaintsHandler handles officer/admin triage endpoints.
type StaffComplaintsHandler struct {
	service *service.ComplaintService
}

// NewStaffComplaintsHandler constructs handler.
func NewStaffComplaintsHandler(complaintService *service.ComplaintService) *StaffComplaintsHandler {
	return &StaffComplaintsHandler{service: complaintService}
}

// ListAllComplaints GET /complaints/all/.
func (h *StaffComplaintsHandler) ListAllComplaints(c *fiber.Ctx) error {
	filter, err := parseComplaintFilter(c)
	if err != nil {
		return err
	}
	complaints, err := h.service.ListAll(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponses(complaints)})
}

// UpdateComplaintStatus PATCH|PUT /complaints/:id/update/. Fields other than
// status in the body are ignored.
func (h *StaffComplaintsHandler) UpdateComplaintStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	complaint, err := h.service.UpdateStatus(c.Context(), principal, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// ComplaintStats GET /complaints/stats/.
func (h *StaffComplaintsHandler) ComplaintStats(c *fiber.Ctx) error {
	counts, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

func parseComplaintFilter(c *fiber.Ctx) (service.ComplaintListFilter, error) {
	filter := service.ComplaintListFilter{}
	if status := c.Query("status"); status != "" {
		parsed := domain.ComplaintStatus(status)
		filter.Status = &parsed
	}
	if citizen := c.Query("citizen"); citizen != "" {
		filter.CitizenUsername = &citizen
	}

	createdOn, err := parseDate(c.Query("created_at"))
	if err != nil {
		return filter, apperrors.NewValidationError("invalid created_at, expected YYYY-MM-DD", nil)
	}
	filter.CreatedOn = createdOn

	from, err := parseTime(c.Query("created_from"))
	if err != nil {
		return filter, apperrors.NewValidationError("invalid created_from, expected RFC3339 timestamp", nil)
	}
	filter.CreatedFrom = from

	to, err := parseTime(c.Query("created_to"))
	if err != nil {
		return filter, apperrors.NewValidationError("invalid created_to, expected RFC3339 timestamp", nil)
	}
	filter.CreatedTo = to

	return filter, nil
}
