package app

import (
	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"
	"github.com/Saieshwar5/sangam-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MembershipHandler REST surface of the join-request flow
type MembershipHandler struct {
	membershipUC *MembershipUseCase
}

// NewMembershipHandler create MembershipHandler
func NewMembershipHandler(membershipUC *MembershipUseCase) *MembershipHandler {
	return &MembershipHandler{membershipUC: membershipUC}
}

func authedUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)
	return userID
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}

// RequestJoin POST /groups/:groupId/join-requests
func (h *MembershipHandler) RequestJoin(c *fiber.Ctx) error {
	req, err := h.membershipUC.RequestJoin(c.Context(), c.Params("groupId"), authedUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// ListPending GET /groups/:groupId/join-requests
func (h *MembershipHandler) ListPending(c *fiber.Ctx) error {
	reqs, err := h.membershipUC.ListPending(c.Context(), c.Params("groupId"), authedUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"join_requests": reqs})
}

// Accept PUT /join-requests/:requestId/accept
func (h *MembershipHandler) Accept(c *fiber.Ctx) error {
	req, err := h.membershipUC.Accept(c.Context(), c.Params("requestId"), authedUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(req)
}
