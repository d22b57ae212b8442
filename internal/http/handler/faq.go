package handler

import (
	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/service"
)

type voteRequest struct {
	Helpful bool `json:"helpful"`
}

type faqSubmitRequest struct {
	Question   string `json:"question"`
	CategoryID string `json:"category_id"`
}

type submissionDecisionRequest struct {
	Answer string `json:"answer"`
	Notes  string `json:"notes"`
}

// ListFAQs returns published FAQs, optionally filtered by category.
func ListFAQs(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.ListPublished(c.UserContext(), c.Query("category"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// VoteFAQ records a helpful / not-helpful vote.
func VoteFAQ(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var req voteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.Vote(c.UserContext(), id, req.Helpful); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SubmitFAQQuestion records a user question for moderation.
func SubmitFAQQuestion(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req faqSubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		sub, err := svc.Submit(c.UserContext(), actorFromCtx(c), req.Question, req.CategoryID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	}
}

// ListMyFAQSubmissions returns the caller's submissions in any status.
func ListMyFAQSubmissions(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.ListMySubmissions(c.UserContext(), actorFromCtx(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListPendingFAQSubmissions returns submissions awaiting moderation. Admin only.
func ListPendingFAQSubmissions(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.ListPendingSubmissions(c.UserContext(), actorFromCtx(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ApproveFAQSubmission answers a submission and publishes it as an FAQ. Admin only.
func ApproveFAQSubmission(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var req submissionDecisionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		faq, err := svc.ApproveSubmission(c.UserContext(), actorFromCtx(c), id, req.Answer, req.Notes)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(faq)
	}
}

// RejectFAQSubmission declines a submission with notes. Admin only.
func RejectFAQSubmission(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var req submissionDecisionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		sub, err := svc.RejectSubmission(c.UserContext(), actorFromCtx(c), id, req.Notes)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sub)
	}
}

// UpdateFAQ edits or unpublishes an FAQ. Admin only.
func UpdateFAQ(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var in service.FAQInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		faq, err := svc.UpdateFAQ(c.UserContext(), actorFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(faq)
	}
}

// DeleteFAQ removes an FAQ. Admin only.
func DeleteFAQ(svc service.FAQService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		if err := svc.DeleteFAQ(c.UserContext(), actorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
