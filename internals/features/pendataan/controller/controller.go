// file: internals/features/pendataan/controller/controller.go
package controller

import (
	"errors"

	"sarpras_backend/internals/features/pendataan/service"
	helper "sarpras_backend/internals/helpers"
	helperOSS "sarpras_backend/internals/helpers/oss"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type PendataanController struct {
	Svc       *service.Service
	Blob      helperOSS.BlobService // nil = upload file dimatikan
	Validator *validator.Validate
}

func NewPendataanController(svc *service.Service, blob helperOSS.BlobService) *PendataanController {
	return &PendataanController{Svc: svc, Blob: blob, Validator: helper.NewValidator()}
}

type validatable interface {
	Validate(v *validator.Validate) error
}

// decode: body → struct, Normalize (kalau ada), lalu validasi skema.
// ok=false → response error sudah ditulis, kembalikan err apa adanya.
func (pc *PendataanController) decode(c *fiber.Ctx, body validatable) (bool, error) {
	if err := c.BodyParser(body); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if n, ok := body.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if err := body.Validate(pc.Validator); err != nil {
		return false, helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	return true, nil
}

// respondServiceError: error service → 401 / 404 / 422 / 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var vf *service.ValidationFailure
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusUnauthorized, service.UserMessage(err))
	case errors.Is(err, service.ErrSchoolNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, service.UserMessage(err))
	case errors.As(err, &vf):
		resp := helper.ErrorResponse{
			Success:   false,
			Error:     vf.Message,
			ErrorCode: "VALIDATION_ERROR",
		}
		if vf.Field != "" {
			resp.Errors = map[string][]string{vf.Field: {vf.Message}}
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, service.UserMessage(err))
	}
}
