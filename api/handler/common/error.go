package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/types"
)

const (
	ErrInvalidParams = "Invalid Params"
	ErrInternal      = "Internal Server Error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code" extensions:"x-order:0"`
	Message string `json:"message" extensions:"x-order:1"`
}

// StatusCode maps an error to the HTTP status it is served with.
func StatusCode(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch types.TypeOf(err) {
	case types.ErrTypeBadRequest, types.ErrTypeInvalidValue, types.ErrTypeValidation:
		return fiber.StatusBadRequest
	case types.ErrTypeNotFound:
		return fiber.StatusNotFound
	case types.ErrTypeRateLimit:
		return fiber.StatusTooManyRequests
	case types.ErrTypeTimeout:
		return fiber.StatusGatewayTimeout
	case types.ErrTypeNetwork, types.ErrTypeDecode:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors returned by handlers as ErrorResponse.
// Internal details are not exposed for 5xx errors other than gateway ones.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	msg := err.Error()

	var se *types.StandardError
	if errors.As(err, &se) {
		msg = se.Message
	}
	if code == fiber.StatusInternalServerError {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			msg = ErrInternal
		}
	}

	return c.Status(code).JSON(ErrorResponse{Code: code, Message: msg})
}
