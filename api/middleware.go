package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/husky-nft/nftgate/api/handler/common"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

// metricsMiddleware records request counts, latency and in-flight requests.
func metricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := metrics.RequestStarted(c.Method(), c.Path())

		err := c.Next()

		status := c.Response().StatusCode()
		errType := ""
		if err != nil {
			status = common.StatusCode(err)
			errType = string(types.TypeOf(err))
		}
		done(status, errType)
		return err
	}
}

// requestIDMiddleware echoes X-Request-ID, generating one when the caller did not send it.
func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(common.RequestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}
