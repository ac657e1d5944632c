package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var detail any
	if err != nil {
		detail = err.Error()
	}
	return ErrorDetailResponse(c, status, message, detail)
}

// ErrorDetailResponse is ErrorResponse for callers that already hold a JSON-ready detail.
func ErrorDetailResponse(c *fiber.Ctx, status int, message string, detail any) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   detail,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}

	return query
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
