package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 400 Bad Request
	ErrBadJSON              = fmt.Errorf("request body is not valid json")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrProductNameTooLong   = fmt.Errorf("product name is too long")
	ErrDescriptionTooLong   = fmt.Errorf("description is too long")
	ErrCategoryNameRequired = fmt.Errorf("category name is required")
	ErrCategoryNameTooLong  = fmt.Errorf("category name is too long")
	ErrCategoryRequired     = fmt.Errorf("product category is required")
	ErrPriceNegative        = fmt.Errorf("price must not be negative")
	ErrPriceInvalid         = fmt.Errorf("price is not a valid decimal")
	ErrPricePrecision       = fmt.Errorf("price has more than two decimal places")
	ErrCurrencyInvalid      = fmt.Errorf("currency must be a three-letter ISO 4217 code")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrInvalidStatus        = fmt.Errorf("unknown product status")
	ErrNoProducts           = fmt.Errorf("no products requested")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images in one request")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")

	// 409 Conflict
	ErrInvalidStatusTransition = fmt.Errorf("invalid product status transition")
	ErrProductArchived         = fmt.Errorf("product is archived")

	// 413 / 415
	ErrFileTooLarge         = fmt.Errorf("file is too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
