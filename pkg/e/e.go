package e

import "fmt"

var (
	// Ошибки доступа
	ErrUnauthorized      = fmt.Errorf("caller is not the owner")
	ErrNotOwnerOfProduct = fmt.Errorf("caller is not the owner of this product")

	// Ошибки реестра продуктов
	ErrDuplicateProduct   = fmt.Errorf("product already exists")
	ErrProductNotFound    = fmt.Errorf("product does not exist")
	ErrProductAlreadySold = fmt.Errorf("product already sold")
	ErrInvalidAddress     = fmt.Errorf("invalid address")

	// Ошибки внешнего реестра
	ErrConditionVerificationFailed = fmt.Errorf("condition verification failed")
	ErrUnknownConditionBackend     = fmt.Errorf("unknown condition backend")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrProductNameRequired    = fmt.Errorf("product name is required")
	ErrPriceMustBeNonNegative = fmt.Errorf("price must be non-negative")
	ErrInvalidPrice           = fmt.Errorf("invalid price")
	ErrPricePrecision         = fmt.Errorf("price has too many decimal places")
	ErrInvalidProductID       = fmt.Errorf("invalid product id")
	ErrMissingFields          = fmt.Errorf("missing required fields")
	ErrMalformedJSON          = fmt.Errorf("malformed json body")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
