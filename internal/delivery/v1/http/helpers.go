package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	// callerHeader - адрес участника, от имени которого выполняется запрос.
	callerHeader = "X-Caller-Address"

	// priceScale - число знаков после запятой у цены; цена хранится в минимальных единицах.
	priceScale = 2

	maxBodySize = 1 << 20
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку реестра с HTTP-статусом и сообщением.
func ToHTTPResponse(err error) (int, string) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			return m.status, m.err.Error()
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{e.ErrUnauthorized, http.StatusForbidden},
	{e.ErrNotOwnerOfProduct, http.StatusForbidden},
	{e.ErrProductNotFound, http.StatusNotFound},
	{e.ErrDuplicateProduct, http.StatusConflict},
	{e.ErrProductAlreadySold, http.StatusConflict},
	{e.ErrConditionVerificationFailed, http.StatusUnprocessableEntity},
	{e.ErrInvalidAddress, http.StatusBadRequest},
	{e.ErrProductNameRequired, http.StatusBadRequest},
	{e.ErrPriceMustBeNonNegative, http.StatusBadRequest},
	{e.ErrInvalidPrice, http.StatusBadRequest},
	{e.ErrPricePrecision, http.StatusBadRequest},
	{e.ErrInvalidProductID, http.StatusBadRequest},
	{e.ErrMissingFields, http.StatusBadRequest},
	{e.ErrMalformedJSON, http.StatusBadRequest},
	{e.ErrStatusBadRequest, http.StatusBadRequest},
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса в dst, отклоняя неизвестные поля.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return e.Wrap(whereami.WhereAmI(), e.ErrMissingFields)
		}
		return e.Wrap(err.Error(), e.ErrMalformedJSON)
	}

	return nil
}

// parseCaller извлекает адрес вызывающего из заголовка.
// Отсутствующий заголовок даёт нулевой адрес, который никогда не совпадает с администратором.
func parseCaller(r *http.Request) (domain.Address, error) {
	raw := strings.TrimSpace(r.Header.Get(callerHeader))
	if raw == "" {
		return domain.ZeroAddress, nil
	}

	addr, err := domain.ParseAddress(raw)
	if err != nil {
		return domain.ZeroAddress, e.Wrap(callerHeader, err)
	}

	return addr, nil
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, e.Wrap(s, e.ErrInvalidProductID)
	}

	return id, nil
}

// parsePrice converts a string like "599.99" or "600" to int64 minimal units.
// Returns error if:
// - invalid format
// - more than priceScale significant decimal places ("1.500" is fine)
// - negative value
// - does not fit into int64
func parsePrice(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrMissingFields
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return 0, e.ErrPriceMustBeNonNegative
	}

	units := d.Shift(priceScale)
	if !units.IsInteger() {
		return 0, e.ErrPricePrecision
	}

	if units.GreaterThan(decimal.NewFromInt(maxInt64)) {
		return 0, e.ErrInvalidPrice
	}

	return units.IntPart(), nil
}

// formatPrice - обратное преобразование для ответов API.
func formatPrice(units int64) string {
	return decimal.New(units, -priceScale).StringFixed(priceScale)
}

const maxInt64 = 1<<63 - 1
