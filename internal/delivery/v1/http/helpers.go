package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
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

var (
	badRequestErrors = []error{
		e.ErrBadJSON,
		e.ErrExpectedMultipart,
		e.ErrProductNameRequired,
		e.ErrProductNameTooLong,
		e.ErrDescriptionTooLong,
		e.ErrCategoryNameRequired,
		e.ErrCategoryNameTooLong,
		e.ErrCategoryRequired,
		e.ErrPriceNegative,
		e.ErrPriceInvalid,
		e.ErrPricePrecision,
		e.ErrCurrencyInvalid,
		e.ErrInvalidID,
		e.ErrInvalidStatus,
		e.ErrNoProducts,
		e.ErrNoImages,
		e.ErrTooManyImages,
	}
	notFoundErrors = []error{
		e.ErrProductNotFound,
		e.ErrCategoryNotFound,
	}
	conflictErrors = []error{
		e.ErrInvalidStatusTransition,
		e.ErrProductArchived,
	}
)

// ToHTTPResponse переводит ошибку в статус-код и сообщение для клиента.
// Наружу уходит текст сентинеля, а не цепочка обёрток.
func ToHTTPResponse(err error) (int, string) {
	if target := matchSentinel(err, badRequestErrors); target != nil {
		return http.StatusBadRequest, target.Error()
	}
	if target := matchSentinel(err, notFoundErrors); target != nil {
		return http.StatusNotFound, target.Error()
	}
	if target := matchSentinel(err, conflictErrors); target != nil {
		return http.StatusConflict, target.Error()
	}

	switch {
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func matchSentinel(err error, sentinels []error) error {
	for _, target := range sentinels {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrBadJSON)
	}
	return nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(raw, e.ErrInvalidID)
	}
	return id, nil
}

// parsePriceToCents разбирает строку вида "599.99" или "600" в минорные единицы.
// Ошибка, если:
// - не decimal
// - больше двух знаков после запятой
// - отрицательная
// - превышает разумный предел (10^9 в мажорных единицах)
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrPriceInvalid
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrPriceInvalid
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrPriceNegative
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrPriceInvalid
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// formatPrice переводит минорные единицы обратно в строку с двумя знаками.
func formatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImages(files []*multipart.FileHeader, maxCount int) ([]usecase.ProductImage, error) {
	const maxFileSize = 15 << 20

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
