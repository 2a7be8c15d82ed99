package helper

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"phantoms-store/logger"
	"phantoms-store/models"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
)

const (
	textError = `error`
	textOk    = `ok`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  interface{}
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// GetStatusCode maps a service error onto an HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr   models.ErrorValidation
		unauthorizedErr models.ErrorUnauthorized
		forbiddenErr    models.ErrorForbidden
		notFoundErr     models.ErrorNotFound
		conflictErr     models.ErrorConflict
		upstreamErr     models.ErrorUpstream
		unavailableErr  models.ErrorServiceUnavailable
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func codeTypeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return `badRequest`
	case http.StatusUnauthorized:
		return `unAuthorized`
	case http.StatusForbidden:
		return `forbidden`
	case http.StatusNotFound:
		return `notFound`
	case http.StatusConflict:
		return `conflict`
	case http.StatusTooManyRequests:
		return `tooManyRequests`
	case http.StatusBadGateway:
		return `upstreamError`
	case http.StatusServiceUnavailable:
		return `serviceUnavailable`
	}
	if status >= 500 {
		return `internalServerError`
	}
	return `success`
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message interface{}, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send a typed service error. Server-side failures are logged and never echoed back.
func (u *HTTPHelper) SendError(c *gin.Context, err error) error {
	status := u.GetStatusCode(err)
	message := err.Error()

	switch {
	case status == http.StatusServiceUnavailable:
		// configuration gap, message is safe to show
	case status == http.StatusBadGateway:
		logger.Error(c, "upstream failure", err)
		message = "upstream service unavailable"
	case status >= 500:
		logger.Error(c, "request failed", err)
		message = "internal server error"
	}

	return u.SendResponse(u.SetResponse(c, textError, message, u.EmptyJsonMap(), status, codeTypeFor(status)))
}

func (u *HTTPHelper) sendStatus(c *gin.Context, status int, message string, data interface{}) error {
	return u.SendResponse(u.SetResponse(c, textError, message, data, status, codeTypeFor(status)))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.sendStatus(c, http.StatusBadRequest, message, data)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	return u.SendResponse(u.SetResponse(c, textError, errorResponse, u.EmptyJsonMap(), http.StatusBadRequest, `validationError`))
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.sendStatus(c, http.StatusUnauthorized, message, data)
}

func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) error {
	return u.sendStatus(c, http.StatusForbidden, message, data)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	return u.sendStatus(c, http.StatusNotFound, message, data)
}

func (u *HTTPHelper) SendTooManyRequests(c *gin.Context, message string) error {
	return u.sendStatus(c, http.StatusTooManyRequests, message, u.EmptyJsonMap())
}

func (u *HTTPHelper) SendServiceUnavailable(c *gin.Context, message string) error {
	return u.sendStatus(c, http.StatusServiceUnavailable, message, u.EmptyJsonMap())
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	return u.SendResponse(u.SetResponse(c, textOk, message, data, http.StatusOK, `success`))
}

func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	return u.SendResponse(u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`))
}

// SendResponse ...
// Send response. Code doubles as the HTTP status.
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if s, ok := res.Message.(string); ok && len(s) == 0 {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// get pagination URL, keeping the caller's other query params
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return scheme + "://" + r.Host + r.URL.Path + "?" + q.Encode()
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page, totalRecord int) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(totalRecord) / float64(limit)))
	}

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}
}

// SendList wraps a page of items with its pagination block.
func (u *HTTPHelper) SendList(c *gin.Context, items interface{}, limit, page int, total int64) error {
	return u.SendSuccess(c, "", map[string]interface{}{
		"items":      items,
		"pagination": u.GeneratePaging(c, limit, page, int(total)),
	})
}
