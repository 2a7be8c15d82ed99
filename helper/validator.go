package helper

import (
	"errors"
	"reflect"
	"strings"

	"phantoms-store/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// NewHTTPHelper wires validator.v9 with English messages and the custom rules used by request DTOs.
func NewHTTPHelper() *HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return models.IsValidPrice(fl.Field().String())
	})
	_ = validate.RegisterTranslation("price", trans, func(ut ut.Translator) error {
		return ut.Add("price", "{0} must be a decimal amount with up to 2 decimal places", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("price", fe.Field())
		return t
	})

	return &HTTPHelper{Validate: validate, Translator: trans}
}

// BindJSON decodes and validates the request body, answering the client itself on failure.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, "invalid request body", u.EmptyJsonMap())
		return false
	}
	return u.validate(c, req)
}

// BindQuery is BindJSON for query strings.
func (u *HTTPHelper) BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		u.SendBadRequest(c, "invalid query parameters", u.EmptyJsonMap())
		return false
	}
	return u.validate(c, req)
}

func (u *HTTPHelper) validate(c *gin.Context, req interface{}) bool {
	err := u.Validate.Struct(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		u.SendValidationError(c, validationErrors)
		return false
	}
	u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
	return false
}
