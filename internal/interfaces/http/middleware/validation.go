package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tectle/backend/internal/interfaces/http/dto"
)

// TagPlatformKey validates importer registry keys in request paths.
const TagPlatformKey = "platform_key"

var platformKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// SetupValidator makes gin's validator report fields by their json, form or
// uri tag names and registers the platform_key tag.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(tagName)
	_ = v.RegisterValidation(TagPlatformKey, validPlatformKey)
}

func tagName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

func validPlatformKey(fl validator.FieldLevel) bool {
	return platformKeyPattern.MatchString(fl.Field().String())
}

// FormatValidationErrors builds the ERR_VALIDATION response, one detail per
// failing field. Errors that are not validator errors yield no details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{
				Field:   fe.Field(),
				Message: getValidationMessage(fe),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers 400 with the formatted validation errors.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, getRequestID(c)))
}

var validationMessages = map[string]string{
	"required":     "This field is required",
	"oneof":        "Must be one of: %s",
	"gte":          "Must be greater than or equal to %s",
	"lte":          "Must be less than or equal to %s",
	TagPlatformKey: "Must be a platform key of letters, digits, '-' or '_'",
}

func getValidationMessage(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()
	switch tag {
	case "min", "max":
		bound := "at least "
		if tag == "max" {
			bound = "at most "
		}
		msg := "Must be " + bound + param
		if fe.Kind() == reflect.String {
			msg += " characters"
		}
		return msg
	}
	if msg, ok := validationMessages[tag]; ok {
		return strings.Replace(msg, "%s", param, 1)
	}
	return "Invalid value"
}
