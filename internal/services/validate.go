package services

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/microcosm-cc/bluemonday"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
)

const maxWidgetIDLength = 32

var (
	validate     *validator.Validate
	markupPolicy *bluemonday.Policy
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("nomarkup", func(fl validator.FieldLevel) bool {
			return !containsMarkup(fl.Field().String())
		})
	})
	return validate
}

// containsMarkup reports whether s has anything the strict policy would
// strip. Both sides are decoded before comparing because the sanitizer
// decodes entities in text and re-escapes them, so "&amp;" typed by the
// user must not count as a change.
func containsMarkup(s string) bool {
	if !strings.ContainsAny(s, "<>") {
		return false
	}
	return html.UnescapeString(markupPolicy.Sanitize(s)) != textNewlines.Replace(html.UnescapeString(s))
}

// textNewlines applies the tokenizer's newline normalization.
var textNewlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func validateWidgetID(id string) error {
	if id == "" || len(id) > maxWidgetIDLength {
		return errs.NewValidationError("invalid widget id")
	}
	return nil
}

// validateWidgetInput checks every range of the payload and reports all
// failures at once, keyed by JSON path.
func validateWidgetInput(in *dto.WidgetInput) error {
	issues := map[string]string{}

	if err := getValidator().Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errs.NewValidationError("invalid widget configuration")
		}
		for _, fe := range fieldErrs {
			issues[fieldPath(fe.Namespace())] = describe(fe)
		}
	}

	if key, ok := missingContact(in); ok {
		if _, exists := issues[key]; !exists {
			issues[key] = "required"
		}
	}

	if len(issues) > 0 {
		return errs.NewValidationIssues("invalid widget configuration", issues)
	}
	return nil
}

// missingContact returns the contact field the chosen platform cannot work
// without, when it is blank.
func missingContact(in *dto.WidgetInput) (string, bool) {
	var key, value string
	switch models.Platform(in.Platform) {
	case models.PlatformWhatsApp:
		key, value = "contact.phone", in.Contact.Phone
	case models.PlatformTelegram:
		key, value = "contact.username", in.Contact.Username
	case models.PlatformMessenger:
		key, value = "contact.pageId", in.Contact.PageID
	case models.PlatformEmail:
		key, value = "contact.email", in.Contact.Email
	default:
		return "", false
	}
	return key, strings.TrimSpace(value) == ""
}

// fieldPath drops the root struct name: "WidgetInput.bubble.size.width"
// becomes "bubble.size.width".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

func describe(fe validator.FieldError) string {
	text := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "notblank":
		return "required"
	case "min":
		if text {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if text {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "nomarkup":
		return "must not contain markup"
	default:
		return "invalid"
	}
}
