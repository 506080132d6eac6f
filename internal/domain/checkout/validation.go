// internal/domain/checkout/validation.go
package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

func newValidator(now func() time.Time) *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("us_zip", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("us_phone", func(fl validator.FieldLevel) bool {
		return isUSPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return cardNotExpired(fl.Field().String(), now())
	})

	return v
}

func isUSPhone(raw string) bool {
	digits := 0
	first := byte(0)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			if digits == 0 {
				first = c
			}
			digits++
		case strings.IndexByte(" ()-.+", c) >= 0:
		default:
			return false
		}
	}
	return digits == 10 || (digits == 11 && first == '1')
}

// cardNotExpired accepts MM/YY; a card is valid through the last day of its month
func cardNotExpired(raw string, now time.Time) bool {
	monthPart, yearPart, ok := strings.Cut(raw, "/")
	if !ok || len(monthPart) != 2 || len(yearPart) != 2 {
		return false
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return false
	}
	year += 2000

	current := now.Year()*12 + int(now.Month())
	return year*12+month >= current
}

func toValidationError(step Step, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	result := &ValidationError{Step: step, Fields: make([]FieldError, 0, len(fieldErrors))}
	for _, fe := range fieldErrors {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		result.Fields = append(result.Fields, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "us_phone":
		return "must be a 10 digit US phone number"
	case "us_zip":
		return "must be a 5 digit ZIP code"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "credit_card":
		return "must be a valid card number"
	case "card_expiry":
		return "must be a future MM/YY date"
	case "numeric":
		return "must contain digits only"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
