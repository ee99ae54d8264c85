package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single validation failure keyed by attribute name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failure for one record. It satisfies
// error so services can return it without a dedicated result type.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var imageFilePattern = regexp.MustCompile(`(?i)^.+\.(png|jpg|gif)$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("image_file", func(fl validator.FieldLevel) bool {
		return imageFilePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register image_file validation: %v", err))
	}
	return v
}

// eventRules mirrors the validated subset of Event. Tags live here so the
// entity itself stays free of framework annotations.
type eventRules struct {
	Name          string `validate:"required"`
	Description   string `validate:"required,min=24"`
	Location      string `validate:"required"`
	PriceCents    int64  `validate:"gte=0"`
	Capacity      int    `validate:"gt=0"`
	ImageFileName string `validate:"omitempty,image_file"`
}

var eventFieldNames = map[string]string{
	"Name":          "name",
	"Description":   "description",
	"Location":      "location",
	"PriceCents":    "price_cents",
	"Capacity":      "capacity",
	"ImageFileName": "image_file_name",
}

// ValidateEvent checks e against the event rules and returns nil or a
// ValidationErrors listing every failing field in declaration order.
func ValidateEvent(e Event) error {
	err := validate.Struct(eventRules{
		Name:          e.Name,
		Description:   e.Description,
		Location:      e.Location,
		PriceCents:    e.PriceCents,
		Capacity:      e.Capacity,
		ImageFileName: e.ImageFileName,
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   eventFieldNames[fe.StructField()],
			Message: eventFieldMessage(fe),
		})
	}
	return out
}

func eventFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return "must not be negative"
	case "gt":
		return "must be greater than zero"
	case "image_file":
		return "must be a .png, .jpg or .gif file"
	default:
		return "is invalid"
	}
}
