package library

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDraft is matched by every *DraftError.
var ErrInvalidDraft = errors.New("invalid library draft")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldIssue names one failed rule.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// DraftError lists why a draft was rejected.
type DraftError struct {
	Issues []FieldIssue
}

func (e *DraftError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+" "+is.Issue)
	}
	return "invalid library draft: " + strings.Join(parts, "; ")
}

func (e *DraftError) Is(target error) bool {
	return target == ErrInvalidDraft
}

// ValidateDraft checks that title and image are present and the image is a data URL.
func ValidateDraft(d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &DraftError{}
	for _, fe := range verrs {
		issue := "invalid"
		switch fe.Tag() {
		case "required":
			issue = "required"
		case "startswith":
			issue = "must be a data URL"
		}
		out.Issues = append(out.Issues, FieldIssue{Field: fe.Field(), Issue: issue})
	}
	return out
}
