package model

import (
	"context"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/shared/validator"
)

const (
	FieldName        = "name"
	FieldPhoneNumber = "phone_number"

	msgNameRequired = "Author must have a name."
	msgNameTaken    = "Author name must be unique."
	msgPhoneFormat  = "Phone number must be exactly 10 digits."
)

var phoneNumberPattern = regexp.MustCompile(`^\d{10}$`)

// NameChecker reports whether an author with the given name is already stored
type NameChecker interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// ValidateName rejects blank names and names already taken by another author.
// The uniqueness lookup hits storage at call time; a lookup failure is
// returned as-is, not as a validation error.
func ValidateName(ctx context.Context, name string, checker NameChecker) error {
	return validator.Field(ctx, FieldName, name,
		validation.By(notBlank),
		validation.WithContext(func(ctx context.Context, value interface{}) error {
			exists, err := checker.ExistsByName(ctx, value.(string))
			if err != nil {
				return validation.NewInternalError(err)
			}
			if exists {
				return validation.NewError("author_name_unique", msgNameTaken)
			}
			return nil
		}),
	)
}

// ValidatePhoneNumber accepts an absent value or exactly 10 digits
func ValidatePhoneNumber(phone *string) error {
	if phone == nil {
		return nil
	}
	return validator.Field(context.Background(), FieldPhoneNumber, *phone,
		validation.Match(phoneNumberPattern).Error(msgPhoneFormat),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("author_name_required", msgNameRequired)
	}
	return nil
}

// NameCheckerFunc adapts a plain function to NameChecker
type NameCheckerFunc func(ctx context.Context, name string) (bool, error)

func (f NameCheckerFunc) ExistsByName(ctx context.Context, name string) (bool, error) {
	return f(ctx, name)
}

// NameTakenError is the failure reported when storage rejects a duplicate name
func NameTakenError() error {
	return validator.New(FieldName, msgNameTaken)
}
