package journey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRecord checks a record before it is stored.
func ValidateRecord(r ShiftRecord) error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}
	if r.StartAt != nil && r.EndAt != nil && r.EndAt.Before(*r.StartAt) {
		return fmt.Errorf("%w: end time is before start time", ErrInvalidInput)
	}
	if (r.KmStart != nil && r.KmStart.IsNegative()) || (r.KmEnd != nil && r.KmEnd.IsNegative()) {
		return fmt.Errorf("%w: odometer readings cannot be negative", ErrInvalidInput)
	}
	return nil
}

// ValidatePolicy checks settings before they are saved. A zero rotation is
// allowed and leaves every day undetermined.
func ValidatePolicy(p Policy) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, describe(err))
	}
	if !p.Rotation.IsZero() {
		if err := validate.Struct(p.Rotation); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfiguration, describe(err))
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	return strings.Join(msgs, "; ")
}
