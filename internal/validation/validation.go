package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names so messages match what users type
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimeFormat(fl.Field().String())
	})
	v.RegisterStructValidation(scheduleRule, models.HabitInput{})

	return v
}

// scheduleRule requires the schedule field matching the frequency to be non-empty.
func scheduleRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.HabitInput)
	switch in.Frequency {
	case models.FrequencyWeekly:
		if len(in.WeeklyDays) == 0 {
			sl.ReportError(in.WeeklyDays, "weeklyDays", "WeeklyDays", "schedule", "")
		}
	case models.FrequencyMonthly:
		if len(in.MonthlyDays) == 0 {
			sl.ReportError(in.MonthlyDays, "monthlyDays", "MonthlyDays", "schedule", "")
		}
	case models.FrequencyCustom:
		if len(in.CustomDates) == 0 {
			sl.ReportError(in.CustomDates, "customDates", "CustomDates", "schedule", "")
		}
	}
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// InputError lists every invalid field of a habit input.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid habit: " + strings.Join(msgs, "; ")
}

// For returns the message for field, or "" if the field is valid.
func (e *InputError) For(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// ValidateInput checks a new habit the way the add form does: trimmed
// non-empty name, known frequency and category, a non-empty schedule for the
// chosen frequency, weekdays 0-6, month days 1-31, HH:MM time and
// non-negative counts. It returns an *InputError on failure.
func ValidateInput(in models.HabitInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate habit: %w", err)
	}

	out := &InputError{}
	for _, fe := range verrs {
		field := fe.Field()
		// Slice elements are reported as weeklyDays[2]; group them under the slice
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: message(field, fe)})
	}
	return out
}

// ValidatePatch validates the habit that applying patch to h would produce.
func ValidatePatch(h models.Habit, patch models.HabitPatch) error {
	return ValidateInput(models.InputOf(patch.Apply(h.Clone())))
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "schedule":
		return field + " must not be empty for this frequency"
	case "hhmm":
		return field + " must be in HH:MM format"
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s values must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s values must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
