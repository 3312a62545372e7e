package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout es el formato de fecha que acepta la API.
const DateLayout = "2006-01-02"

// Validator envuelve validator.Validate con las reglas del dominio ya registradas.
type Validator struct {
	v *validator.Validate
}

// Rule es una regla custom: tag + función.
type Rule struct {
	Tag string
	Fn  validator.Func
}

// OneOf arma una regla que acepta solo los valores dados (sin distinguir mayúsculas).
func OneOf[T ~string](tag string, values ...T) Rule {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[strings.ToLower(string(v))] = struct{}{}
	}
	return Rule{
		Tag: tag,
		Fn: func(fl validator.FieldLevel) bool {
			_, ok := allowed[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
			return ok
		},
	}
}

// New crea el validador con la regla "date" y las que pase el llamador.
// Si una regla no se registra el servidor no debe arrancar: panic.
func New(rules ...Rule) *Validator {
	v := validator.New()

	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	all := append([]Rule{{Tag: "date", Fn: isDate}}, rules...)
	for _, r := range all {
		if err := v.RegisterValidation(r.Tag, r.Fn); err != nil {
			panic("validation: register rule " + r.Tag + ": " + err.Error())
		}
	}
	return &Validator{v: v}
}

// Struct valida y devuelve un error legible (un mensaje por campo, separados por "; ").
func (cv *Validator) Struct(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "date":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag())
	}
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// ParseDate parsea una fecha ya validada como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
