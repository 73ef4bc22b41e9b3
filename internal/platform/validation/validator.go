// Package validation checks inbound event payloads before they enter the
// listener pipeline.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type payloadValidator struct{ v *validator.Validate }

func (p *payloadValidator) Validate(i interface{}) error {
	return p.v.Struct(i)
}

// New returns the echo.Validator for event delivery payloads. Reported field
// names use the wire (JSON) names so a delivery client can match them against
// what it sent.
func New() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &payloadValidator{v: v}
}
