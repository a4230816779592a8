// Package validate wraps a shared go-playground validator configured with
// the custom tags used by registry records and HTTP request bodies.
package validate

import (
    "errors"
    "fmt"
    "reflect"
    "strings"
    "unicode"

    "github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
    val := validator.New(validator.WithRequiredStructEnabled())
    // Report fields by their JSON names.
    val.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    // alphaspace: letters and single-byte spaces only, as typed on a
    // registration form ("Ana María", "de la Garza").
    _ = val.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
        for _, r := range fl.Field().String() {
            if r != ' ' && !unicode.IsLetter(r) {
                return false
            }
        }
        return true
    })
    return val
}

// Struct validates s and flattens any field errors into one readable
// message such as "name: must be at least 2 characters".
func Struct(s any) error {
    err := v.Struct(s)
    if err == nil {
        return nil
    }
    var fieldErrs validator.ValidationErrors
    if !errors.As(err, &fieldErrs) {
        return err
    }
    msgs := make([]string, 0, len(fieldErrs))
    for _, fe := range fieldErrs {
        msgs = append(msgs, describe(fe))
    }
    return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
    field := strings.ToLower(fe.Field())
    switch fe.Tag() {
    case "required":
        return field + ": is required"
    case "min":
        if fe.Kind().String() == "string" {
            return fmt.Sprintf("%s: must be at least %s characters", field, fe.Param())
        }
        return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
    case "max":
        if fe.Kind().String() == "string" {
            return fmt.Sprintf("%s: must be at most %s characters", field, fe.Param())
        }
        return fmt.Sprintf("%s: must be at most %s", field, fe.Param())
    case "gt":
        return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
    case "alphaspace":
        return field + ": must contain only letters and spaces"
    case "oneof":
        return fmt.Sprintf("%s: must be one of %s", field, fe.Param())
    }
    return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}
