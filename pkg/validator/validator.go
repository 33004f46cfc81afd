package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

var (
	validate        = validator.New()
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func init() {
	// Report JSON field names ("pay_method") instead of Go names ("PayMethod").
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("no_whitespace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid"}}
	}
	for _, fe := range verrs {
		errs = append(errs, &ErrorResponse{
			FailedField: trimRoot(fe.Namespace()),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return errs
}

// trimRoot drops the struct name prefix: "SaleRequest.items[0].qty" -> "items[0].qty".
func trimRoot(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
