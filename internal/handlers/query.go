package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/sales-weather/internal/dto"
	"github.com/GregMSThompson/sales-weather/internal/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report query string keys rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func validateQuery(q any) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "oneof":
			return errs.NewValidationError(fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "datetime":
			return errs.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field()))
		default:
			return errs.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errs.NewValidationError(err.Error())
}

func parseExplorerQuery(r *http.Request) (dto.ExplorerQuery, error) {
	v := r.URL.Query()
	q := dto.ExplorerQuery{
		Country:  v.Get(dto.FilterCountry),
		City:     v.Get(dto.FilterCity),
		MenuItem: v.Get(dto.FilterMenuItem),
		Metric:   v.Get(dto.FilterMetric),
		From:     v.Get("from"),
		To:       v.Get("to"),
	}
	return q, validateQuery(q)
}

func parseTokyoQuery(r *http.Request) (dto.TokyoQuery, error) {
	v := r.URL.Query()
	q := dto.TokyoQuery{
		MenuItem: v.Get(dto.FilterMenuItem),
		Metric:   v.Get(dto.FilterMetric),
	}
	return q, validateQuery(q)
}
