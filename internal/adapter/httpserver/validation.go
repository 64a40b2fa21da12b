package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError represents one rejected field of a request payload.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// decodeAndValidate parses the JSON body into dst and runs struct validation.
// Shape failures and constraint failures both come back as ErrInvalidArgument
// so handlers produce a uniform 400 envelope.
func decodeAndValidate(r *http.Request, dst any) ([]ValidationError, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return nil, fmt.Errorf("%w: malformed json: %v", domain.ErrInvalidArgument, err)
	}
	if err := getValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		details := []ValidationError{}
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				details = append(details, ValidationError{Field: fe.Field(), Code: fe.Tag()})
			}
		}
		return details, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument)
	}
	return nil, nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}
