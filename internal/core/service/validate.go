package service

import "github.com/go-playground/validator/v10"

// validate is shared by the services for field-level checks. The services
// call Var directly so violations can be aggregated into one
// domain.ValidationError instead of failing on the first field.
var validate = validator.New()
