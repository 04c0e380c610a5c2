// respond.go

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Every response uses the same envelope: {success, data?, message?, errors?}.
type apiResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, message string, data any, count int) {
	c.JSON(200, apiResponse{Success: true, Message: message, Data: data, Count: &count})
}

// respondError maps the error taxonomy onto status codes: validation 400,
// not-found 404, everything else 500 with the raw message.
func respondError(c *gin.Context, err error) {
	var ve *validationError
	if errors.As(err, &ve) {
		c.JSON(400, apiResponse{Success: false, Message: ve.Message, Errors: ve.Fields})
		return
	}
	var nf *notFoundError
	if errors.As(err, &nf) {
		c.JSON(404, apiResponse{Success: false, Message: nf.Error()})
		return
	}
	c.JSON(500, apiResponse{Success: false, Message: err.Error()})
}

// bindJSON wraps ShouldBindJSON so binding failures come back as the
// structured validation error the envelope expects.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fieldError{
					Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
					Message: bindingMessage(fe),
				})
			}
			return &validationError{Message: "Validation failed", Fields: fields}
		}
		return errValidation("invalid request body: " + err.Error())
	}
	return nil
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}

// parseObjectID turns a path/body id into an ObjectID; a malformed id is a
// validation failure, not a lookup miss.
func parseObjectID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errValidation("Validation failed", fieldError{
			Field:   field,
			Message: "invalid id: " + raw,
		})
	}
	return id, nil
}
