// errors.go

package main

import "fmt"

// fieldError is one entry in the structured errors list returned on 400s.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationError rejects a payload before any store write happens.
type validationError struct {
	Message string
	Fields  []fieldError
}

func (e *validationError) Error() string {
	return e.Message
}

func errValidation(msg string, fields ...fieldError) error {
	return &validationError{Message: msg, Fields: fields}
}

// notFoundError covers both a primary id that resolves to nothing and a
// referenced foreign id (a product inside a cart/order line) that is gone.
type notFoundError struct {
	Entity string
	Ref    string
}

func (e *notFoundError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s not found: %s", e.Entity, e.Ref)
	}
	return e.Entity + " not found"
}

func errNotFound(entity string) error {
	return &notFoundError{Entity: entity}
}

func errRefNotFound(entity, ref string) error {
	return &notFoundError{Entity: entity, Ref: ref}
}
