package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrFieldDoesNotExist = errors.New("field does not exist")
	ErrParentCycle       = errors.New("component parent would create a cycle")
)

// EntityNotFoundError is returned by operations referencing an unknown entity.
type EntityNotFoundError struct {
	Entity EntityId
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d not found", e.Entity)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// ComponentNotFoundError is returned by operations referencing an unknown component.
type ComponentNotFoundError struct {
	Component ComponentId
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %d not found", e.Component)
}

func (e *ComponentNotFoundError) Is(target error) bool {
	return target == ErrComponentNotFound
}

// FieldDoesNotExistError is returned by Get when the terminal native component lacks the field.
type FieldDoesNotExistError struct {
	Component ComponentId
	Field     string
}

func (e *FieldDoesNotExistError) Error() string {
	return fmt.Sprintf("field %q does not exist on component %d", e.Field, e.Component)
}

func (e *FieldDoesNotExistError) Is(target error) bool {
	return target == ErrFieldDoesNotExist
}

func entityNotFound(id EntityId) error {
	return &EntityNotFoundError{Entity: id}
}

func componentNotFound(id ComponentId) error {
	return &ComponentNotFoundError{Component: id}
}
