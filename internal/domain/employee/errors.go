package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrManagerRequired  = errors.New("manager access required")
)
