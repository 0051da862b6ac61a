package categories

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("name is required")
	ErrCategoryExists   = errors.New("category name already exists")
	ErrCategoryGlobal   = errors.New("cannot delete a global category")
	ErrCategoryInUse    = errors.New("category in use")
	ErrInvalidType      = errors.New("type must be income or expense")
)
