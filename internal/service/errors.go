package service

import "errors"

var (
	// ErrProductNotFound signals a referential failure: an operation named
	// a product id that does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound signals a lookup for a missing category.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidQuantity is returned when an add requests a non-positive
	// quantity. Merge logic assumes positive increments.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrEmptySession is returned when a cart operation is called with an
	// empty or whitespace-only session identifier.
	ErrEmptySession = errors.New("session id must not be empty")

	// ErrInvalidPage is returned when page number or page size is below 1.
	ErrInvalidPage = errors.New("page number and page size must be at least 1")
)
