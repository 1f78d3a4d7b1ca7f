// Package repository holds the MongoDB persistence for orders, products and
// users. Interfaces are defined by the consumers (service packages); this
// package provides the mongo-backed implementations.
package repository

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already registered")

	// ErrAlreadyReviewed is returned when the storage-layer guard rejects a
	// second review from the same user on the same product.
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")

	// ErrNoTransition is returned when a conditional order update matched no
	// document in the expected state.
	ErrNoTransition = errors.New("order not in required state for transition")
)
