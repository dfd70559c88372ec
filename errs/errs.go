// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package errs defines the typed error taxonomy raised by the linhash table and its
// embedders, along with a mapping from those errors to HTTP status codes for the
// session-store facade.
package errs

import (
	"fmt"
	"net/http"
)

type errorCode string

const (
	// CodeKeyNotFound indicates a lookup found no entry for the requested key. This is a
	// user-level condition, not a programmer error.
	CodeKeyNotFound errorCode = "key-not-found"
	// CodeIndexOutOfRange indicates a bucket index fell outside [0, bucketcount). This is a
	// programmer error.
	CodeIndexOutOfRange errorCode = "index-out-of-range"
	// CodeIteratorExhausted indicates advancement was attempted past the end of a bucket
	// iterator. This is a programmer error.
	CodeIteratorExhausted errorCode = "iterator-exhausted"
	// CodeAllocationFailure indicates a split or merge could not grow or shrink the bucket
	// array. The table must remain in the state it was in before the call.
	CodeAllocationFailure errorCode = "allocation-failure"
)

// TableError is the error type returned by linhash.Table operations.
type TableError struct {
	// Code identifies which of the taxonomy's conditions occurred.
	Code errorCode `json:"code"`
	// Message is a human-readable description of the error.
	Message string `json:"message"`
	// Key, when non-empty, names the key involved in the error, formatted with %v.
	Key string `json:"key,omitempty"`
}

func (e *TableError) Error() string {
	return e.Message
}

// NewKeyNotFound creates the error returned when Get is called on an absent key.
func NewKeyNotFound(key interface{}) *TableError {
	return &TableError{
		Code:    CodeKeyNotFound,
		Message: fmt.Sprintf("key %v not found in table", key),
		Key:     fmt.Sprintf("%v", key),
	}
}

// NewIndexOutOfRange creates the error returned when a bucket index is outside the table's
// current logical bucket range.
func NewIndexOutOfRange(index, bucketCount uint64) *TableError {
	return &TableError{
		Code: CodeIndexOutOfRange,
		Message: fmt.Sprintf("bucket index %d out of range [0, %d)", index,
			bucketCount),
	}
}

// NewIteratorExhausted creates the error returned when a bucket iterator is advanced past
// its last element.
func NewIteratorExhausted() *TableError {
	return &TableError{
		Code:    CodeIteratorExhausted,
		Message: "iterator exhausted",
	}
}

// NewAllocationFailure creates the error describing a failed split or merge. Callers of this
// constructor are expected to have already rolled the table back to its pre-call state.
func NewAllocationFailure(during string, cause error) *TableError {
	return &TableError{
		Code:    CodeAllocationFailure,
		Message: fmt.Sprintf("allocation failure during %s: %v", during, cause),
	}
}

// IsTableError allows receivers of a generic error to see if it's one of the TableError
// error types.
func IsTableError(e error) (ok bool) {
	_, ok = e.(*TableError)
	return
}

// HTTPStatus maps a TableError's code to an HTTP status code for the session-store facade.
func HTTPStatus(e *TableError) int {
	switch e.Code {
	case CodeKeyNotFound:
		return http.StatusUnauthorized
	case CodeIndexOutOfRange, CodeIteratorExhausted:
		return http.StatusInternalServerError
	case CodeAllocationFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
