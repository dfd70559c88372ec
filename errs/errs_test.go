// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package errs

import (
	"net/http"
	"testing"
)

func TestNewKeyNotFound(t *testing.T) {
	err := NewKeyNotFound("token-1")
	if err.Code != CodeKeyNotFound {
		t.Fatalf("Code = %q, want %q", err.Code, CodeKeyNotFound)
	}
	if err.Key != "token-1" {
		t.Fatalf("Key = %q, want %q", err.Key, "token-1")
	}
	if err.Error() == "" {
		t.Fatal("Error() returned empty string")
	}
	if !IsTableError(err) {
		t.Fatal("IsTableError(NewKeyNotFound(...)) = false")
	}
}

func TestNewIndexOutOfRange(t *testing.T) {
	err := NewIndexOutOfRange(5, 4)
	if err.Code != CodeIndexOutOfRange {
		t.Fatalf("Code = %q, want %q", err.Code, CodeIndexOutOfRange)
	}
	if err.Key != "" {
		t.Fatalf("Key = %q, want empty", err.Key)
	}
}

func TestNewIteratorExhausted(t *testing.T) {
	err := NewIteratorExhausted()
	if err.Code != CodeIteratorExhausted {
		t.Fatalf("Code = %q, want %q", err.Code, CodeIteratorExhausted)
	}
	if err.Message != "iterator exhausted" {
		t.Fatalf("Message = %q, want %q", err.Message, "iterator exhausted")
	}
}

func TestNewAllocationFailure(t *testing.T) {
	cause := NewIteratorExhausted()
	err := NewAllocationFailure("split", cause)
	if err.Code != CodeAllocationFailure {
		t.Fatalf("Code = %q, want %q", err.Code, CodeAllocationFailure)
	}
	if err.Message == "" {
		t.Fatal("Message is empty")
	}
}

func TestIsTableErrorFalseForPlainError(t *testing.T) {
	if IsTableError(&notATableError{}) {
		t.Fatal("IsTableError(...) = true for a non-TableError error")
	}
}

type notATableError struct{}

func (*notATableError) Error() string { return "not a table error" }

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *TableError
		want int
	}{
		{NewKeyNotFound("x"), http.StatusUnauthorized},
		{NewIndexOutOfRange(1, 0), http.StatusInternalServerError},
		{NewIteratorExhausted(), http.StatusInternalServerError},
		{NewAllocationFailure("grow", NewIteratorExhausted()), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err.Code, got, tc.want)
		}
	}
}
