// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, code lookup through
//              wrapped chains and JSON rendering.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-16 v0.2.0: Reduced to the trimmed error surface

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type codedError struct{}

func (codedError) Error() string { return "coded" }
func (codedError) Code() Code    { return CodeGrammar }

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap structured error keeps code",
			err:      New("store failed").WithCode(CodeStorageError),
			message:  "saving catalog",
			wantMsg:  "saving catalog: store failed",
			wantCode: CodeStorageError,
		},
		{
			name:     "wrap domain error keeps code",
			err:      fmt.Errorf("entry 0: %w", codedError{}),
			message:  "parsing catalog",
			wantMsg:  "parsing catalog: entry 0: coded",
			wantCode: CodeGrammar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}
			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
			if wrapped.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", wrapped.Code(), tt.wantCode)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("errors.Is should find the wrapped cause")
			}
		})
	}
}

func TestWrap_CopiesDetails(t *testing.T) {
	inner := New("inner").WithDetail("path", "catalog.json")
	outer := Wrap(inner, "outer").WithDetail("op", "load")

	details := outer.Details()
	if details["path"] != "catalog.json" {
		t.Errorf("details[path] = %v, want catalog.json", details["path"])
	}
	if details["op"] != "load" {
		t.Errorf("details[op] = %v, want load", details["op"])
	}
	if _, ok := inner.Details()["op"]; ok {
		t.Error("outer detail leaked into inner error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("context: %w", New("x").WithCode(CodeItemFormat))
	if !HasCode(err, CodeItemFormat) {
		t.Error("HasCode() should see code through fmt.Errorf wrapping")
	}
	if HasCode(errors.New("plain"), CodeItemFormat) {
		t.Error("HasCode() should be false for plain errors")
	}
	if GetCode(nil) != CodeUnknown {
		t.Error("GetCode(nil) should be CodeUnknown")
	}
}

func TestString(t *testing.T) {
	err := New("boom").WithCode(CodeConfigError).WithOperation("load").
		WithDetail("b", 2).WithDetail("a", 1)
	s := err.String()

	for _, want := range []string{"Error: boom", "Code: CONFIG_ERROR", "Operation: load", "Details: {a=1, b=2}"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in %q", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("disk full"), "write catalog").WithCode(CodeStorageError)
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "STORAGE_ERROR" {
		t.Errorf("code = %v, want STORAGE_ERROR", decoded["code"])
	}
	if decoded["cause"] != "disk full" {
		t.Errorf("cause = %v, want disk full", decoded["cause"])
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeGrammar, "parse"},
		{CodeFieldCoercion, "parse"},
		{CodeUnitMismatch, "pricing"},
		{CodeStorageError, "storage"},
		{CodeInvalidConfig, "config"},
		{CodeUnknown, "general"},
	}
	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.want {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
