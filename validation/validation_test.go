package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestValidatorRequired(t *testing.T) {
	if New().Required("user_id", "auth0|U123").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("user_id", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("user_id", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorMaxLength(t *testing.T) {
	if New().MaxLength("q", "abc", 3).HasErrors() {
		t.Error("expected no error at the limit")
	}
	if !New().MaxLength("q", "abcd", 3).HasErrors() {
		t.Error("expected error over the limit")
	}
}

func TestValidatorRange(t *testing.T) {
	tests := []struct {
		value int
		ok    bool
	}{
		{0, true},
		{100, true},
		{101, false},
		{-1, false},
	}
	for _, tc := range tests {
		got := !New().Range("per_page", tc.value, 0, 100).HasErrors()
		if got != tc.ok {
			t.Errorf("Range(%d) ok=%v, want %v", tc.value, got, tc.ok)
		}
	}
}

func TestValidatorPattern(t *testing.T) {
	const sortPattern = `^[a-z_.]+:-?1$`
	if New().Pattern("sort", "date:1", sortPattern).HasErrors() {
		t.Error("expected match")
	}
	if New().Pattern("sort", "", sortPattern).HasErrors() {
		t.Error("empty value should be skipped")
	}
	if !New().Pattern("sort", "date:asc", sortPattern).HasErrors() {
		t.Error("expected mismatch")
	}
	if !New().Pattern("sort", "x", "[").HasErrors() {
		t.Error("invalid pattern should be reported as mismatch")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"json", "yaml"}
	if New().OneOf("output", "yaml", allowed).HasErrors() {
		t.Error("expected yaml to be allowed")
	}
	if New().OneOf("output", "", allowed).HasErrors() {
		t.Error("empty value should be skipped")
	}
	v := New().OneOf("output", "xml", allowed)
	if !v.HasErrors() {
		t.Fatal("expected error for xml")
	}
	if !strings.Contains(v.Errors()[0].Message, "json, yaml") {
		t.Errorf("unexpected message %q", v.Errors()[0].Message)
	}
}

func TestValidatorCustom(t *testing.T) {
	if New().Custom(true, "f", "bad").HasErrors() {
		t.Error("expected no error")
	}
	if !New().Custom(false, "f", "bad").HasErrors() {
		t.Error("expected error")
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Required("a", "x").Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	err := New().
		Required("user_id", "").
		OneOf("output", "xml", []string{"json", "yaml"}).
		Err()
	if err == nil {
		t.Fatal("expected error")
	}

	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(ve.Fields) != 2 || !ve.Has("user_id") || !ve.Has("output") {
		t.Errorf("unexpected fields %+v", ve.Fields)
	}
	if !strings.Contains(err.Error(), "user_id: is required") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Error("expected IsValidation through wrapping")
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("id", "x"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := Required("id", ""); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

type testConfig struct {
	Domain   string        `mapstructure:"domain" validate:"required_without=BaseURL,omitempty,hostname"`
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ClientID string        `json:"client_id" validate:"omitempty,max=8"`
}

func TestStructValidateValid(t *testing.T) {
	cfg := testConfig{Domain: "tenant.example.com", Timeout: time.Second}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	cfg = testConfig{BaseURL: "http://127.0.0.1:8080/", Timeout: time.Second}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid with base url only, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(testConfig{ClientID: "much-too-long"})
	if err == nil {
		t.Fatal("expected error")
	}

	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error, got %T", err)
	}
	for _, field := range []string{"domain", "timeout", "client_id"} {
		if !ve.Has(field) {
			t.Errorf("expected error for %s, got %+v", field, ve.Fields)
		}
	}
	if !strings.Contains(err.Error(), "domain: is required when base_url is not set") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStructValidateBadHostAndURL(t *testing.T) {
	err := Validate(testConfig{Domain: "not a host", BaseURL: "::nope", Timeout: time.Second})
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !ve.Has("domain") || !ve.Has("base_url") {
		t.Errorf("unexpected fields %+v", ve.Fields)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"BaseURL":  "base_url",
		"ClientID": "client_id",
		"Timeout":  "timeout",
		"userName": "user_name",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
