package util

import (
	"strings"
	"testing"
)

func TestValidateNonEmpty(t *testing.T) {
	if err := ValidateNonEmpty("user_id", "auth0|U123"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	for _, v := range []string{"", "   ", "\t\n"} {
		err := ValidateNonEmpty("user_id", v)
		if err == nil {
			t.Fatalf("expected error for %q", v)
		}
		if !strings.Contains(err.Error(), "user_id cannot be empty") {
			t.Errorf("unexpected error message %q", err.Error())
		}
	}
}
