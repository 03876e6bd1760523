package util

import "testing"

func TestDeref(t *testing.T) {
	v := "en"
	if Deref(&v) != "en" {
		t.Error("expected Deref to return en")
	}
	var nilp *string
	if Deref(nilp) != "" {
		t.Error("expected zero value for nil pointer")
	}
}

func TestNonEmpty(t *testing.T) {
	if NonEmpty("") != nil {
		t.Error("expected nil for empty string")
	}
	if got := NonEmpty("fr"); got == nil || *got != "fr" {
		t.Errorf("expected pointer to fr, got %v", got)
	}
}
