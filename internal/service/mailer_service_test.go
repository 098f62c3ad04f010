package service

import (
	"strings"
	"testing"
)

func TestOTPEmailBody(t *testing.T) {
	body := otpEmailBody("Jordan", "482913")

	if !strings.Contains(body, "Jordan") {
		t.Fatal("body missing recipient name")
	}
	if !strings.Contains(body, "482913") {
		t.Fatal("body missing the code")
	}
	if !strings.Contains(body, "10 minutes") {
		t.Fatal("body missing the validity window")
	}
}
