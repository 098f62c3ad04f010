package entity

import (
	"testing"
	"time"
)

func TestUserVerifyOTP(t *testing.T) {
	issued := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(10 * time.Minute)

	newUser := func() *User {
		u := &User{}
		u.IssueOTP("123456", expiry)
		return u
	}

	t.Run("matching code within expiry verifies", func(t *testing.T) {
		u := newUser()
		if err := u.VerifyOTP("123456", issued.Add(5*time.Minute)); err != nil {
			t.Fatalf("VerifyOTP returned %v", err)
		}
		if !u.IsVerified {
			t.Fatal("user not verified")
		}
		if u.OTP != nil || u.OTPExpiry != nil {
			t.Fatal("code not cleared after verification")
		}
	})

	t.Run("exactly at expiry still verifies", func(t *testing.T) {
		u := newUser()
		if err := u.VerifyOTP("123456", expiry); err != nil {
			t.Fatalf("VerifyOTP at expiry returned %v", err)
		}
	})

	t.Run("expired code fails with ErrOTPExpired", func(t *testing.T) {
		u := newUser()
		err := u.VerifyOTP("123456", expiry.Add(time.Second))
		if err != ErrOTPExpired {
			t.Fatalf("expected ErrOTPExpired, got %v", err)
		}
		if u.IsVerified {
			t.Fatal("user verified despite expired code")
		}
	})

	t.Run("wrong code fails with ErrOTPMismatch", func(t *testing.T) {
		u := newUser()
		err := u.VerifyOTP("654321", issued.Add(time.Minute))
		if err != ErrOTPMismatch {
			t.Fatalf("expected ErrOTPMismatch, got %v", err)
		}
		if u.OTP == nil {
			t.Fatal("code cleared despite mismatch")
		}
	})

	t.Run("no outstanding code fails with ErrOTPNotIssued", func(t *testing.T) {
		u := &User{}
		if err := u.VerifyOTP("123456", issued); err != ErrOTPNotIssued {
			t.Fatalf("expected ErrOTPNotIssued, got %v", err)
		}
	})

	t.Run("reissue overwrites the outstanding code", func(t *testing.T) {
		u := newUser()
		u.IssueOTP("999999", expiry.Add(10*time.Minute))
		if err := u.VerifyOTP("123456", issued); err != ErrOTPMismatch {
			t.Fatalf("old code still accepted: %v", err)
		}
		if err := u.VerifyOTP("999999", issued); err != nil {
			t.Fatalf("new code rejected: %v", err)
		}
	})
}

func TestUserSnapshot(t *testing.T) {
	u := &User{
		Name:     "Jordan Li",
		Email:    "jordan@example.com",
		Password: "hashed-secret",
		Phone:    "5551234",
	}

	snapshot := u.Snapshot()

	if snapshot["name"] != "Jordan Li" || snapshot["email"] != "jordan@example.com" {
		t.Fatalf("snapshot missing identity fields: %v", snapshot)
	}
	for key := range snapshot {
		if key == "password" {
			t.Fatal("snapshot carries the password")
		}
	}
}
