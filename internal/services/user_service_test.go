package services

import (
	"context"
	"errors"
	"testing"
)

// Own-account guards run before any storage access, so a zero service is
// enough to exercise them.

func TestDeleteUserRefusesSelf(t *testing.T) {
	s := &UserService{}
	if err := s.DeleteUser(context.Background(), 7, 7); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("DeleteUser(self) = %v, want ErrSelfDelete", err)
	}
}

func TestResetPasswordRefusesSelf(t *testing.T) {
	s := &UserService{}
	if err := s.ResetPassword(context.Background(), 7, 7, "s3cret"); !errors.Is(err, ErrSelfReset) {
		t.Errorf("ResetPassword(self) = %v, want ErrSelfReset", err)
	}
}
