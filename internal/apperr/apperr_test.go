package apperr

import (
	"context"
	"errors"
	"testing"
)

func TestStoreKeepsCauseInChain(t *testing.T) {
	err := Store("get order", context.DeadlineExceeded)
	if !errors.Is(err, ErrStore) {
		t.Fatalf("store errors must match ErrStore: %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("cause should survive wrapping: %v", err)
	}
}

func TestSentinelWrappers(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{NotFoundf("order %d", 7), ErrNotFound},
		{InvalidStatef("order %d is placed", 7), ErrInvalidState},
		{Validationf("missing phone"), ErrValidation},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Fatalf("%v should match %v", tc.err, tc.sentinel)
		}
	}
}
