package handlers

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
)

func TestDupErr(t *testing.T) {
	t.Run("duplicate key becomes the named conflict", func(t *testing.T) {
		err := dupErr(gorm.ErrDuplicatedKey, "DUPLICATE_SUBMISSION", "already submitted")
		e, ok := apperr.As(err)
		if !ok {
			t.Fatalf("dupErr returned %T, want *apperr.Error", err)
		}
		if e.Kind != apperr.KindConflict || e.Code != "DUPLICATE_SUBMISSION" {
			t.Errorf("got kind=%v code=%q, want Conflict DUPLICATE_SUBMISSION", e.Kind, e.Code)
		}
	})

	t.Run("wrapped duplicate key still conflicts", func(t *testing.T) {
		wrapped := fmt.Errorf("create failed: %w", gorm.ErrDuplicatedKey)
		e, ok := apperr.As(dupErr(wrapped, "PHONE_EXISTS", "phone already registered"))
		if !ok || e.Kind != apperr.KindConflict || e.Code != "PHONE_EXISTS" {
			t.Errorf("wrapped duplicate not mapped to Conflict: %v", e)
		}
	})

	t.Run("other failures stay upstream", func(t *testing.T) {
		cause := errors.New("connection reset")
		e, ok := apperr.As(dupErr(cause, "DUPLICATE_SUBMISSION", "already submitted"))
		if !ok || e.Kind != apperr.KindUpstream {
			t.Fatalf("got %v, want Upstream", e)
		}
		if !errors.Is(e, cause) {
			t.Error("upstream error lost its cause")
		}
	})
}

func TestGuardedUpdate(t *testing.T) {
	t.Run("matched row passes", func(t *testing.T) {
		res := &gorm.DB{RowsAffected: 1}
		if err := guardedUpdate(res, "PAYMENT_ALREADY_RESOLVED", "resolved concurrently"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("zero matched rows means a concurrent writer won", func(t *testing.T) {
		res := &gorm.DB{RowsAffected: 0}
		e, ok := apperr.As(guardedUpdate(res, "PAYMENT_ALREADY_RESOLVED", "resolved concurrently"))
		if !ok {
			t.Fatal("expected *apperr.Error")
		}
		if e.Kind != apperr.KindConflict || e.Code != "PAYMENT_ALREADY_RESOLVED" {
			t.Errorf("got kind=%v code=%q, want Conflict PAYMENT_ALREADY_RESOLVED", e.Kind, e.Code)
		}
	})

	t.Run("statement failure is upstream, not conflict", func(t *testing.T) {
		res := &gorm.DB{Error: errors.New("deadlock detected")}
		e, ok := apperr.As(guardedUpdate(res, "LOAN_ALREADY_RETURNED", "already returned"))
		if !ok || e.Kind != apperr.KindUpstream {
			t.Errorf("got %v, want Upstream", e)
		}
	})
}
