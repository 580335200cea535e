package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeExpired, status: http.StatusGone, publicMsg: "resource expired", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing slug")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing slug" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatal("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "slug"})
	if base.Details() == nil {
		t.Fatal("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "create local")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
	if wrapped.Error() != "CONFLICT: create local" {
		t.Fatalf("unexpected Error() output %q", wrapped.Error())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeNotFound, "pedido not found")
	outer := fmt.Errorf("handler: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("As should find the typed error through wrapping")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("As should return nil for untyped errors")
	}
}

func TestDumpSurfacesPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_locales_slug",
		TableName:      "locales",
		Message:        "duplicate key value violates unique constraint",
	}
	wrapped := Wrap(CodeConflict, fmt.Errorf("create local: %w", pgErr), "consume invitation")

	d := Dump(wrapped)
	if d.Code != CodeConflict {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "idx_locales_slug" || d.PGTable != "locales" {
		t.Fatalf("postgres fields not surfaced: %+v", d)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected the full chain, got %v", d.Chain)
	}
}

func TestDumpNilError(t *testing.T) {
	d := Dump(nil)
	if d.TopMessage != "" || d.Code != "" {
		t.Fatalf("expected zero dump for nil error, got %+v", d)
	}
}
