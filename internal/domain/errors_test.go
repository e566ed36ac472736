// internal/domain/errors_test.go
package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/waabox/jobwatch/internal/domain"
)

func TestParseError_CanBeDetectedWithErrorsIs(t *testing.T) {
	perr := &domain.ParseError{LineNo: 3, Line: "x,y", Err: domain.ErrFieldCount}
	wrapped := fmt.Errorf("scanning: %w", perr)
	if !errors.Is(wrapped, domain.ErrFieldCount) {
		t.Error("expected errors.Is to detect ErrFieldCount in wrapped error")
	}
	if errors.Is(wrapped, domain.ErrTimestamp) {
		t.Error("did not expect ErrTimestamp to match")
	}
	var target *domain.ParseError
	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to find *ParseError")
	}
	if target.LineNo != 3 {
		t.Errorf("expected line 3, got %d", target.LineNo)
	}
}

func TestParseError_MessageIncludesLine(t *testing.T) {
	perr := &domain.ParseError{LineNo: 7, Line: "27:80:99,x,START,1", Err: domain.ErrTimestamp}
	if !strings.Contains(perr.Error(), "line 7") || !strings.Contains(perr.Error(), "27:80:99") {
		t.Errorf("unexpected error text: %s", perr.Error())
	}
}
