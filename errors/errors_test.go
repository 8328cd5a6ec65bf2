package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseWalk, Kind: KindNotFound},
			want: "[walk] not_found",
		},
		{
			name: "with path",
			err:  &Error{Phase: PhaseLoad, Kind: KindInvalidInput, Path: []string{"module", "func3"}},
			want: "[load] invalid_input at module.func3",
		},
		{
			name: "with addr and detail",
			err:  &Error{Phase: PhaseDispatch, Kind: KindConflict, Addr: 0x1000, Detail: "duplicate breakpoint"},
			want: "[dispatch] conflict @ 0x1000: duplicate breakpoint",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError_Cause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(PhaseInstall, KindUnsupported, cause, "cannot install")

	if !strings.Contains(err.Error(), "caused by: boom") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestError_Is(t *testing.T) {
	a := Ordering(PhaseDispatch, "pop out of order")
	b := Ordering(PhaseDispatch, "different detail")
	c := NotFound(PhaseDispatch, "no table")

	if !stderrors.Is(a, b) {
		t.Error("errors with same phase and kind should match")
	}
	if stderrors.Is(a, c) {
		t.Error("errors with different kind should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("inner")
	err := New(PhaseWalk, KindOutOfBounds).
		Path("mod", "f0").
		Addr(0x40).
		Value(uint64(99)).
		Cause(cause).
		Detail("slot %d outside frame", 7).
		Build()

	if err.Phase != PhaseWalk || err.Kind != KindOutOfBounds {
		t.Fatalf("unexpected phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if err.Addr != 0x40 {
		t.Errorf("Addr = %#x, want 0x40", err.Addr)
	}
	if err.Detail != "slot 7 outside frame" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
	if err.Value != uint64(99) {
		t.Errorf("Value = %v", err.Value)
	}
}
