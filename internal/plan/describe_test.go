package plan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/javiermolinar/semester/internal/scheduler"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		ok   bool
	}{
		{
			name: "no free combination",
			err:  &scheduler.ResolveError{Code: "COMP 202", Term: "Fall 2025", Err: scheduler.ErrNoFreeCombination},
			want: "no section of COMP 202 fits your current Fall 2025 schedule",
			ok:   true,
		},
		{
			name: "term unavailable",
			err:  &scheduler.ResolveError{Code: "ECON 208", Term: "Fall 2025", Err: scheduler.ErrTermUnavailable},
			want: "ECON 208 is not offered in Fall 2025",
			ok:   true,
		},
		{
			name: "wrapped unknown selection",
			err: fmt.Errorf("pick: %w", &scheduler.ResolveError{
				Code: "COMP 202", Term: "Fall 2025",
				Err: fmt.Errorf("Lec 009: %w", scheduler.ErrUnknownSelection),
			}),
			want: "COMP 202 has no such section in Fall 2025",
			ok:   true,
		},
		{
			name: "plan error",
			err:  fmt.Errorf("COMP 202: %w", ErrAlreadyAdded),
			want: "COMP 202: course is already in the plan",
			ok:   true,
		},
		{
			name: "fault",
			err:  errors.New("disk full"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Describe(tt.err)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Describe() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
