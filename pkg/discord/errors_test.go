package discord

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"alvrsettings/internal/domain"
)

// echoT renders a key followed by its sorted template data.
type echoT struct{}

func (echoT) T(locale, key string, data map[string]any) string {
	parts := []string{locale, key}
	for k, v := range data {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts[2:])
	return strings.Join(parts, " ")
}

func TestDomainErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"range",
			fmt.Errorf("set: %w", &domain.RangeError{Path: "p", Value: 7, Expected: "[0, 5]"}),
			"zh error.range Expected=[0, 5] Path=p Value=7",
		},
		{
			"type",
			&domain.TypeError{Path: "p", Value: "x", Expected: "float"},
			"zh error.type Expected=float Path=p Value=x",
		},
		{"unknown path", &domain.UnknownPathError{Path: "p"}, "zh error.unknown_path Path=p"},
		{"missing name", &domain.MissingNameError{}, "zh error.generic"},
		{"foreign", errors.New("boom"), "zh error.generic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DomainErrorMessage(echoT{}, "zh", tt.err); got != tt.want {
				t.Errorf("DomainErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}
