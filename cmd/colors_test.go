package cmd

import (
	"testing"

	"github.com/fatih/color"
)

func TestFormatKindWithColor(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})

	tests := []struct {
		name string
		kind string
		want string
	}{
		{name: "success", kind: "success", want: "success"},
		{name: "failure", kind: "failure", want: "failure"},
		{name: "error", kind: "error", want: "error"},
		{name: "unknown", kind: "pending", want: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatKindWithColor(tt.kind); got != tt.want {
				t.Fatalf("formatKindWithColor(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}
