package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatKindWithColor(kind string) string {
	switch strings.ToLower(kind) {
	case "success":
		return colorSuccess(kind)
	case "failure":
		return colorWarn(kind)
	case "error":
		return colorError(kind)
	default:
		return kind
	}
}
