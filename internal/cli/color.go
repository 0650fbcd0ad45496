package cli

import "github.com/fatih/color"

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// statusColor renders a pass/warn/fail status string in its matching color.
func statusColor(status string) string {
	switch status {
	case "pass":
		return green(status)
	case "warn":
		return yellow(status)
	case "fail":
		return red(status)
	default:
		return status
	}
}
