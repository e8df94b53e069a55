// Package cli provides shared formatting helpers for netsim CLI tools.
package cli

import (
	"strings"

	"github.com/netlab-project/netlab/pkg/model"
)

// ANSI color helpers

func Green(s string) string  { return "\033[32m" + s + "\033[0m" }
func Yellow(s string) string { return "\033[33m" + s + "\033[0m" }
func Red(s string) string    { return "\033[31m" + s + "\033[0m" }
func Bold(s string) string   { return "\033[1m" + s + "\033[0m" }
func Dim(s string) string    { return "\033[2m" + s + "\033[0m" }

// TraceActionColor renders a trace hop's action with the color a human
// operator would expect when scanning a trace: green for successful
// delivery and ordinary forwarding, yellow for flood/learn/route/arp
// bookkeeping, red for anything that stops the packet.
func TraceActionColor(action model.TraceAction) string {
	s := string(action)
	switch action {
	case model.TraceDeliver, model.TraceForward, model.TraceACLAllow:
		return Green(s)
	case model.TraceFlood, model.TraceLearn, model.TraceRoute, model.TraceARP:
		return Yellow(s)
	case model.TraceDrop, model.TraceACLDeny:
		return Red(s)
	default:
		return s
	}
}

// DotPad pads name with dots to the given width.
// Example: DotPad("boot-ssh", 30) → "boot-ssh ....................."
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	dots := width - len(name) - 1
	return name + " " + strings.Repeat(".", dots)
}
