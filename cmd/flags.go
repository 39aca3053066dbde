package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Server flags
	Port           int
	Host           string
	DisableBrowser bool

	// Output flags
	Format string
	Output string
	Quiet  bool
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "server":
			addServerFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addServerFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().StringVar(&flags.Host, "host", "", "Host to bind to (overrides config)")
	cmd.Flags().BoolVar(&flags.DisableBrowser, "disable-browser", false, "Don't open browser automatically")
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "table", "Output format (table|json|yaml)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
}

// ValidateFormat checks a format flag value against the allowed set and
// suggests the closest match on a typo.
func ValidateFormat(format string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}

	suggestion := closestMatch(format, allowed)
	if suggestion != "" {
		return fmt.Errorf("unsupported format %q (did you mean %q?)", format, suggestion)
	}
	return fmt.Errorf("unsupported format %q (allowed: %s)", format, strings.Join(allowed, ", "))
}

// closestMatch returns the allowed value sharing the longest prefix
// with input, or "" when nothing is close.
func closestMatch(input string, allowed []string) string {
	input = strings.ToLower(input)
	best, bestLen := "", 0
	for _, a := range allowed {
		n := commonPrefixLen(input, strings.ToLower(a))
		if n > bestLen {
			best, bestLen = a, n
		}
	}
	if bestLen < 2 {
		return ""
	}
	return best
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// lookupChanged reports whether the user set a flag explicitly, so zero
// values don't clobber configuration defaults.
func lookupChanged(flags *pflag.FlagSet, name string) bool {
	flag := flags.Lookup(name)
	return flag != nil && flag.Changed
}
