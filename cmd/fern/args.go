package main

import "strings"

// Flag vocabulary of the dispatcher. Matching is case-sensitive exact string
// match.
var knownFlags = []string{
	"--version", "-v", "--optimize", "--help", "-h", "--main", "--time",
}

// IsFlag reports whether arg is one of the recognized flags, either bare or
// in --flag=value form. An argument with "=" anywhere before the matched
// token is never a flag, even when its prefix resembles one: "a=--main" and
// "--main2=x" are both literal paths.
func IsFlag(arg string) bool {
	for _, name := range knownFlags {
		if arg == name || strings.HasPrefix(arg, name+"=") {
			return true
		}
	}
	return false
}

// Classify rewrites raw arguments for the parser: recognized flags,
// subcommands, and plain paths pass through; a token that begins with "-" but
// matches no known flag is a literal path, so it is escaped behind a "--"
// terminator instead of being rejected as an unknown flag. A leading "help"
// becomes the help flag, so "help" prints usage and "help check" prints the
// check command's usage.
func Classify(args []string) []string {
	if len(args) > 0 && args[0] == "help" {
		return append(Classify(args[1:]), "--help")
	}
	out := make([]string, 0, len(args))
	terminated := false
	for _, arg := range args {
		switch {
		case terminated || arg == "--":
			terminated = true
			out = append(out, arg)
		case IsFlag(arg) || !strings.HasPrefix(arg, "-"):
			out = append(out, arg)
		default:
			out = append(out, "--", arg)
			terminated = true
		}
	}
	return out
}
