package main

import (
	"fmt"
	"io"

	"github.com/pquerna/cachecontrol/cacheobject"
)

// runEncode prints the Cache-Control value for the arguments and returns the exit code.
// With check, the value is parsed back and the understood directives are printed too.
func runEncode(stdout, stderr io.Writer, args []string, check bool) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "encode: pattern or directives required")
		return 2
	}
	pattern, opts := parseOptionArgs(args)
	value, err := header(pattern, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if value == "" {
		fmt.Fprintln(stderr, "encode: no directives")
		return 1
	}
	fmt.Fprintf(stdout, "Cache-Control: %s\n", value)
	if check {
		cd, err := cacheobject.ParseResponseCacheControl(value)
		if err != nil {
			fmt.Fprintf(stderr, "check: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "%+v\n", *cd)
	}
	return 0
}
