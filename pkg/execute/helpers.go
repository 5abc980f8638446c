// pkg/execute/helpers.go

package execute

import (
	"fmt"
	"strings"
	"time"
)

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 {
		return t
	}
	return 3 * time.Minute
}

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + joinArgs(args)
}

// joinArgs quotes args for readable log lines.
func joinArgs(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.ContainsAny(arg, " \t") {
			quoted = append(quoted, fmt.Sprintf("%q", arg))
			continue
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}
