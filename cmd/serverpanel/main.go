package main

import (
	"os"
	"strconv"
	"strings"

	"serverpanel/internal/cli"
)

func isServerID(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

// rewriteDirectServerLookupArgs makes `serverpanel <id>` work like `serverpanel servers show <id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`serverpanel --dir x 3`), so the first positional token is
// searched for, not just argv[1].
func rewriteDirectServerLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Flags that take a separate value. Unknown flags are skipped without their value so an id
	// is never consumed by mistake.
	valueFlags := map[string]bool{
		"--dir":             true,
		"--format":          true,
		"-v":                true,
		"--v":               true,
		"--log_dir":         true,
		"--log_file":        true,
		"--vmodule":         true,
		"--stderrthreshold": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if !isServerID(a) {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "servers", "show")
		out = append(out, argv[i:]...)
		return out
	}
	return argv
}

func main() {
	os.Args = rewriteDirectServerLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
