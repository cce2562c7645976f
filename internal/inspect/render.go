package inspect

import (
	"fmt"
	"strings"

	"github.com/smykla-skalski/mariabridge/internal/report"
)

// Render formats r as a summary followed by a table of checks.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", r.Path, r.Size)

	if r.Plugins > 0 {
		fmt.Fprintf(&b, "%d plugin(s), %d bridge entry point(s)\n", r.Plugins, len(r.Trampolines))
	}

	if len(r.HostBridge) > 0 {
		fmt.Fprintf(&b, "host bridge: %s\n", strings.Join(r.HostBridge, ", "))
	}

	rows := make([][]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		rows = append(rows, []string{report.Mark(c.OK), c.Name, c.Message})
	}

	b.WriteString(report.Table([]string{"", "Check", "Result"}, rows))
	b.WriteByte('\n')

	return b.String()
}
