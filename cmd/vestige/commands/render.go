package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vestigehq/vestige/internal/adapters/cache"
	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/ui/style"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(style.Cyan)
	dimStyle    = lipgloss.NewStyle().Foreground(style.Slate)
)

// renderReport writes one report as a column-aligned table. The header is
// styled; the body stays plain so tabwriter's width accounting is not
// thrown off by ANSI sequences.
func renderReport(w io.Writer, r *domain.Report) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		headerStyle.Render(r.Operation.String()),
		dimStyle.Render(fmt.Sprintf("%s (%d rows)", r.Path, r.Rows())))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	switch r.Operation {
	case domain.OpProcessList:
		_, _ = fmt.Fprintln(tw, "PID\tPPID\tNAME\tTHREADS\tHANDLES\tCREATED\tWOW64")
		for _, p := range r.Processes {
			_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%s\t%s\n",
				p.PID, p.PPID, p.Name, p.Threads, p.Handles, formatTime(p.CreateTime), formatBool(p.Wow64))
		}
	case domain.OpCommandLines:
		_, _ = fmt.Fprintln(tw, "PID\tPROCESS\tARGS")
		for _, cl := range r.CommandLines {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", cl.PID, cl.Process, cl.Args)
		}
	case domain.OpModuleList:
		_, _ = fmt.Fprintln(tw, "PID\tPROCESS\tBASE\tSIZE\tNAME\tPATH")
		for _, m := range r.Modules {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t0x%x\t%d\t%s\t%s\n",
				m.PID, m.Process, m.Base, m.Size, m.Name, m.Path)
		}
	case domain.OpNetworkScan:
		_, _ = fmt.Fprintln(tw, "PROTO\tLOCAL\tFOREIGN\tSTATE\tPID\tOWNER\tCREATED")
		for _, conn := range r.Connections {
			_, _ = fmt.Fprintf(tw, "%s\t%s:%d\t%s:%d\t%s\t%d\t%s\t%s\n",
				conn.Protocol, conn.LocalAddr, conn.LocalPort, conn.ForeignAddr, conn.ForeignPort,
				conn.State, conn.PID, conn.Owner, formatTime(conn.Created))
		}
	case domain.OpMalwareScan:
		_, _ = fmt.Fprintln(tw, "PID\tPROCESS\tREGION\tPROTECTION\tPRIVATE")
		for _, f := range r.Findings {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t0x%x-0x%x\t%s\t%s\n",
				f.PID, f.Process, f.Start, f.End, f.Protection, formatBool(f.PrivateMemory))
		}
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
}

// renderStats writes the per-operation cache statistics table.
func renderStats(w io.Writer, stats []cache.OperationStats) {
	_, _ = fmt.Fprintln(w, headerStyle.Render("analysis caches"))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "OPERATION\tENTRIES\tACCESSES\tHITS\tMISSES\tHIT RATE\tEVICTED\tEXPIRED\tINVALIDATED")
	for _, s := range stats {
		_, _ = fmt.Fprintf(tw, "%s\t%d/%d\t%d\t%d\t%d\t%.1f%%\t%d\t%d\t%d\n",
			s.Operation.String(),
			s.Stats.Entries, s.Stats.MaxEntries,
			s.Stats.TotalAccesses, s.Stats.Hits, s.Stats.Misses,
			s.Stats.HitRate()*100,
			s.Stats.Evictions, s.Stats.Expirations, s.Stats.Invalidations)
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatBool(b bool) string {
	if b {
		return style.Check
	}
	return "-"
}
