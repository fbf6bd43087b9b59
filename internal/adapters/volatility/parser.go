package volatility

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/vestigehq/vestige/internal/core/domain"
)

// row is one record of Volatility's JSON tree renderer. Tree output (e.g.
// pslist) nests child processes under __children; the parser flattens them.
type row map[string]any

// parseReport decodes the plugin's JSON output into a typed report.
func parseReport(path string, op domain.OperationType, data []byte) (*domain.Report, error) {
	var rows []row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Join(domain.ErrAnalyzerOutput, err)
	}

	flat := make([]row, 0, len(rows))
	flat = flatten(rows, flat)

	report := &domain.Report{Path: path, Operation: op}
	for _, r := range flat {
		switch op {
		case domain.OpProcessList:
			report.Processes = append(report.Processes, domain.ProcessInfo{
				PID:        asUint32(r["PID"]),
				PPID:       asUint32(r["PPID"]),
				Name:       asString(r["ImageFileName"]),
				Threads:    int(asUint32(r["Threads"])),
				Handles:    int(asUint32(r["Handles"])),
				CreateTime: asTime(r["CreateTime"]),
				ExitTime:   asTime(r["ExitTime"]),
				Wow64:      asBool(r["Wow64"]),
			})
		case domain.OpCommandLines:
			report.CommandLines = append(report.CommandLines, domain.CommandLine{
				PID:     asUint32(r["PID"]),
				Process: asString(r["Process"]),
				Args:    asString(r["Args"]),
			})
		case domain.OpModuleList:
			report.Modules = append(report.Modules, domain.LoadedModule{
				PID:     asUint32(r["PID"]),
				Process: asString(r["Process"]),
				Base:    asUint64(r["Base"]),
				Size:    asUint64(r["Size"]),
				Name:    asString(r["Name"]),
				Path:    asString(r["Path"]),
			})
		case domain.OpNetworkScan:
			report.Connections = append(report.Connections, domain.NetworkConnection{
				Protocol:    asString(r["Proto"]),
				LocalAddr:   asString(r["LocalAddr"]),
				LocalPort:   uint16(asUint32(r["LocalPort"])),
				ForeignAddr: asString(r["ForeignAddr"]),
				ForeignPort: uint16(asUint32(r["ForeignPort"])),
				State:       asString(r["State"]),
				PID:         asUint32(r["PID"]),
				Owner:       asString(r["Owner"]),
				Created:     asTime(r["Created"]),
			})
		case domain.OpMalwareScan:
			report.Findings = append(report.Findings, domain.MalwareFinding{
				PID:           asUint32(r["PID"]),
				Process:       asString(r["Process"]),
				Start:         asUint64(r["Start VPN"]),
				End:           asUint64(r["End VPN"]),
				Protection:    asString(r["Protection"]),
				CommitCharge:  asUint64(r["CommitCharge"]),
				PrivateMemory: asUint64(r["PrivateMemory"]) != 0,
				Hexdump:       asString(r["Hexdump"]),
				Disasm:        asString(r["Disasm"]),
			})
		}
	}
	return report, nil
}

// flatten appends rows and their __children depth-first.
func flatten(rows []row, out []row) []row {
	for _, r := range rows {
		out = append(out, r)
		children, ok := r["__children"].([]any)
		if !ok {
			continue
		}
		nested := make([]row, 0, len(children))
		for _, c := range children {
			if m, ok := c.(map[string]any); ok {
				nested = append(nested, m)
			}
		}
		out = flatten(nested, out)
	}
	return out
}

// Volatility renders unknown cells as null or "N/A"; all converters treat
// those as zero values rather than failing the whole report.

func asString(v any) string {
	s, _ := v.(string)
	if s == "N/A" || s == "-" {
		return ""
	}
	return s
}

func asUint32(v any) uint32 {
	return uint32(asUint64(v))
}

func asUint64(v any) uint64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return uint64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05.000000", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
