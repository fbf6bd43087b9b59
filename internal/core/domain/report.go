package domain

import "time"

// ProcessInfo is one row of a process enumeration.
type ProcessInfo struct {
	PID        uint32
	PPID       uint32
	Name       string
	Threads    int
	Handles    int
	CreateTime time.Time
	ExitTime   time.Time
	Wow64      bool
}

// CommandLine is the extracted command line of one process.
type CommandLine struct {
	PID     uint32
	Process string
	Args    string
}

// LoadedModule is one DLL loaded into a process.
type LoadedModule struct {
	PID     uint32
	Process string
	Base    uint64
	Size    uint64
	Name    string
	Path    string
}

// NetworkConnection is one connection or listener found by a network scan.
type NetworkConnection struct {
	Protocol    string
	LocalAddr   string
	LocalPort   uint16
	ForeignAddr string
	ForeignPort uint16
	State       string
	PID         uint32
	Owner       string
	Created     time.Time
}

// MalwareFinding is one suspicious memory region flagged by the malware scan.
type MalwareFinding struct {
	PID           uint32
	Process       string
	Start         uint64
	End           uint64
	Protection    string
	CommitCharge  uint64
	PrivateMemory bool
	Hexdump       string
	Disasm        string
}

// Report is the result of one analysis operation against one dump. Exactly
// one of the slices is populated, matching Operation.
type Report struct {
	Path      string
	Operation OperationType

	Processes    []ProcessInfo
	CommandLines []CommandLine
	Modules      []LoadedModule
	Connections  []NetworkConnection
	Findings     []MalwareFinding
}

// Rows returns the number of result rows, independent of operation type.
func (r *Report) Rows() int {
	switch r.Operation {
	case OpProcessList:
		return len(r.Processes)
	case OpCommandLines:
		return len(r.CommandLines)
	case OpModuleList:
		return len(r.Modules)
	case OpNetworkScan:
		return len(r.Connections)
	case OpMalwareScan:
		return len(r.Findings)
	default:
		return 0
	}
}
