// Package domain contains the core types for memory-dump analysis caching.
package domain

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// OperationType identifies one of the fixed forensic analysis operations.
// The set is closed: dispatch on it with a switch, never with reflection.
type OperationType uint8

const (
	// OpProcessList enumerates processes found in the dump.
	OpProcessList OperationType = iota
	// OpCommandLines extracts process command lines.
	OpCommandLines
	// OpModuleList lists DLLs loaded by processes.
	OpModuleList
	// OpNetworkScan scans for network connections and listeners.
	OpNetworkScan
	// OpMalwareScan looks for injected or hidden code regions.
	OpMalwareScan

	// operationCount is the number of operation types. Keep last.
	operationCount
)

// Operations returns all operation types in declaration order.
func Operations() []OperationType {
	ops := make([]OperationType, 0, operationCount)
	for op := OperationType(0); op < operationCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// String returns the CLI-facing name of the operation.
func (o OperationType) String() string {
	switch o {
	case OpProcessList:
		return "pslist"
	case OpCommandLines:
		return "cmdline"
	case OpModuleList:
		return "dlllist"
	case OpNetworkScan:
		return "netscan"
	case OpMalwareScan:
		return "malfind"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// ParseOperation converts a CLI-facing name into an OperationType.
func ParseOperation(name string) (OperationType, error) {
	switch name {
	case "pslist":
		return OpProcessList, nil
	case "cmdline":
		return OpCommandLines, nil
	case "dlllist":
		return OpModuleList, nil
	case "netscan":
		return OpNetworkScan, nil
	case "malfind":
		return OpMalwareScan, nil
	default:
		return 0, zerr.With(ErrUnknownOperation, "operation", name)
	}
}

// Filter narrows an analysis operation to a subset of the dump.
type Filter struct {
	// PID restricts the operation to a single process when non-nil.
	PID *uint32
}

// Signature returns a canonical, collision-resistant serialization of the
// filter. Different filtered views of the same dump must not collide in the
// cache, so the signature is part of the cache key.
func (f Filter) Signature() string {
	canonical := ""
	if f.PID != nil {
		canonical = "pid=" + strconv.FormatUint(uint64(*f.PID), 10) + ";"
	}
	return strconv.FormatUint(xxhash.Sum64String(canonical), 16)
}

// CacheKey uniquely identifies a cached analysis result within one cache.
type CacheKey struct {
	Path      string
	Operation OperationType
	FilterSig string
}

// NewCacheKey builds the cache key for an analysis request.
func NewCacheKey(path string, op OperationType, filter Filter) CacheKey {
	return CacheKey{
		Path:      path,
		Operation: op,
		FilterSig: filter.Signature(),
	}
}
