// Package volatility implements ports.Analyzer by shelling out to the
// Volatility 3 framework.
package volatility

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
	"go.trai.ch/zerr"
)

// plugin maps each operation to its Volatility 3 windows plugin.
func plugin(op domain.OperationType) string {
	switch op {
	case domain.OpProcessList:
		return "windows.pslist.PsList"
	case domain.OpCommandLines:
		return "windows.cmdline.CmdLine"
	case domain.OpModuleList:
		return "windows.dlllist.DllList"
	case domain.OpNetworkScan:
		return "windows.netscan.NetScan"
	case domain.OpMalwareScan:
		return "windows.malfind.Malfind"
	default:
		return ""
	}
}

// Analyzer runs Volatility 3 plugins against memory dumps. It is a pure
// function of (path, operation, filter): same inputs against unchanged
// file content produce the same logical report, which is what makes the
// result cacheable at all.
type Analyzer struct {
	binary    string
	extraArgs []string
	logger    ports.Logger
}

// NewAnalyzer creates an analyzer invoking the given Volatility binary.
func NewAnalyzer(binary string, extraArgs []string, logger ports.Logger) *Analyzer {
	return &Analyzer{
		binary:    binary,
		extraArgs: extraArgs,
		logger:    logger,
	}
}

// Analyze runs one plugin and parses its JSON output. The call can take
// tens of seconds on a 100GB dump; callers must not hold locks across it.
func (a *Analyzer) Analyze(ctx context.Context, path string, op domain.OperationType, filter domain.Filter) (*domain.Report, error) {
	name := plugin(op)
	if name == "" {
		return nil, zerr.With(domain.ErrUnknownOperation, "operation", op.String())
	}

	args := append([]string(nil), a.extraArgs...)
	args = append(args, "-r", "json", "-f", path, name)
	if filter.PID != nil && op != domain.OpNetworkScan {
		// netscan walks kernel pool allocations and takes no pid filter.
		args = append(args, "--pid", strconv.FormatUint(uint64(*filter.PID), 10))
	}

	a.logger.Info("running analysis", "plugin", name, "dump", path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		execErr := errors.Join(domain.ErrAnalyzerExec, err)
		execErr = zerr.With(execErr, "plugin", name)
		execErr = zerr.With(execErr, "stderr", tail(stderr.String(), 512))
		return nil, execErr
	}

	report, err := parseReport(path, op, stdout.Bytes())
	if err != nil {
		return nil, err
	}

	a.logger.Info("analysis complete", "plugin", name, "rows", report.Rows())
	return report, nil
}

// tail returns the last n bytes of s, trimmed.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
