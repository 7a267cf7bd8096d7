package bigip

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	bashPath = "/mgmt/tm/util/bash"

	// ltmLogPath is the only file the tail wrapper will read. It is fixed
	// here, never caller-supplied, so no path can be injected.
	ltmLogPath = "/var/log/ltm"
)

// TailLog implements LogManager. The remote command is built from a fixed
// template parameterized only by the validated line count; the Contains
// filter is applied to the returned lines on this side of the wire. That
// split is the injection-avoidance invariant: caller text never reaches the
// command string.
func (c *restClient) TailLog(ctx context.Context, opts TailOptions) ([]string, error) {
	if opts.Lines <= 0 {
		return nil, &ValidationError{Field: "lines", Reason: "must be a positive integer"}
	}
	lines := opts.Lines
	if lines > c.cfg.MaxTailLines {
		lines = c.cfg.MaxTailLines
	}

	result, err := c.do(ctx, http.MethodPost, bashPath, map[string]string{
		"command":     "run",
		"utilCmdArgs": fmt.Sprintf("-c 'tail -n %d %s'", lines, ltmLogPath),
	})
	if err != nil {
		return nil, err
	}

	var output struct {
		CommandResult string `json:"commandResult"`
	}
	if err := result.Decode(&output); err != nil {
		return nil, err
	}

	raw := strings.Split(strings.TrimRight(output.CommandResult, "\n"), "\n")
	if len(raw) == 1 && raw[0] == "" {
		return []string{}, nil
	}
	if opts.Contains == "" {
		return raw, nil
	}

	matched := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.Contains(line, opts.Contains) {
			matched = append(matched, line)
		}
	}
	return matched, nil
}
