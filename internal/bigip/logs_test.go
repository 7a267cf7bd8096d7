package bigip

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tailCaptureServer records every utilCmdArgs value and serves a fixed tail.
func tailCaptureServer(t *testing.T, commandResult string) (*httptest.Server, *[]string) {
	t.Helper()
	var captured []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, bashPath, r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "run", body["command"])
		captured = append(captured, body["utilCmdArgs"])
		_ = json.NewEncoder(w).Encode(map[string]string{"commandResult": commandResult})
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestTailLogCommandIgnoresFilterContent(t *testing.T) {
	srv, captured := tailCaptureServer(t, "line1\nline2\n")
	client := newTokenClient(t, srv.URL)
	ctx := context.Background()

	// The filter must never vary the command string, metacharacters or not.
	filters := []string{"", "ERROR", `; rm -rf /`, "$(reboot)", "' OR '1'='1"}
	for _, filter := range filters {
		_, err := client.TailLog(ctx, TailOptions{Lines: 20, Contains: filter})
		require.NoError(t, err)
	}

	require.Len(t, *captured, len(filters))
	for _, cmd := range *captured {
		assert.Equal(t, "-c 'tail -n 20 /var/log/ltm'", cmd)
	}
}

func TestTailLogFiltersClientSide(t *testing.T) {
	srv, _ := tailCaptureServer(t, "ok request\nERROR bad thing\nok again\nERROR worse\n")
	client := newTokenClient(t, srv.URL)

	lines, err := client.TailLog(context.Background(), TailOptions{Lines: 10, Contains: "ERROR"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ERROR bad thing", "ERROR worse"}, lines)
}

func TestTailLogPreservesLinesVerbatim(t *testing.T) {
	srv, _ := tailCaptureServer(t, "  spaced\ttabbed  \nplain\n")
	client := newTokenClient(t, srv.URL)

	lines, err := client.TailLog(context.Background(), TailOptions{Lines: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"  spaced\ttabbed  ", "plain"}, lines)
}

func TestTailLogRejectsNonPositiveLines(t *testing.T) {
	srv, captured := tailCaptureServer(t, "")
	client := newTokenClient(t, srv.URL)

	for _, lines := range []int{0, -5} {
		_, err := client.TailLog(context.Background(), TailOptions{Lines: lines})
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, *captured, "validation failures must not reach the network")
}

func TestTailLogClampsToCeiling(t *testing.T) {
	srv, captured := tailCaptureServer(t, "line\n")
	client, err := NewClient(Config{Host: srv.URL, Token: "fake-token", MaxTailLines: 100})
	require.NoError(t, err)

	_, err = client.TailLog(context.Background(), TailOptions{Lines: 100000})
	require.NoError(t, err)
	require.Len(t, *captured, 1)
	assert.Equal(t, "-c 'tail -n 100 /var/log/ltm'", (*captured)[0])
}

func TestTailLogEmptyOutput(t *testing.T) {
	srv, _ := tailCaptureServer(t, "")
	client := newTokenClient(t, srv.URL)

	lines, err := client.TailLog(context.Background(), TailOptions{Lines: 5})
	require.NoError(t, err)
	assert.Empty(t, lines)
}
