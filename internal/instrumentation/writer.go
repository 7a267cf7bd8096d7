package instrumentation

import "os"

// stderrWriter routes exporter output to stderr without holding a reference
// to os.Stderr at construction time, which keeps test capture working.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}
