package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
)

// writeJSON writes v to path indented with tabs, creating parent
// directories. HTML characters are kept as is and there is no trailing
// newline, so reruns over the same data produce identical bytes.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}
	if err := os.WriteFile(path, bytes.TrimSuffix(buf.Bytes(), []byte("\n")), 0644); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}
	log.Info("Wrote file", "path", path, "bytes", buf.Len()-1)
	return nil
}
