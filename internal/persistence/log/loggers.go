// Package log records executed actions as zstd-compressed JSONL, one file
// per run. The writers are safe for concurrent use; the sim core itself is
// single-threaded and never depends on them.
package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ActionEntry is one executed (or denied) action.
type ActionEntry struct {
	Step    uint64  `json:"step"`
	Actor   string  `json:"actor,omitempty"`
	Action  string  `json:"action"`
	OK      bool    `json:"ok"`
	Code    string  `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`
	From    *[2]int `json:"from,omitempty"`
	To      *[2]int `json:"to,omitempty"`
}

type jsonlZstdWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func newJSONLZstdWriter(dir, prefix string) (*jsonlZstdWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s-%s.jsonl.zst", prefix, time.Now().UTC().Format("20060102-150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &jsonlZstdWriter{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (w *jsonlZstdWriter) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return fmt.Errorf("log writer closed")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonlZstdWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err
}

// ActionLogger appends ActionEntry lines for one run.
type ActionLogger struct{ w *jsonlZstdWriter }

func NewActionLogger(dir string) (*ActionLogger, error) {
	w, err := newJSONLZstdWriter(dir, "actions")
	if err != nil {
		return nil, err
	}
	return &ActionLogger{w: w}, nil
}

func (l *ActionLogger) Write(e ActionEntry) error { return l.w.write(e) }
func (l *ActionLogger) Close() error              { return l.w.close() }
