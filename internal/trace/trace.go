package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Entry is one frame of the trace.
type Entry struct {
	RunID        string     `json:"run_id"`
	Frame        uint64     `json:"frame"`
	Observer     [3]float32 `json:"observer"`
	Chunk        [2]int64   `json:"chunk"`
	ViewDistance uint       `json:"view_distance"`
	Loaded       int        `json:"loaded"`
	Pooled       int        `json:"pooled"`
	Allocated    int        `json:"allocated"`
	FrameLoads   int        `json:"frame_loads"`
	FrameUnloads int        `json:"frame_unloads"`
	Voxels       int        `json:"voxels"`
	UpdateMicros int64      `json:"update_us"`
}

// Writer appends entries as zstd-compressed JSON lines.
type Writer struct {
	runID string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create trace encoder: %w", err)
	}
	return &Writer{
		runID: uuid.NewString(),
		f:     f,
		enc:   enc,
		w:     bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// RunID identifies every entry written by this writer.
func (w *Writer) RunID() string {
	return w.runID
}

// Write stamps e with the run id and appends it.
func (w *Writer) Write(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return fmt.Errorf("trace writer closed")
	}
	e.RunID = w.runID
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	if w.w != nil {
		err = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	return err
}

// ReadAll decodes every entry of a trace file.
func ReadAll(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open trace decoder: %w", err)
	}
	defer dec.Close()

	var entries []Entry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("decode trace line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan trace: %w", err)
	}
	return entries, nil
}
