package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccollicutt/logextract/internal/jsonenc"
	"github.com/ccollicutt/logextract/pkg/group"
)

// Writer writes task groups below a root directory as
// <root>/<user>/<user>_<key>.json.
type Writer struct {
	root      string
	pretty    bool
	onCreated func(path string, count int)
}

// Option configures a Writer.
type Option func(*Writer)

// WithPretty indents output by two spaces and sorts object keys at every level.
func WithPretty(pretty bool) Option {
	return func(w *Writer) {
		w.pretty = pretty
	}
}

// WithCreatedHook registers fn to be called after each file is written.
func WithCreatedHook(fn func(path string, count int)) Option {
	return func(w *Writer) {
		w.onCreated = fn
	}
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{root: dir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// UserDir returns the directory files for userID are written to.
func (w *Writer) UserDir(userID string) string {
	return filepath.Join(w.root, userID)
}

// Write writes one file per group in lexicographic key order and returns the
// paths in that order. If two groups map to the same file name nothing is
// written and the error wraps ErrNameCollision. Otherwise the first failure
// aborts the remaining groups; files already written are left in place.
func (w *Writer) Write(userID string, groups *group.Groups) ([]string, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	dir := w.UserDir(userID)
	keys := groups.Keys()

	// Distinct keys can sanitize to the same file name.
	owners := make(map[string]string, len(keys))
	for _, key := range keys {
		name := FileName(userID, key)
		if prev, ok := owners[name]; ok {
			return nil, &WriteError{
				Path: filepath.Join(dir, name),
				Err:  fmt.Errorf("%w: groups %q and %q", ErrNameCollision, prev, key),
			}
		}
		owners[name] = key
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: err}
	}

	var written []string
	for _, key := range keys {
		recs := groups.Get(key)

		data, err := w.Encode(NewFile(userID, key, recs))
		if err != nil {
			return written, fmt.Errorf("encoding %s: %w", key, err)
		}

		path := filepath.Join(dir, FileName(userID, key))
		if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- export files are meant to be shared
			return written, &WriteError{Path: path, Err: err}
		}

		written = append(written, path)
		if w.onCreated != nil {
			w.onCreated(path, len(recs))
		}
	}

	return written, nil
}

// Encode renders a file document in the writer's mode. Compact output keeps
// field order and has no whitespace.
func (w *Writer) Encode(f *File) ([]byte, error) {
	data, err := jsonenc.Marshal(f)
	if err != nil {
		return nil, err
	}
	if !w.pretty {
		return data, nil
	}

	// Round-trip through generic maps so every object, including the
	// envelope and entries, is emitted with sorted keys.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return jsonenc.MarshalIndent(v, "  ")
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// FileName returns the file name for a group. Path separators in the key are
// replaced so every file stays inside the user directory. Write rejects
// groups whose names coincide after replacement.
func FileName(userID, key string) string {
	return fileNameReplacer.Replace(userID+"_"+key) + ".json"
}

// ValidateUserID rejects user ids that would escape or collapse the output
// directory.
func ValidateUserID(userID string) error {
	switch {
	case userID == "", userID == ".", userID == "..":
		return fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	case strings.ContainsAny(userID, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidUserID, userID)
	}
	return nil
}
