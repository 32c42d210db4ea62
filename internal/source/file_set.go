package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns every file of one check run. Add/Load may be called from
// several goroutines; returned *File values are never mutated afterwards.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	byPath  map[string]FileID
	baseDir string
}

// NewFileSet creates an empty FileSet whose relative paths are computed against the working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates an empty FileSet with an explicit base directory.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		byPath:  make(map[string]FileID),
		baseDir: baseDir,
	}
}

func (fs *FileSet) SetBaseDir(dir string) {
	fs.mu.Lock()
	fs.baseDir = dir
	fs.mu.Unlock()
}

// BaseDir returns the directory relative paths are computed against.
func (fs *FileSet) BaseDir() string {
	fs.mu.RLock()
	dir := fs.baseDir
	fs.mu.RUnlock()
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return dir
}

// Add registers already normalised content under path and returns its ID.
// Adding the same path twice creates a new version; GetByPath sees the latest.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	clean := filepath.ToSlash(filepath.Clean(path))
	f := &File{
		Path:    clean,
		Content: content,
		LineIdx: indexLines(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	id, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	f.ID = FileID(id)
	fs.files = append(fs.files, f)
	fs.byPath[clean] = f.ID
	return f.ID
}

// Load reads path from disk, strips a UTF-8 BOM and folds CRLF line endings.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the command line or a directory walk
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	var flags FileFlags
	content, bom := stripBOM(content)
	if bom {
		flags |= FileHadBOM
	}
	content, crlf := normalizeNewlines(content)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual registers in-memory content (stdin, tests).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, _ = normalizeNewlines(content)
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id or nil when id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// GetByPath returns the latest version of the file loaded from path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.byPath[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

// Len returns the number of files (all versions).
func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// Resolve converts span boundaries into 1-based line/column pairs.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}

// Position maps a byte offset inside the file to a line/column pair.
func (f *File) Position(off uint32) LineCol {
	return position(f.Content, f.LineIdx, off)
}

// LineCount returns the number of lines; a trailing newline does not open a new line.
func (f *File) LineCount() uint32 {
	n := uint32(len(f.LineIdx)) //nolint:gosec // bounded by content size
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// GetLine returns the text of the 1-based line without its newline.
func (f *File) GetLine(line uint32) string {
	if line == 0 {
		return ""
	}
	var start uint32
	if line > 1 {
		if int(line-2) >= len(f.LineIdx) {
			return ""
		}
		start = f.LineIdx[line-2] + 1
	}
	end := uint32(len(f.Content)) //nolint:gosec // bounded by content size
	if int(line-1) < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// Text returns the source text covered by span.
func (f *File) Text(span Span) string {
	if span.End > uint32(len(f.Content)) || span.Start > span.End { //nolint:gosec // bounded by content size
		return ""
	}
	return string(f.Content[span.Start:span.End])
}
