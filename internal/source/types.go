package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how the file content was obtained.
	FileFlags uint8
)

// NoFileID marks spans that point into no file (I/O and config problems,
// timings). FileSet.Get returns nil for it.
const NoFileID FileID = 1<<32 - 1

const (
	// FileVirtual marks content that did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the normalised content of one source file together with its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx хранит смещения всех '\n' в Content.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}
