package source

import (
	"path/filepath"
)

// Path display modes accepted by FormatPath.
const (
	PathAuto     = "auto"
	PathAbsolute = "absolute"
	PathRelative = "relative"
	PathBasename = "basename"
)

// FormatPath renders the file path for output. baseDir is only used by PathRelative.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case PathAbsolute:
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathRelative:
		if f.Flags&FileVirtual != 0 || baseDir == "" {
			return f.Path
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathBasename:
		return filepath.Base(f.Path)
	case PathAuto:
		// короткие и относительные пути показываем как есть
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	}
	return f.Path
}
