package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetVersions(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("a.cs", []byte("class A {}"), 0)
	id2 := fs.Add("a.cs", []byte("class B {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	f, ok := fs.GetByPath("a.cs")
	if !ok {
		t.Fatalf("GetByPath: file not found")
	}
	if f.ID != id2 {
		t.Errorf("GetByPath returned version %d, want %d", f.ID, id2)
	}
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Get(FileID(99)) != nil {
		t.Errorf("Get on unknown id should return nil")
	}
}

func TestLoadNormalizesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Program.cs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class A\r\n{\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "class A\n{\n}\n" {
		t.Errorf("content = %q", got)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.cs")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("Test0.cs", []byte("\nusing System;\n\n    class A {}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 2, Col: 1}},
		{7, LineCol{Line: 2, Col: 7}},
		{14, LineCol{Line: 2, Col: 14}},
		{15, LineCol{Line: 3, Col: 1}},
		{20, LineCol{Line: 4, Col: 5}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestColumnsCountUTF16Units(t *testing.T) {
	line := "x = \"héllo\" + y; // 😀 z"
	fs := NewFileSet()
	id := fs.AddVirtual("Test0.cs", []byte(line+"\n"))
	f := fs.Get(id)

	tests := []struct {
		off uint32
		col uint32
	}{
		{0, 1},
		{8, 8},   // 'l' after the two-byte é
		{15, 15}, // y
		{26, 24}, // z after a surrogate pair
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != (LineCol{Line: 1, Col: tt.col}) {
			t.Errorf("offset %d: got %+v, want col %d", tt.off, got, tt.col)
		}
		if back := UTF16Prefix(line, int(tt.col)-1); back != int(tt.off) {
			t.Errorf("UTF16Prefix(col %d) = %d, want %d", tt.col, back, tt.off)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.cs", []byte("first\nsecond\nthird")))
	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
	if n := f.LineCount(); n != 3 {
		t.Errorf("LineCount = %d, want 3", n)
	}
}

func TestConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fs.AddVirtual(filepath.Join("dir", string(rune('a'+i%26))+".cs"), []byte("class A {}"))
			if fs.Get(id) == nil {
				t.Errorf("file %d vanished", id)
			}
		}(i)
	}
	wg.Wait()
	if fs.Len() != 32 {
		t.Errorf("Len = %d, want 32", fs.Len())
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "src/app/Program.cs"}
	if got := f.FormatPath(PathBasename, ""); got != "Program.cs" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath(PathAuto, ""); got != "src/app/Program.cs" {
		t.Errorf("auto = %q", got)
	}
	virtual := &File{Path: "Test0.cs", Flags: FileVirtual}
	if got := virtual.FormatPath(PathAbsolute, ""); got != "Test0.cs" {
		t.Errorf("virtual absolute = %q", got)
	}
}
