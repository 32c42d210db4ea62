package driver

import (
	"bytes"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"strcheck/internal/diag"
	"strcheck/internal/project"
	"strcheck/internal/source"
)

// reportConfig warns about [rules].disable entries that name no rule. The
// manifest is added to fs so the warning points at the offending string.
func reportConfig(fs *source.FileSet, m *project.Manifest, bag *diag.Bag) {
	unknown := m.Config.UnknownRules()
	if len(unknown) == 0 {
		return
	}
	id, err := fs.Load(m.Path)
	file := fs.Get(id)
	if err != nil {
		file = nil
	}
	for _, name := range unknown {
		span := source.Span{File: source.NoFileID}
		if file != nil {
			quoted := []byte(strconv.Quote(name))
			off := bytes.Index(file.Content, quoted)
			start, errStart := safecast.Conv[uint32](off)
			end, errEnd := safecast.Conv[uint32](off + len(quoted))
			if off >= 0 && errStart == nil && errEnd == nil {
				span = source.Span{File: file.ID, Start: start, End: end}
			}
		}
		bag.Add(diag.New(diag.SevWarning, diag.CfgUnknownRule, span,
			fmt.Sprintf("unknown rule %q in [rules].disable", name)))
	}
}
