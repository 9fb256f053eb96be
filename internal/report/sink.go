package report

import (
	"fmt"
	"os"
	"path/filepath"

	"stackaudit/internal/audit"
	consts "stackaudit/internal/shared/constants"
)

// FileSink writes the renderings of one run into a directory. Filenames are
// timestamp-suffixed so repeated runs never overwrite each other.
type FileSink struct {
	Dir string
}

// Paths lists the files one run produced.
type Paths struct {
	Text  string
	JSON  string
	Trail string
}

// Write renders the snapshot as text, JSON and CSV trail under a shared
// filename stem. Failure to create the sink is the only fatal error path of
// an audit run.
func (s FileSink) Write(snap audit.Snapshot) (Paths, error) {
	if err := os.MkdirAll(s.Dir, consts.DefaultDirPerm); err != nil {
		return Paths{}, fmt.Errorf("create report directory: %w", err)
	}

	stem := "audit_" + snap.StartedAt.Format("20060102_150405")
	paths := Paths{
		Text:  filepath.Join(s.Dir, stem+".txt"),
		JSON:  filepath.Join(s.Dir, stem+".json"),
		Trail: filepath.Join(s.Dir, stem+".csv"),
	}

	if err := os.WriteFile(paths.Text, []byte(RenderText(snap)), consts.DefaultFilePerm); err != nil {
		return Paths{}, fmt.Errorf("write text report: %w", err)
	}

	data, err := RenderJSON(snap)
	if err != nil {
		return Paths{}, fmt.Errorf("encode audit dump: %w", err)
	}
	if err := os.WriteFile(paths.JSON, data, consts.DefaultFilePerm); err != nil {
		return Paths{}, fmt.Errorf("write audit dump: %w", err)
	}

	f, err := os.OpenFile(paths.Trail, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.DefaultFilePerm)
	if err != nil {
		return Paths{}, fmt.Errorf("open trail file: %w", err)
	}
	defer f.Close()
	if err := WriteTrail(f, snap); err != nil {
		return Paths{}, err
	}

	return paths, nil
}
