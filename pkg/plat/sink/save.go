package sink

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/plat"
)

// Artifact is one encoded plat.
type Artifact struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// EncodeAll encodes every output in format f.
func EncodeAll(outputs []plat.Output, f Format) ([]Artifact, error) {
	arts := make([]Artifact, 0, len(outputs))
	for i, out := range outputs {
		var buf bytes.Buffer
		if err := Encode(&buf, out.Image, f); err != nil {
			return nil, fmt.Errorf("encode %s: %w", entryName(out.Name, i), err)
		}
		arts = append(arts, Artifact{Name: out.Name, Data: buf.Bytes()})
	}
	return arts, nil
}

// Save encodes outputs and writes them to path. See [Write].
func Save(outputs []plat.Output, path string, format Format) ([]string, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	arts, err := EncodeAll(outputs, format)
	if err != nil {
		return nil, err
	}
	return Write(arts, path, format)
}

// Write writes artifacts encoded in format to path and returns the files
// written.
//
// One artifact is written to path as is. Several are written next to it
// as "<stem>_<name><ext>", numbered when unnamed. A path ending in ".zip"
// holds every artifact as "<name><ext>" in one archive.
func Write(arts []Artifact, path string, format Format) ([]string, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	if len(arts) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to save")
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		if err := writeZip(arts, path, format); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	if len(arts) == 1 {
		if err := writeFile(path, arts[0].Data); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	written := make([]string, 0, len(arts))
	for i, art := range arts {
		p := fmt.Sprintf("%s_%s%s", stem, entryName(art.Name, i), format.Ext())
		if err := writeFile(p, art.Data); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

func entryName(name string, i int) string {
	if name != "" {
		return name
	}
	return strconv.Itoa(i + 1)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func writeZip(arts []Artifact, path string, format Format) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, art := range arts {
		w, err := zw.Create(entryName(art.Name, i) + format.Ext())
		if err != nil {
			return err
		}
		if _, err := w.Write(art.Data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}
