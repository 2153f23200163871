package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Anything other than
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ReadTimeline decodes a timeline document from r and validates it. r is
// not closed.
func ReadTimeline(r io.Reader, f Format) (*timeline.Timeline, error) {
	var doc document
	var err error
	if f == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&doc)
	} else {
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode timeline")
	}

	tl, err := fromWire(doc)
	if err != nil {
		return nil, err
	}
	if err := timeline.Validate(tl); err != nil {
		return nil, err
	}
	return tl, nil
}

// WriteTimeline encodes tl to w. JSON output is indented.
func WriteTimeline(tl *timeline.Timeline, w io.Writer, f Format) error {
	doc := toWire(tl)
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode timeline")
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode timeline")
	}
	return nil
}

// MarshalTimeline returns the indented JSON encoding of tl.
func MarshalTimeline(tl *timeline.Timeline) ([]byte, error) {
	return json.MarshalIndent(toWire(tl), "", "  ")
}

// UnmarshalTimeline decodes and validates a JSON timeline document.
func UnmarshalTimeline(data []byte) (*timeline.Timeline, error) {
	return ReadTimeline(bytes.NewReader(data), FormatJSON)
}

// ImportTimeline reads the timeline file at path, choosing the format by
// extension.
func ImportTimeline(path string) (*timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadTimeline(f, FormatFor(path))
}

// ExportTimeline writes tl to path, choosing the format by extension.
func ExportTimeline(tl *timeline.Timeline, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := WriteTimeline(tl, f, FormatFor(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
