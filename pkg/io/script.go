package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/placement"
)

type script struct {
	ItemID      string              `json:"itemId,omitempty" yaml:"itemId,omitempty"`
	NewItem     *item               `json:"newItem,omitempty" yaml:"newItem,omitempty"`
	GrabOffsetX float64             `json:"grabOffsetX" yaml:"grabOffsetX"`
	GrabOffsetY float64             `json:"grabOffsetY" yaml:"grabOffsetY"`
	Events      []placement.Pointer `json:"events" yaml:"events"`
	Cancel      bool                `json:"cancel,omitempty" yaml:"cancel,omitempty"`
}

// ReadScript decodes a drag script from r and checks its shape.
func ReadScript(r io.Reader, f Format) (*editor.Script, error) {
	var w script
	var err error
	if f == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&w)
	} else {
		err = json.NewDecoder(r).Decode(&w)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode script")
	}

	s := &editor.Script{
		ItemID:      w.ItemID,
		GrabOffsetX: w.GrabOffsetX,
		GrabOffsetY: w.GrabOffsetY,
		Events:      w.Events,
		Cancel:      w.Cancel,
	}
	if w.NewItem != nil {
		it, err := itemFromWire(*w.NewItem)
		if err != nil {
			return nil, err
		}
		s.NewItem = &it
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteScript encodes s to w as indented JSON.
func WriteScript(s *editor.Script, w io.Writer) error {
	out := script{
		ItemID:      s.ItemID,
		GrabOffsetX: s.GrabOffsetX,
		GrabOffsetY: s.GrabOffsetY,
		Events:      s.Events,
		Cancel:      s.Cancel,
	}
	if s.NewItem != nil {
		wi := itemToWire(*s.NewItem)
		out.NewItem = &wi
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ImportScript reads the drag script at path.
func ImportScript(path string) (*editor.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadScript(f, FormatFor(path))
}

// UnmarshalScript decodes and checks a JSON drag script.
func UnmarshalScript(data []byte) (*editor.Script, error) {
	return ReadScript(bytes.NewReader(data), FormatJSON)
}
