package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/pinwalk/pkg/connector"
)

type mappingFile struct {
	File       string           `json:"file,omitempty"`
	Base       int              `json:"base"`
	State      string           `json:"state,omitempty"`
	Connectors []connectorEntry `json:"connectors"`
}

type connectorEntry struct {
	Old   string `json:"old"`
	Index int    `json:"index"`
	New   string `json:"new"`
}

// MappingInfo describes the run a mapping came from.
type MappingInfo struct {
	File  string
	Base  int
	State string
}

// WriteMappingJSON encodes m as JSON and writes it to w.
func WriteMappingJSON(w io.Writer, m *connector.Mapping, info MappingInfo) error {
	out := mappingFile{
		File:       info.File,
		Base:       info.Base,
		State:      info.State,
		Connectors: make([]connectorEntry, 0, m.Len()),
	}
	for old, idx := range m.All() {
		out.Connectors = append(out.Connectors, connectorEntry{
			Old:   old,
			Index: idx,
			New:   connector.Name(idx, connector.RolePin),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportMappingJSON writes m to a JSON file at path.
// This is a convenience wrapper around [WriteMappingJSON] for file-based
// output.
func ExportMappingJSON(path string, m *connector.Mapping, info MappingInfo) (err error) {
	f, err := Create(path)
	if err != nil {
		return err
	}
	defer checkClose(f, &err)
	return WriteMappingJSON(f, m, info)
}
