// Package sourcemap builds and decodes Source Map Revision 3 documents.
package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Version is the only source map revision this package produces.
const Version = 3

// ErrUnsupportedVersion is returned by Parse for documents other than revision 3.
var ErrUnsupportedVersion = errors.New("unsupported source map version")

// SourceMap is the JSON document described by the Source Map Revision 3 proposal.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// Mapping is one decoded segment. Lines and columns are zero-based; columns count
// UTF-16 code units. NameIndex is -1 when the segment carries no name.
type Mapping struct {
	GeneratedLine   int
	GeneratedColumn int
	SourceIndex     int
	OriginalLine    int
	OriginalColumn  int
	NameIndex       int
}

// ToJSON serializes the map.
func (m *SourceMap) ToJSON() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal source map: %w", err)
	}
	return data, nil
}

// ToDataURL returns the map as a base64 data URL suitable for an inline
// sourceMappingURL comment.
func (m *SourceMap) ToDataURL() (string, error) {
	data, err := m.ToJSON()
	if err != nil {
		return "", err
	}
	return "data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Parse decodes a JSON source map document.
func Parse(data []byte) (*SourceMap, error) {
	var m SourceMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse source map: %w", err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}
	return &m, nil
}

// Decode expands the mappings string into absolute segments.
func (m *SourceMap) Decode() ([]Mapping, error) {
	var (
		out                             []Mapping
		source, origLine, origCol, name int
	)

	for genLine, line := range strings.Split(m.Mappings, ";") {
		genCol := 0
		for _, segment := range strings.Split(line, ",") {
			if segment == "" {
				continue
			}
			fields, err := decodeSegment(segment)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", genLine, err)
			}

			genCol += fields[0]
			mapping := Mapping{GeneratedLine: genLine, GeneratedColumn: genCol, SourceIndex: -1, NameIndex: -1}
			if len(fields) >= 4 {
				source += fields[1]
				origLine += fields[2]
				origCol += fields[3]
				mapping.SourceIndex = source
				mapping.OriginalLine = origLine
				mapping.OriginalColumn = origCol
			}
			if len(fields) == 5 {
				name += fields[4]
				mapping.NameIndex = name
			}
			out = append(out, mapping)
		}
	}
	return out, nil
}

func decodeSegment(segment string) ([]int, error) {
	fields := make([]int, 0, 5)
	for segment != "" {
		value, n, err := DecodeVLQ(segment)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value)
		segment = segment[n:]
	}
	switch len(fields) {
	case 1, 4, 5:
		return fields, nil
	}
	return nil, fmt.Errorf("%w: segment with %d fields", ErrInvalidVLQ, len(fields))
}
