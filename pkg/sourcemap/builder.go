package sourcemap

import "unicode/utf8"

// Builder accumulates mappings from generated output positions to original source
// positions for a single source file.
type Builder struct {
	path   string
	source string
	lines  *LineIndex

	names     []string
	nameIndex map[string]int
	mappings  []Mapping

	// Running generated position, advanced lazily over the output buffer.
	scanned int
	genLine int
	genCol  int
}

// NewBuilder creates a builder for the source file at path.
func NewBuilder(path, source string) *Builder {
	return &Builder{
		path:      path,
		source:    source,
		lines:     NewLineIndex(source),
		nameIndex: make(map[string]int),
	}
}

// AddMapping maps the end of output to the original byte offset. output must be the
// whole generated buffer so far; it is only ever appended to between calls.
func (b *Builder) AddMapping(output []byte, original uint32) {
	b.add(output, original, -1)
}

// AddNamedMapping is AddMapping with an original identifier name attached.
func (b *Builder) AddNamedMapping(output []byte, original uint32, name string) {
	idx, ok := b.nameIndex[name]
	if !ok {
		idx = len(b.names)
		b.names = append(b.names, name)
		b.nameIndex[name] = idx
	}
	b.add(output, original, idx)
}

func (b *Builder) add(output []byte, original uint32, name int) {
	b.advance(output)
	origLine, origCol := b.lines.Position(original)

	m := Mapping{
		GeneratedLine:   b.genLine,
		GeneratedColumn: b.genCol,
		SourceIndex:     0,
		OriginalLine:    origLine,
		OriginalColumn:  origCol,
		NameIndex:       name,
	}

	// Later mappings at the same generated position are more specific.
	if n := len(b.mappings); n > 0 {
		last := &b.mappings[n-1]
		if last.GeneratedLine == m.GeneratedLine && last.GeneratedColumn == m.GeneratedColumn {
			if name < 0 && last.NameIndex >= 0 {
				return
			}
			*last = m
			return
		}
	}
	b.mappings = append(b.mappings, m)
}

func (b *Builder) advance(output []byte) {
	for b.scanned < len(output) {
		c := output[b.scanned]
		if c == '\n' {
			b.genLine++
			b.genCol = 0
			b.scanned++
			continue
		}
		if c < utf8.RuneSelf {
			b.genCol++
			b.scanned++
			continue
		}
		r, size := utf8.DecodeRune(output[b.scanned:])
		if r >= 0x10000 {
			b.genCol += 2
		} else {
			b.genCol++
		}
		b.scanned += size
	}
}

// Mappings returns the mappings recorded so far.
func (b *Builder) Mappings() []Mapping {
	return b.mappings
}

// Build encodes the accumulated mappings into a source map.
func (b *Builder) Build() *SourceMap {
	return &SourceMap{
		Version:        Version,
		Sources:        []string{b.path},
		SourcesContent: []string{b.source},
		Names:          append([]string{}, b.names...),
		Mappings:       string(encodeMappings(b.mappings)),
	}
}

func encodeMappings(mappings []Mapping) []byte {
	var (
		buf      []byte
		line     int
		prevCol  int
		prevSrc  int
		prevLine int
		prevOrig int
		prevName int
	)

	for i, m := range mappings {
		for line < m.GeneratedLine {
			buf = append(buf, ';')
			line++
			prevCol = 0
		}
		if i > 0 && len(buf) > 0 && buf[len(buf)-1] != ';' {
			buf = append(buf, ',')
		}

		buf = AppendVLQ(buf, m.GeneratedColumn-prevCol)
		prevCol = m.GeneratedColumn
		buf = AppendVLQ(buf, m.SourceIndex-prevSrc)
		prevSrc = m.SourceIndex
		buf = AppendVLQ(buf, m.OriginalLine-prevLine)
		prevLine = m.OriginalLine
		buf = AppendVLQ(buf, m.OriginalColumn-prevOrig)
		prevOrig = m.OriginalColumn
		if m.NameIndex >= 0 {
			buf = AppendVLQ(buf, m.NameIndex-prevName)
			prevName = m.NameIndex
		}
	}
	return buf
}
