package semantic

import "github.com/yaklabco/gojs/pkg/ast"

// ImportEntry is one binding brought in by an import declaration.
type ImportEntry struct {
	ModuleRequest string
	// ImportName is the exported name in the other module, "default", or "*"
	// for a namespace import.
	ImportName string
	LocalName  string
	Span       ast.Span
}

// ExportEntry is one name a module exports.
type ExportEntry struct {
	Span ast.Span
	// ExportName is empty for `export * from "m"`.
	ExportName string
	// LocalName is set for exports of local bindings.
	LocalName string
	// ImportName is set for re-exports; "*" re-exports a namespace.
	ImportName    string
	ModuleRequest string
}

// ModuleRecord summarizes the import and export surface of a program.
type ModuleRecord struct {
	IsModule              bool
	RequestedModules      []string
	ImportEntries         []ImportEntry
	LocalExportEntries    []ExportEntry
	IndirectExportEntries []ExportEntry
	StarExportEntries     []ExportEntry
	// ExportedBindings maps each exported name to the span that exports it.
	ExportedBindings map[string]ast.Span
	ExportDefault    *ast.Span

	requested map[string]struct{}
}

// HasExport reports whether the module exports name.
func (m *ModuleRecord) HasExport(name string) bool {
	_, ok := m.ExportedBindings[name]
	return ok
}

func buildModuleRecord(program *ast.Program) *ModuleRecord {
	m := &ModuleRecord{
		IsModule:         program.IsModule,
		ExportedBindings: make(map[string]ast.Span),
		requested:        make(map[string]struct{}),
	}

	for _, stmt := range program.Body {
		switch n := stmt.(type) {
		case *ast.ImportDeclaration:
			m.request(n.Source.Value)
			for _, spec := range n.Specifiers {
				m.ImportEntries = append(m.ImportEntries, importEntry(n.Source.Value, spec))
			}

		case *ast.ExportNamedDeclaration:
			m.exportNamed(n)

		case *ast.ExportDefaultDeclaration:
			span := n.Span
			m.ExportDefault = &span
			local := "*default*"
			switch d := n.Declaration.(type) {
			case *ast.Function:
				if d.ID != nil {
					local = d.ID.Name
				}
			case *ast.Class:
				if d.ID != nil {
					local = d.ID.Name
				}
			}
			m.addLocal(ExportEntry{Span: n.Span, ExportName: "default", LocalName: local})

		case *ast.ExportAllDeclaration:
			m.request(n.Source.Value)
			if n.Exported == nil {
				m.StarExportEntries = append(m.StarExportEntries, ExportEntry{
					Span:          n.Span,
					ImportName:    "*",
					ModuleRequest: n.Source.Value,
				})
				continue
			}
			name := ast.ModuleExportNameString(n.Exported)
			m.IndirectExportEntries = append(m.IndirectExportEntries, ExportEntry{
				Span:          n.Span,
				ExportName:    name,
				ImportName:    "*",
				ModuleRequest: n.Source.Value,
			})
			m.ExportedBindings[name] = n.Span
		}
	}

	return m
}

func (m *ModuleRecord) request(source string) {
	if _, ok := m.requested[source]; ok {
		return
	}
	m.requested[source] = struct{}{}
	m.RequestedModules = append(m.RequestedModules, source)
}

func (m *ModuleRecord) addLocal(entry ExportEntry) {
	m.LocalExportEntries = append(m.LocalExportEntries, entry)
	m.ExportedBindings[entry.ExportName] = entry.Span
}

func (m *ModuleRecord) exportNamed(n *ast.ExportNamedDeclaration) {
	switch d := n.Declaration.(type) {
	case *ast.VariableDeclaration:
		for _, decl := range d.Declarations {
			ast.BoundNames(decl.ID, func(ident *ast.BindingIdentifier) {
				m.addLocal(ExportEntry{Span: ident.Span, ExportName: ident.Name, LocalName: ident.Name})
			})
		}
	case *ast.Function:
		if d.ID != nil {
			m.addLocal(ExportEntry{Span: d.ID.Span, ExportName: d.ID.Name, LocalName: d.ID.Name})
		}
	case *ast.Class:
		if d.ID != nil {
			m.addLocal(ExportEntry{Span: d.ID.Span, ExportName: d.ID.Name, LocalName: d.ID.Name})
		}
	}

	if n.Source != nil {
		m.request(n.Source.Value)
	}
	for _, spec := range n.Specifiers {
		exported := ast.ModuleExportNameString(spec.Exported)
		local := ast.ModuleExportNameString(spec.Local)
		if n.Source != nil {
			m.IndirectExportEntries = append(m.IndirectExportEntries, ExportEntry{
				Span:          spec.Span,
				ExportName:    exported,
				ImportName:    local,
				ModuleRequest: n.Source.Value,
			})
			m.ExportedBindings[exported] = spec.Span
			continue
		}
		m.addLocal(ExportEntry{Span: spec.Span, ExportName: exported, LocalName: local})
	}
}

func importEntry(source string, spec ast.ImportSpecifierKind) ImportEntry {
	switch s := spec.(type) {
	case *ast.ImportDefaultSpecifier:
		return ImportEntry{ModuleRequest: source, ImportName: "default", LocalName: s.Local.Name, Span: s.Span}
	case *ast.ImportNamespaceSpecifier:
		return ImportEntry{ModuleRequest: source, ImportName: "*", LocalName: s.Local.Name, Span: s.Span}
	case *ast.ImportSpecifier:
		return ImportEntry{ModuleRequest: source, ImportName: ast.ModuleExportNameString(s.Imported), LocalName: s.Local.Name, Span: s.Span}
	}
	return ImportEntry{ModuleRequest: source}
}
