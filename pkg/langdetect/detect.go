// Package langdetect classifies files by language. It uses go-enry, the Go
// port of GitHub linguist, to recognize JavaScript sources by extension or by
// an interpreter line, and to spot vendored paths that should not be linted.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// JavaScript is the linguist name for the only language the linter parses.
const JavaScript = "JavaScript"

// shebangProbe bounds how much of a file Language needs to see.
const shebangProbe = 256

// Language returns the linguist language of a file, or "" when unknown.
// The extension decides when it is recognized; extensionless files fall back
// to the interpreter line, so `#!/usr/bin/env node` scripts count as
// JavaScript.
func Language(path string, head []byte) string {
	if filepath.Ext(path) != "" {
		langs := enry.GetLanguagesByExtension(path, nil, nil)
		if slices.Contains(langs, JavaScript) {
			return JavaScript
		}
		if len(langs) > 0 {
			return langs[0]
		}
	}
	if lang, safe := enry.GetLanguageByShebang(head); safe {
		return lang
	}
	return ""
}

// IsJavaScript reports whether a file should be linted as JavaScript.
func IsJavaScript(path string, head []byte) bool {
	return Language(path, head) == JavaScript
}

// HasShebang reports whether content starts with an interpreter line.
func HasShebang(content []byte) bool {
	return bytes.HasPrefix(content, []byte("#!"))
}

// Probe returns the prefix of content that Language inspects.
func Probe(content []byte) []byte {
	if len(content) > shebangProbe {
		return content[:shebangProbe]
	}
	return content
}

// IsVendored reports paths linguist treats as third-party code, such as
// node_modules or bundled copies of common libraries. relPath uses forward
// slashes.
func IsVendored(relPath string) bool {
	return enry.IsVendor(filepath.ToSlash(relPath))
}
