package lint

import (
	"strings"

	"github.com/tidwall/btree"

	"github.com/yaklabco/gojs/pkg/ast"
	"github.com/yaklabco/gojs/pkg/sourcemap"
)

// directivePrefixes are the tool names a disable comment may start with.
var directivePrefixes = []string{"eslint-", "oxlint-"}

type directiveKind uint8

const (
	directiveDisable directiveKind = iota
	directiveEnable
	directiveDisableLine
	directiveDisableNextLine
)

// Checked longest first so "disable" does not shadow "disable-line".
var directiveKeywords = []struct {
	word string
	kind directiveKind
}{
	{"disable-next-line", directiveDisableNextLine},
	{"disable-line", directiveDisableLine},
	{"disable", directiveDisable},
	{"enable", directiveEnable},
}

// suppression is a half-open byte range in which rules are silenced. A nil
// rule list silences every rule.
type suppression struct {
	start, end uint32
	rules      []string
}

// DisableDirectives indexes the regions of a file silenced by
// eslint-disable style comments.
type DisableDirectives struct {
	// Keyed by region start. Regions may overlap.
	regions btree.Map[uint32, []suppression]
}

// BuildDisableDirectives scans comments for disable directives.
//
// A block disable runs from the end of its comment to the matching enable or
// the end of the file. An enable without rules closes every open region; with
// rules it closes the regions opened for those rules. Line directives cover
// the comment's own line or the line after it.
func BuildDisableDirectives(source string, comments []ast.Comment) *DisableDirectives {
	d := &DisableDirectives{}
	var lines *sourcemap.LineIndex
	lineRange := func(offset uint32, delta int) (uint32, uint32) {
		if lines == nil {
			lines = sourcemap.NewLineIndex(source)
		}
		line := lines.Line(offset) + delta
		if line >= lines.LineCount() {
			return uint32(len(source)), uint32(len(source))
		}
		end := uint32(len(source)) + 1
		if line+1 < lines.LineCount() {
			end = lines.LineStart(line + 1)
		}
		return lines.LineStart(line), end
	}

	eof := uint32(len(source)) + 1
	var openAll *uint32
	openRules := map[string]uint32{}
	var order []string

	for _, c := range comments {
		kind, rules, ok := parseDirective(c.Content(source))
		if !ok {
			continue
		}
		switch kind {
		case directiveDisable:
			at := c.Span.End
			if rules == nil {
				if openAll == nil {
					openAll = &at
				}
				continue
			}
			for _, r := range rules {
				if _, open := openRules[r]; !open {
					openRules[r] = at
					order = append(order, r)
				}
			}
		case directiveEnable:
			at := c.Span.Start
			if rules == nil {
				if openAll != nil {
					d.add(*openAll, at, nil)
					openAll = nil
				}
				for _, r := range order {
					if start, open := openRules[r]; open {
						d.add(start, at, []string{r})
						delete(openRules, r)
					}
				}
				order = order[:0]
				continue
			}
			for _, r := range rules {
				if start, open := openRules[r]; open {
					d.add(start, at, []string{r})
					delete(openRules, r)
				}
			}
		case directiveDisableLine:
			start, end := lineRange(c.Span.Start, 0)
			d.add(start, end, rules)
		case directiveDisableNextLine:
			start, end := lineRange(c.Span.End, 1)
			d.add(start, end, rules)
		}
	}

	if openAll != nil {
		d.add(*openAll, eof, nil)
	}
	for _, r := range order {
		if start, open := openRules[r]; open {
			d.add(start, eof, []string{r})
		}
	}
	return d
}

func (d *DisableDirectives) add(start, end uint32, rules []string) {
	if end <= start {
		return
	}
	existing, _ := d.regions.Get(start)
	d.regions.Set(start, append(existing, suppression{start: start, end: end, rules: rules}))
}

// Contains reports whether a diagnostic from ruleName whose span begins inside
// a disabled region is suppressed.
func (d *DisableDirectives) Contains(ruleName string, span ast.Span) bool {
	suppressed := false
	d.regions.Descend(span.Start, func(_ uint32, regions []suppression) bool {
		for _, s := range regions {
			if span.Start < s.end && s.matches(ruleName) {
				suppressed = true
				return false
			}
		}
		return true
	})
	return suppressed
}

// Len returns the number of indexed regions.
func (d *DisableDirectives) Len() int {
	n := 0
	d.regions.Scan(func(_ uint32, regions []suppression) bool {
		n += len(regions)
		return true
	})
	return n
}

func (s suppression) matches(ruleName string) bool {
	if s.rules == nil {
		return true
	}
	for _, r := range s.rules {
		if RuleNameMatches(ruleName, r) {
			return true
		}
	}
	return false
}

// RuleNameMatches reports whether a rule name written in a directive or
// config key refers to the rule with the given ID. Either side may omit the
// plugin prefix.
func RuleNameMatches(ruleID, written string) bool {
	if ruleID == written {
		return true
	}
	return strings.HasSuffix(ruleID, "/"+written) || strings.HasSuffix(written, "/"+ruleID)
}

// parseDirective recognizes a directive in a comment body. A nil rule list
// means all rules.
func parseDirective(body string) (directiveKind, []string, bool) {
	text := strings.TrimSpace(body)
	text = strings.TrimLeft(text, "*")
	text = strings.TrimSpace(text)

	prefixed := false
	for _, prefix := range directivePrefixes {
		if rest, ok := strings.CutPrefix(text, prefix); ok {
			text = rest
			prefixed = true
			break
		}
	}
	if !prefixed {
		return 0, nil, false
	}

	for _, kw := range directiveKeywords {
		rest, ok := strings.CutPrefix(text, kw.word)
		if !ok {
			continue
		}
		if rest != "" && !isDirectiveSpace(rest[0]) {
			return 0, nil, false
		}
		return kw.kind, parseRuleList(rest), true
	}
	return 0, nil, false
}

func parseRuleList(text string) []string {
	if before, _, found := strings.Cut(text, "--"); found {
		text = before
	}
	var rules []string
	for _, field := range strings.Split(text, ",") {
		if name := strings.TrimSpace(field); name != "" {
			rules = append(rules, name)
		}
	}
	return rules
}

func isDirectiveSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
