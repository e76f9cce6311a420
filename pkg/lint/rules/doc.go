// Package rules provides the built-in lint rules for gojs.
//
// # Rules
//
//   - eslint/no-debugger: Disallow the use of debugger (fixable)
//
//   - eslint/no-undef: Disallow the use of undeclared variables
//
//   - eslint/no-unreachable: Disallow unreachable code
//
//   - jsdoc/implements-on-classes: Reports @implements on non-constructor functions
//
// # Rule IDs
//
// Rule IDs are "plugin/name". Configuration may use either the full ID or
// the bare name, so "no-debugger" and "eslint/no-debugger" select the same
// rule.
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - recommended: correctness rules at their default severity
//   - strict: every rule as an error
//   - jsdoc: documentation checks only
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll. Each rule
// embeds lint.BaseRule and reports through the lint.Context it is given.
package rules
