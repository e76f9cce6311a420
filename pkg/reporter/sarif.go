package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
	"github.com/yaklabco/gojs/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Result locations use
// lines and columns; fix replacements use byte ranges.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "gojs",
				Version:        version,
				InformationURI: "https://github.com/yaklabco/gojs",
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	if result != nil {
		rulesSeen := make(map[string]bool)
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			uri := filepath.ToSlash(relativeTo(r.opts.WorkingDir, file.Path))

			for i := range file.Result.Findings {
				finding := &file.Result.Findings[i]
				if !rulesSeen[finding.RuleID] {
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.ruleDescriptor(finding))
					rulesSeen[finding.RuleID] = true
				}
				run.Results = append(run.Results, sarifResult(uri, finding))
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// ruleDescriptor describes a rule from the registry when one is configured,
// falling back to the first finding's message.
func (r *SARIFReporter) ruleDescriptor(finding *lint.Finding) SARIFRule {
	rule := SARIFRule{
		ID:               finding.RuleID,
		Name:             finding.RuleName,
		ShortDescription: SARIFMultiformatText{Text: finding.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(finding.Severity)},
	}
	if r.opts.Registry == nil {
		return rule
	}
	if registered, ok := r.opts.Registry.GetByID(finding.RuleID); ok {
		rule.ShortDescription.Text = registered.Description()
		rule.DefaultConfig.Level = severityToSARIFLevel(registered.DefaultSeverity())
		rule.Properties = map[string]any{
			"tags":    registered.Tags(),
			"fixable": registered.CanFix(),
		}
	}
	return rule
}

func sarifResult(uri string, finding *lint.Finding) SARIFResult {
	message := finding.Message
	if finding.Help != "" {
		message += "\n" + finding.Help
	}

	result := SARIFResult{
		RuleID:  finding.RuleID,
		Level:   severityToSARIFLevel(finding.Severity),
		Message: SARIFMessage{Text: message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region: SARIFRegion{
					StartLine:   finding.StartLine,
					StartColumn: finding.StartColumn,
					EndLine:     finding.EndLine,
					EndColumn:   finding.EndColumn,
				},
			},
		}},
	}

	if !finding.HasFix() {
		return result
	}

	change := SARIFArtifactChange{ArtifactLocation: SARIFArtifactLocation{URI: uri}}
	for _, edit := range finding.FixEdits {
		offset, length := edit.StartOffset, edit.EndOffset-edit.StartOffset
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion:   SARIFRegion{ByteOffset: &offset, ByteLength: &length},
			InsertedContent: &SARIFInsertedContent{Text: edit.NewText},
		})
	}
	description := finding.Help
	if description == "" {
		description = "Apply the " + finding.RuleName + " fix"
	}
	result.Fixes = []SARIFFix{{
		Description:     SARIFMessage{Text: description},
		ArtifactChanges: []SARIFArtifactChange{change},
	}}
	return result
}

// severityToSARIFLevel converts a lint severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityOff:
		return "none"
	default:
		return "warning"
	}
}

// relativeTo returns path relative to dir when possible.
func relativeTo(dir, path string) string {
	if dir == "" {
		return path
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
