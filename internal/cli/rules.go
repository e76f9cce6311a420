package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/internal/ui/pretty"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			for _, rule := range rules {
				fixable := "-"
				if rule.CanFix() {
					fixable = "yes"
				}

				logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
					logging.FieldSeverity, rule.DefaultSeverity(),
					logging.FieldFixable, fixable,
					logging.FieldDescription, rule.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	cmd.AddCommand(newExplainCommand())

	return cmd
}

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <rule>",
		Short: "Show the documentation for a rule",
		Long: `Show a rule's documentation. The rule may be named by ID
(jsdoc/implements-on-classes), by name (implements-on-classes) or by alias.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, rule, ok := lint.DefaultRegistry.Resolve(args[0])
			if !ok {
				return fmt.Errorf("unknown rule %q; run 'gojs rules' to list rules", args[0])
			}

			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

			fixable := "no"
			if rule.CanFix() {
				fixable = "yes"
			}
			header := fmt.Sprintf("%s\n%s\n\nDefault severity: %s\nFixable: %s\n\n",
				styles.Bold.Render(id), rule.Description(), rule.DefaultSeverity(), fixable)
			if _, err := io.WriteString(out, header); err != nil {
				return err
			}

			documented, ok := rule.(lint.Documented)
			if !ok || documented.Docs() == "" {
				return nil
			}
			_, err = io.WriteString(out, styles.FormatDocs(documented.Docs()))
			return err
		},
	}
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
