package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/lint"
)

func TestRulesCommand_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	assert.NotNil(t, cmd.Flags().Lookup("rule-format"))
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestOutputRulesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesJSON(&buf, lint.DefaultRegistry.Rules()))

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))

	byID := make(map[string]ruleInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}

	debugger, ok := byID["eslint/no-debugger"]
	require.True(t, ok)
	assert.Equal(t, "no-debugger", debugger.Name)
	assert.True(t, debugger.Fixable)
	assert.Equal(t, "warning", debugger.Severity)

	undef, ok := byID["eslint/no-undef"]
	require.True(t, ok)
	assert.Equal(t, "error", undef.Severity)
	assert.False(t, undef.Fixable)

	assert.Contains(t, byID, "jsdoc/implements-on-classes")
}
