package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojs/pkg/langdetect"
)

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{name: "js extension", path: "src/app.js", expected: langdetect.JavaScript},
		{name: "mjs extension", path: "lib/index.mjs", expected: langdetect.JavaScript},
		{name: "cjs extension", path: "lib/index.cjs", expected: langdetect.JavaScript},
		{name: "node shebang", path: "bin/cli", content: "#!/usr/bin/env node\nconsole.log(1);\n", expected: langdetect.JavaScript},
		{name: "python shebang", path: "bin/tool", content: "#!/usr/bin/env python3\nprint(1)\n", expected: "Python"},
		{name: "go source", path: "main.go", expected: "Go"},
		{name: "no extension no shebang", path: "LICENSE", content: "MIT", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Language(tt.path, []byte(tt.content))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsJavaScript(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsJavaScript("a.js", nil))
	assert.True(t, langdetect.IsJavaScript("script", []byte("#!/usr/bin/env node\n")))
	assert.False(t, langdetect.IsJavaScript("README.md", nil))
	assert.False(t, langdetect.IsJavaScript("script", []byte("#!/bin/sh\n")))
}

func TestHasShebang(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.HasShebang([]byte("#!/usr/bin/env node\n")))
	assert.False(t, langdetect.HasShebang([]byte("// #!/usr/bin/env node\n")))
	assert.False(t, langdetect.HasShebang(nil))
}

func TestProbe(t *testing.T) {
	t.Parallel()

	long := make([]byte, 1024)
	assert.Len(t, langdetect.Probe(long), 256)
	assert.Equal(t, []byte("short"), langdetect.Probe([]byte("short")))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("node_modules/lodash/index.js"))
	assert.True(t, langdetect.IsVendored("web/node_modules/react/index.js"))
	assert.False(t, langdetect.IsVendored("src/index.js"))
}
