package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDraft(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  # 정의서\n\n본문\n", "# 정의서\n\n본문"},
		{"markdown fence", "```markdown\n# 정의서\n- [ ] 항목\n```", "# 정의서\n- [ ] 항목"},
		{"bare fence", "```\n# 정의서\n```\n", "# 정의서"},
		{"crlf", "```md\r\n# 정의서\r\n```", "# 정의서"},
		{
			"inner fences kept",
			"# 정의서\n\n```bash\nmake test\n```\n",
			"# 정의서\n\n```bash\nmake test\n```",
		},
		{
			"two blocks are not a wrapper",
			"```go\na\n```\ntext\n```go\nb\n```",
			"```go\na\n```\ntext\n```go\nb\n```",
		},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDraft(tt.raw))
		})
	}
}
