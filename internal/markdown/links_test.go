package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Link
	}{
		{
			name: "inline doc link",
			src:  "Read the [blueprints](/ai-on-eks/docs/blueprints) first.",
			want: []Link{{LinkKindInline, "/ai-on-eks/docs/blueprints"}},
		},
		{
			name: "image",
			src:  "![Architecture](img/arch.png)",
			want: []Link{{LinkKindImage, "img/arch.png"}},
		},
		{
			name: "autolink",
			src:  "<https://github.com/awslabs/ai-on-eks>",
			want: []Link{{LinkKindAuto, "https://github.com/awslabs/ai-on-eks"}},
		},
		{
			name: "reference usage and definition",
			src:  "See [the guide][guide].\n\n[guide]: /ai-on-eks/docs/guidance\n",
			want: []Link{
				{LinkKindInline, "/ai-on-eks/docs/guidance"},
				{LinkKindReferenceDefinition, "/ai-on-eks/docs/guidance"},
			},
		},
		{
			name: "code is not parsed",
			src:  "Use `[x](./inline.md)`.\n\n```\n[x](./fence.md)\n```\n\nReal: [ok](./real.md)\n",
			want: []Link{{LinkKindInline, "./real.md"}},
		},
		{
			name: "document order",
			src:  "[one](/a) then ![two](/b.png) then [three](/c)",
			want: []Link{{LinkKindInline, "/a"}, {LinkKindImage, "/b.png"}, {LinkKindInline, "/c"}},
		},
		{
			name: "plain text",
			src:  "Tested deployments to jumpstart AI on EKS",
			want: []Link{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLinks([]byte(tt.src)))
		})
	}
}
