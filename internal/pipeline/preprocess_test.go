package pipeline

import (
	"context"
	"testing"
)

func TestCommonMarkPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "crlf normalized",
			input: "line one\r\nline two\r\n",
			want:  "line one\nline two\n",
		},
		{
			name:  "bare cr normalized",
			input: "line one\rline two",
			want:  "line one\nline two",
		},
		{
			name:  "blank lines compressed",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "two blank lines kept",
			input: "a\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "mixed endings and runs",
			input: "a\r\n\r\n\r\n\r\nb",
			want:  "a\n\nb",
		},
		{
			name:  "already clean",
			input: "# Title\n\nbody\n",
			want:  "# Title\n\nbody\n",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &CommonMarkPreprocessor{}
			got := p.PreprocessMarkdown(context.Background(), tt.input)
			if got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommonMarkPreprocessor_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &CommonMarkPreprocessor{}
	input := "untouched\r\ncontent"
	if got := p.PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("cancelled context should return content unchanged, got %q", got)
	}
}
