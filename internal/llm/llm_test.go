package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"hints": []}`,
			expected: `{"hints": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is the response: {"hints": [{"index": 0}]} thanks`,
			expected: `{"hints": [{"index": 0}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"hints\": []}\n```",
			expected: `{"hints": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"hints\": []}\n```",
			expected: `{"hints": []}`,
		},
		{
			name:     "json array",
			input:    `[{"index": 1}, {"index": 2}]`,
			expected: `[{"index": 1}, {"index": 2}]`,
		},
		{
			name:     "nested json",
			input:    `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name:     "no json",
			input:    "I cannot help with that.",
			expected: "I cannot help with that.",
		},
		{
			name: "markdown with explanation",
			input: "Here's my analysis:\n\n```json\n{\n  \"hints\": [\n    {\"index\": 0, \"suggestions\": [\"Use Lab 302\"]}\n  ]\n}\n```\n\nLet me know if you need anything else.",
			expected: "{\n  \"hints\": [\n    {\"index\": 0, \"suggestions\": [\"Use Lab 302\"]}\n  ]\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Hints []struct {
			Index int `json:"index"`
		} `json:"hints"`
	}

	if err := decodeJSON("Sure!\n```json\n{\"hints\":[{\"index\":2}]}\n```", &out); err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}
	if len(out.Hints) != 1 || out.Hints[0].Index != 2 {
		t.Errorf("unexpected decode result: %+v", out)
	}

	if err := decodeJSON("not json at all", &out); err == nil {
		t.Error("expected error for non-JSON content")
	}
}
