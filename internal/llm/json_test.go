package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object",
			input: `{"score": 80}`,
			want:  `{"score": 80}`,
		},
		{
			name:  "surrounding prose",
			input: "Voici l'analyse :\n{\"score\": 80}\nBonne journée {ok}",
			want:  `{"score": 80}`,
		},
		{
			name:  "code fence",
			input: "```json\n{\"score\": 42}\n```",
			want:  `{"score": 42}`,
		},
		{
			name:  "braces inside strings",
			input: `{"description": "utilisez {nom} et \"}\" ici", "n": {"a": 1}} trailing }`,
			want:  `{"description": "utilisez {nom} et \"}\" ici", "n": {"a": 1}}`,
		},
		{
			name:  "trailing commas",
			input: "{\"outils\": [1, 2, ], \"score\": 3,\n}",
			want:  "{\"outils\": [1, 2 ], \"score\": 3\n}",
		},
		{
			name:  "comma inside string kept",
			input: `{"impact": "x3, ]"}`,
			want:  `{"impact": "x3, ]"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObjectFailures(t *testing.T) {
	for _, input := range []string{"", "pas de json ici", `{"score": 80`, "```"} {
		_, err := ExtractJSONObject(input)
		assert.ErrorIs(t, err, ErrNoJSONObject, "input %q", input)
	}
}

func TestDecodeJSONObject(t *testing.T) {
	var v struct {
		Score  float64  `json:"score"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, DecodeJSONObject("Réponse: {\"score\": 71.5, \"fields\": [\"a\",],}", &v))
	assert.Equal(t, 71.5, v.Score)
	assert.Equal(t, []string{"a"}, v.Fields)

	assert.Error(t, DecodeJSONObject(`{"score": "high"}`, &v))
}
