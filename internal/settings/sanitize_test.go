package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeLine(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "sk-abc123", "sk-abc123"},
		{"trim", "  sk-abc  ", "sk-abc"},
		{"line breaks", "sk-\nabc\r\n", "sk- abc"},
		{"tabs collapse", "a\t\t b", "a b"},
		{"tags", "<strong>sk</strong>-abc", "sk-abc"},
		{"script body dropped", "key<script>alert(1)</script>", "key"},
		{"entities kept", "a &amp; b", "a &amp; b"},
		{"invalid utf8", "ab\xffc", "abc"},
		{"less than sign", "a < b", "a < b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sanitizeLine(tc.in))
		})
	}
}

func TestSanitizeMultiline(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"keeps newlines", "line one\nline two", "line one\nline two"},
		{"crlf", "one\r\ntwo\rthree", "one\ntwo\nthree"},
		{"tags", "<p>Title: {title}</p>\n<em>short</em>", "Title: {title}\nshort"},
		{"style dropped", "<style>p{color:red}</style>Body", "Body"},
		{"trim", "\n\n  text  \n", "text"},
		{"tabs kept", "a\tb", "a\tb"},
		{"nul dropped", "a\x00b", "ab"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sanitizeMultiline(tc.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	in := Settings{
		DefaultModel:    " gpt-4 ",
		APIKeys:         APIKeys{OpenAI: "<i>sk</i>\n1"},
		PromptTemplates: PromptTemplates{Schema: "<b>{\"@type\": \"{type}\"}</b>\r\n"},
	}
	once := Sanitize(in)
	require.Equal(t, once, Sanitize(once))
	require.Equal(t, "gpt-4", string(once.DefaultModel))
	require.Equal(t, "{\"@type\": \"{type}\"}", once.PromptTemplates.Schema)
}
