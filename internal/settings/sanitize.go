package settings

import (
	"strings"
	"unicode"

	"github.com/vnmchuo/ai-admin/internal/provider"
	"golang.org/x/net/html"
)

// Sanitize returns a copy of s with every field cleaned for storage.
// Single-line fields lose markup, control characters and line breaks;
// templates lose markup but keep their line structure.
func Sanitize(s Settings) Settings {
	return Settings{
		DefaultModel: provider.Model(sanitizeLine(string(s.DefaultModel))),
		APIKeys: APIKeys{
			OpenAI: sanitizeLine(s.APIKeys.OpenAI),
			Gemini: sanitizeLine(s.APIKeys.Gemini),
			Claude: sanitizeLine(s.APIKeys.Claude),
		},
		PromptTemplates: PromptTemplates{
			MetaTitle:       sanitizeMultiline(s.PromptTemplates.MetaTitle),
			MetaDescription: sanitizeMultiline(s.PromptTemplates.MetaDescription),
			Schema:          sanitizeMultiline(s.PromptTemplates.Schema),
		},
	}
}

func sanitizeLine(s string) string {
	s = stripTags(strings.ToValidUTF8(s, ""))
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func sanitizeMultiline(s string) string {
	s = stripTags(strings.ToValidUTF8(s, ""))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\r' {
			return '\n'
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// stripTags drops every element and comment, keeping text verbatim. Script
// and style bodies are dropped along with their tags.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := ""
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is kept.
			return b.String()
		case html.TextToken:
			if skip == "" {
				b.Write(z.Raw())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == skip {
				skip = ""
			}
		}
	}
}
