package provider

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]Provider{
		"gemini-pro":                 Gemini,
		"gemini-1.5-flash":           Gemini,
		"claude-3":                   Claude,
		"claude-3-5-sonnet-20240620": Claude,
		"gpt-4":                      OpenAI,
		"gpt-3.5-turbo":              OpenAI,
		"":                           OpenAI,
		"mistral-large":              OpenAI,
		// gemini wins when both names appear
		"claude-via-gemini": Gemini,
	}

	for model, want := range cases {
		if got := Classify(model); got != want {
			t.Errorf("Classify(%q) = %s, want %s", model, got, want)
		}
	}
}

func TestModelIsSupported(t *testing.T) {
	for _, m := range SupportedModels {
		if !m.IsSupported() {
			t.Errorf("Expected %s to be supported", m)
		}
	}
	if Model("gpt-5").IsSupported() {
		t.Errorf("Expected gpt-5 to be unsupported")
	}
}
