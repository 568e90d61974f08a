package provider

import "strings"

// Provider is the upstream AI vendor a model belongs to.
type Provider string

const (
	OpenAI Provider = "openai"
	Gemini Provider = "gemini"
	Claude Provider = "claude"
)

// All lists providers in the order the settings form shows their API keys.
var All = []Provider{OpenAI, Gemini, Claude}

// Label is the human readable vendor name.
func (p Provider) Label() string {
	switch p {
	case Gemini:
		return "Google Gemini"
	case Claude:
		return "Anthropic Claude"
	default:
		return "OpenAI"
	}
}

// Model is a model name selectable as the default model.
type Model string

const (
	GPT35Turbo Model = "gpt-3.5-turbo"
	GPT4       Model = "gpt-4"
	GeminiPro  Model = "gemini-pro"
	Claude3    Model = "claude-3"
)

// SupportedModels is the model catalog offered by the settings form.
var SupportedModels = []Model{GPT35Turbo, GPT4, GeminiPro, Claude3}

// IsSupported reports whether m is part of the catalog.
func (m Model) IsSupported() bool {
	for _, s := range SupportedModels {
		if s == m {
			return true
		}
	}
	return false
}

// Classify maps a logged model name to its provider by substring.
// Gemini is checked before Claude; anything else is OpenAI.
func Classify(model string) Provider {
	switch {
	case strings.Contains(model, "gemini"):
		return Gemini
	case strings.Contains(model, "claude"):
		return Claude
	default:
		return OpenAI
	}
}
