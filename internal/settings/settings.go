package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vnmchuo/ai-admin/internal/provider"
)

var (
	ErrNotFound        = errors.New("settings not found")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings is the whole plugin configuration record. It is always read and
// written as a unit; every field defaults to the empty string. Only the
// default model is validated; keys and templates are stored as given.
type Settings struct {
	DefaultModel    provider.Model  `json:"default_model" validate:"omitempty,supported_model"`
	APIKeys         APIKeys         `json:"api_keys"`
	PromptTemplates PromptTemplates `json:"prompt_templates"`
}

type APIKeys struct {
	OpenAI string `json:"openai"`
	Gemini string `json:"gemini"`
	Claude string `json:"claude"`
}

// For returns the key configured for p.
func (k APIKeys) For(p provider.Provider) string {
	switch p {
	case provider.Gemini:
		return k.Gemini
	case provider.Claude:
		return k.Claude
	default:
		return k.OpenAI
	}
}

type PromptTemplates struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Schema          string `json:"schema"`
}

func Defaults() Settings {
	return Settings{}
}

// MarshalBinary implements encoding.BinaryMarshaler for Redis
func (s *Settings) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for Redis
func (s *Settings) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// Store persists the single settings record of one plugin namespace.
// Get returns ErrNotFound when nothing has been saved yet.
type Store interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
