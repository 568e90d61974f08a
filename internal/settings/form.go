package settings

import (
	"net/url"

	"github.com/vnmchuo/ai-admin/internal/provider"
)

// Form field names posted by the settings page.
const (
	FieldDefaultModel      = "default_model"
	FieldAPIKeyOpenAI      = "api_keys[openai]"
	FieldAPIKeyGemini      = "api_keys[gemini]"
	FieldAPIKeyClaude      = "api_keys[claude]"
	FieldTemplateMetaTitle = "prompt_templates[meta_title]"
	FieldTemplateMetaDesc  = "prompt_templates[meta_description]"
	FieldTemplateSchema    = "prompt_templates[schema]"
)

// FromForm decodes posted form values into a Settings record. Fields that
// were not submitted come back empty; nothing is carried over from the
// stored record.
func FromForm(values url.Values) Settings {
	return Settings{
		DefaultModel: provider.Model(values.Get(FieldDefaultModel)),
		APIKeys: APIKeys{
			OpenAI: values.Get(FieldAPIKeyOpenAI),
			Gemini: values.Get(FieldAPIKeyGemini),
			Claude: values.Get(FieldAPIKeyClaude),
		},
		PromptTemplates: PromptTemplates{
			MetaTitle:       values.Get(FieldTemplateMetaTitle),
			MetaDescription: values.Get(FieldTemplateMetaDesc),
			Schema:          values.Get(FieldTemplateSchema),
		},
	}
}

// Values is the inverse of FromForm.
func (s Settings) Values() url.Values {
	v := url.Values{}
	v.Set(FieldDefaultModel, string(s.DefaultModel))
	v.Set(FieldAPIKeyOpenAI, s.APIKeys.OpenAI)
	v.Set(FieldAPIKeyGemini, s.APIKeys.Gemini)
	v.Set(FieldAPIKeyClaude, s.APIKeys.Claude)
	v.Set(FieldTemplateMetaTitle, s.PromptTemplates.MetaTitle)
	v.Set(FieldTemplateMetaDesc, s.PromptTemplates.MetaDescription)
	v.Set(FieldTemplateSchema, s.PromptTemplates.Schema)
	return v
}
