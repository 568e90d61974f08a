package admin

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/vnmchuo/ai-admin/internal/provider"
	"github.com/vnmchuo/ai-admin/internal/settings"
	"github.com/vnmchuo/ai-admin/internal/usage"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/settings.html"))

type pageView struct {
	Action       string
	Updated      bool
	Error        string
	DefaultModel string
	Models       []modelOption
	Keys         []keyField
	Templates    []templateField
	From         string
	To           string
	Rows         []rowView
	Totals       rowView
}

type modelOption struct {
	Value    string
	Selected bool
}

type keyField struct {
	Provider string
	Label    string
	Field    string
	Value    string
}

type templateField struct {
	ID    string
	Label string
	Field string
	Value string
}

type rowView struct {
	Model    string
	Provider string
	Requests string
	Tokens   string
	Cost     string
}

func newPageView(s settings.Settings, report *usage.Report, currency string) pageView {
	v := pageView{
		Action:       PagePath,
		DefaultModel: string(s.DefaultModel),
		From:         report.From,
		To:           report.To,
	}

	for _, m := range provider.SupportedModels {
		v.Models = append(v.Models, modelOption{Value: string(m), Selected: m == s.DefaultModel})
	}

	fields := map[provider.Provider]string{
		provider.OpenAI: settings.FieldAPIKeyOpenAI,
		provider.Gemini: settings.FieldAPIKeyGemini,
		provider.Claude: settings.FieldAPIKeyClaude,
	}
	for _, p := range provider.All {
		v.Keys = append(v.Keys, keyField{
			Provider: string(p),
			Label:    p.Label(),
			Field:    fields[p],
			Value:    s.APIKeys.For(p),
		})
	}

	v.Templates = []templateField{
		{ID: "tpl_meta_title", Label: "Meta title", Field: settings.FieldTemplateMetaTitle, Value: s.PromptTemplates.MetaTitle},
		{ID: "tpl_meta_description", Label: "Meta description", Field: settings.FieldTemplateMetaDesc, Value: s.PromptTemplates.MetaDescription},
		{ID: "tpl_schema", Label: "Schema", Field: settings.FieldTemplateSchema, Value: s.PromptTemplates.Schema},
	}

	for _, r := range report.Rows {
		v.Rows = append(v.Rows, rowView{
			Model:    r.Model,
			Provider: r.Provider().Label(),
			Requests: strconv.FormatInt(r.RequestCount, 10),
			Tokens:   strconv.FormatInt(r.TokensUsed, 10),
			Cost:     usage.FormatCost(r.Cost, currency),
		})
	}
	v.Totals = rowView{
		Requests: strconv.FormatInt(report.Totals.Requests, 10),
		Tokens:   strconv.FormatInt(report.Totals.Tokens, 10),
		Cost:     usage.FormatCost(report.Totals.Cost, currency),
	}

	return v
}
