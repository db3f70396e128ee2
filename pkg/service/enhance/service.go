package enhance

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/enhance.md
var enhancePromptTmpl string

var enhancePrompt = template.Must(template.New("enhance").Parse(enhancePromptTmpl))

// Service rewrites raw field notes into client-ready prose with an LLM.
// Failures never surface as errors: the report is always produced, with
// the raw notes as fallback.
type Service struct {
	llm gollem.LLMClient
}

// New creates a new enhancement service
func New(llm gollem.LLMClient) *Service {
	return &Service{llm: llm}
}

// enhancePromptData holds the template data for the enhancement prompt
type enhancePromptData struct {
	Client string
	Date   string
	Team   string
	Notes  string
}

// enhanceResult is the JSON structure the model must return
type enhanceResult struct {
	Description string `json:"description"`
	Title       string `json:"title"`
}

// Enhance produces a professional description and a short title for the
// intervention. On any upstream failure it logs and returns the raw
// notes with a generic title.
func (s *Service) Enhance(ctx context.Context, iv *model.Intervention) (string, string) {
	fallbackTitle := "Intervention du " + iv.DateLabel()

	if s.llm == nil || strings.TrimSpace(iv.Text) == "" {
		return iv.Text, fallbackTitle
	}

	description, title, err := s.generate(ctx, iv)
	if err != nil {
		logging.From(ctx).Warn("enhancement failed, keeping raw notes",
			"client", iv.Client,
			"date", iv.DateLabel(),
			"error", err.Error(),
		)
		return iv.Text, fallbackTitle
	}

	if strings.TrimSpace(description) == "" {
		description = iv.Text
	}
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}

	return description, title
}

func (s *Service) generate(ctx context.Context, iv *model.Intervention) (string, string, error) {
	schema := &gollem.Parameter{
		Title:       "InterventionReport",
		Description: "Client-facing rendition of an intervention",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"description": {
				Type:        gollem.TypeString,
				Description: "Compte rendu de l'intervention en français, quelques phrases au passé composé, sans markdown.",
				Required:    true,
			},
			"title": {
				Type:        gollem.TypeString,
				Description: "Titre court de l'intervention en français, moins de dix mots, sans ponctuation finale.",
				Required:    true,
			},
		},
	}

	session, err := s.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
	)
	if err != nil {
		return "", "", err
	}

	team := make([]string, 0, len(iv.Participants))
	for _, m := range iv.Participants {
		team = append(team, m.Name)
	}

	var buf bytes.Buffer
	if err := enhancePrompt.Execute(&buf, enhancePromptData{
		Client: string(iv.Client),
		Date:   iv.DateLabel(),
		Team:   strings.Join(team, ", "),
		Notes:  iv.Text,
	}); err != nil {
		return "", "", err
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buf.String()))
	if err != nil {
		return "", "", err
	}
	if len(resp.Texts) == 0 {
		return "", "", errEmptyResponse
	}

	var result enhanceResult
	if err := json.Unmarshal([]byte(resp.Texts[0]), &result); err != nil {
		return "", "", err
	}

	return result.Description, result.Title, nil
}
