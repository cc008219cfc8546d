// Package narrator writes optional flavour text for resolved decisions and
// finished runs using Gemini. It only reads game state.
package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
)

//go:embed prompts/field_note.txt
var fieldNotePrompt string

//go:embed prompts/epilogue.txt
var epiloguePrompt string

var (
	fieldNoteTmpl = template.Must(template.New("field_note").Parse(fieldNotePrompt))
	epilogueTmpl  = template.Must(template.New("epilogue").Parse(epiloguePrompt))
)

var ErrEmptyResponse = errors.New("no content returned from Gemini")

// Narrator produces short narrative text for the presentation layer.
type Narrator interface {
	FieldNote(ctx context.Context, res engine.Resolution, season models.Season) (string, error)
	Epilogue(ctx context.Context, sum engine.Summary, journal models.RunJournal) (string, error)
}

type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Narrator = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

func (g *Gemini) FieldNote(ctx context.Context, res engine.Resolution, season models.Season) (string, error) {
	prompt, err := renderFieldNote(res, season)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompt)
}

func (g *Gemini) Epilogue(ctx context.Context, sum engine.Summary, journal models.RunJournal) (string, error) {
	prompt, err := renderEpilogue(sum, journal)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompt)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func renderFieldNote(res engine.Resolution, season models.Season) (string, error) {
	data := struct {
		Location string
		Scenario string
		Context  string
		Season   string
		Option   string
		Message  string
		Risks    string
		Before   models.Meters
		After    models.Meters
	}{
		Location: res.Location.Name(),
		Scenario: res.Scenario.Description,
		Context:  res.Scenario.Context,
		Season:   season.Name,
		Option:   res.Option.Title,
		Message:  res.Option.Message,
		Risks:    res.Option.Risks,
		Before:   res.Before,
		After:    res.After,
	}

	var buf bytes.Buffer
	if err := fieldNoteTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render field note prompt: %w", err)
	}
	return buf.String(), nil
}

func renderEpilogue(sum engine.Summary, journal models.RunJournal) (string, error) {
	var decisions []string
	for _, e := range journal.Entries {
		if e.Kind == "decision" {
			decisions = append(decisions, fmt.Sprintf("%s: %s", e.Location, e.Option))
		}
	}
	var achievements []string
	for _, a := range sum.Achievements {
		achievements = append(achievements, a.String())
	}

	data := struct {
		Status          string
		Message         string
		SeasonsSurvived int
		LocationsHelped int
		TotalLocations  int
		Final           models.Meters
		Achievements    []string
		Decisions       []string
	}{
		Status:          sum.Status.String(),
		Message:         sum.Message,
		SeasonsSurvived: sum.SeasonsSurvived,
		LocationsHelped: sum.LocationsHelped,
		TotalLocations:  sum.TotalLocations,
		Final:           sum.Final,
		Achievements:    achievements,
		Decisions:       decisions,
	}

	var buf bytes.Buffer
	if err := epilogueTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render epilogue prompt: %w", err)
	}
	return buf.String(), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini: %T", part)
	}

	out := strings.TrimSpace(string(text))
	out = strings.TrimPrefix(out, "```text")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out), nil
}
