package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Archetypes, 5)
	assert.Len(t, c.Seasons, 4)
	assert.Len(t, c.Placements, 12)
	assert.Equal(t, StartingMeters{Temperature: 75, Biodiversity: 50, Community: 50, Resources: 100}, c.Rules.Start)
	assert.Equal(t, 120, c.Rules.SeasonSeconds)
	assert.Equal(t, 30, c.Rules.SeasonStipend)

	mods := []int{}
	for _, s := range c.Seasons {
		mods = append(mods, s.TempModifier)
	}
	assert.Equal(t, []int{0, 5, 2, -3}, mods)

	for _, a := range c.Archetypes {
		assert.Len(t, a.Scenarios, 2, a.Type)
		for _, s := range a.Scenarios {
			assert.Len(t, s.Options, 3, s.Title)
		}
	}

	backyard, ok := c.Archetype(LocationBackyard)
	require.True(t, ok)
	first := backyard.Scenarios[0].Options[0]
	assert.Equal(t, "Plant Native Pollinator Garden", first.Title)
	assert.Equal(t, 40, first.Cost)
	assert.Equal(t, Effects{Temp: -2, Bio: 8, Community: 5}, first.Effects)
}

func TestDefaultCatalogReturnsCopies(t *testing.T) {
	a, err := DefaultCatalog()
	require.NoError(t, err)
	b, err := DefaultCatalog()
	require.NoError(t, err)

	a.Archetypes[0].Scenarios[0].Options[0].Cost = 999
	assert.Equal(t, 40, b.Archetypes[0].Scenarios[0].Options[0].Cost)
}

func TestParseCatalogValidation(t *testing.T) {
	const rules = `
rules:
  start: {temperature: 75, biodiversity: 50, community: 50, resources: 100}
  season_seconds: 120
  season_stipend: 30
  interact_radius: 5
  world_bound: 90
seasons:
  - {name: Spring}
placements:
  - {x: 0, z: 0}
`
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid",
			body: rules + `
archetypes:
  - type: park
    name: Park
    scenarios:
      - title: T
        options:
          - {title: A, cost: 0}
`,
		},
		{
			name: "negative cost",
			body: rules + `
archetypes:
  - type: park
    scenarios:
      - title: T
        options:
          - {title: A, cost: -5}
`,
			wantErr: "negative cost",
		},
		{
			name: "scenario without options",
			body: rules + `
archetypes:
  - type: park
    scenarios:
      - title: Empty
`,
			wantErr: "has no options",
		},
		{
			name: "unknown archetype",
			body: rules + `
archetypes:
  - type: airport
    scenarios:
      - title: T
        options:
          - {title: A, cost: 1}
`,
			wantErr: "unknown archetype type",
		},
		{
			name:    "unknown field",
			body:    rules + "\nbogus: true\n",
			wantErr: "field bogus not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.body))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := &Catalog{Rules: Rules{Start: StartingMeters{Temperature: 10, Resources: 500}}}
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidCatalog)

	msg := err.Error()
	for _, want := range []string{"starting temperature", "starting resources", "season_seconds", "no seasons", "no archetypes", "no placements"} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	_, err := LoadCatalog(t.TempDir() + "/missing.yaml")
	require.Error(t, err)

	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Archetypes)
}

func TestJournalPersistence(t *testing.T) {
	dir := t.TempDir()

	runs, err := ListJournals(dir + "/none")
	require.NoError(t, err)
	assert.Empty(t, runs)

	j := &RunJournal{
		StartedAt:       "2026-01-01T09:00:00Z",
		Status:          "LOST",
		Reason:          "temperature too high",
		SeasonsSurvived: 2,
		Final:           Meters{Temperature: 86, Biodiversity: 44, Community: 51, Resources: 12},
		Entries: []HistoryEntry{
			{Kind: "decision", Location: "Park", Option: "Make a Sports Field", Status: "PLAYING"},
		},
	}
	require.NoError(t, j.Save(dir, "run-2"))
	require.NoError(t, (&RunJournal{Status: "WON"}).Save(dir, "run-1"))

	runs, err = ListJournals(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1", "run-2"}, runs)

	loaded, err := LoadJournal(dir, "run-2")
	require.NoError(t, err)
	assert.Equal(t, j.Reason, loaded.Reason)
	assert.Equal(t, j.Final, loaded.Final)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "Make a Sports Field", loaded.Entries[0].Option)
}
