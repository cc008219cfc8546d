package models

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const journalFile = "journal.yaml"

// Save writes the run journal to dir/name/journal.yaml.
func (j *RunJournal) Save(dir, name string) error {
	runDir := filepath.Join(dir, name)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(j)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, journalFile), data, 0644)
}

func LoadJournal(dir, name string) (*RunJournal, error) {
	data, err := os.ReadFile(filepath.Join(dir, name, journalFile))
	if err != nil {
		return nil, err
	}
	var j RunJournal
	if err := yaml.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListJournals returns the names of saved runs, oldest first.
func ListJournals(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var runs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// journal.yaml marks a complete run directory
		if _, err := os.Stat(filepath.Join(dir, entry.Name(), journalFile)); err == nil {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}
