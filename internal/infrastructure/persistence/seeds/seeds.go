// Package seeds loads demo or fixture data described in a YAML file.
package seeds

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the root of a seed document.
type File struct {
	ProjectPrefix string       `yaml:"projectPrefix"`
	Users         []UserSeed   `yaml:"users"`
	Sprints       []SprintSeed `yaml:"sprints"`
	Tickets       []TicketSeed `yaml:"tickets"`
}

type UserSeed struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Password  string `yaml:"password"`
}

// SprintSeed dates use YYYY-MM-DD in the business timezone.
type SprintSeed struct {
	Name      string `yaml:"name"`
	MaxPoints int    `yaml:"maxPoints"`
	StartDate string `yaml:"startDate"`
	EndDate   string `yaml:"endDate"`
}

// TicketSeed refers to users by email and to sprints by name. An empty Key
// is generated from the project prefix.
type TicketSeed struct {
	Key         string    `yaml:"key"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Type        string    `yaml:"type"`
	Priority    string    `yaml:"priority"`
	Points      int       `yaml:"points"`
	Status      string    `yaml:"status"`
	Creator     string    `yaml:"creator"`
	Assignee    string    `yaml:"assignee"`
	Sprint      string    `yaml:"sprint"`
	Tags        []TagSeed `yaml:"tags"`
}

type TagSeed struct {
	Content string `yaml:"content"`
	Color   string `yaml:"color"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document and rejects unknown keys.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}
