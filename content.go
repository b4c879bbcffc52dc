package main

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

// Content is everything the portfolio page displays.
type Content struct {
	Name       string    `yaml:"name"`
	Headline   string    `yaml:"headline"`
	About      string    `yaml:"about"`
	Experience []Entry   `yaml:"experience"`
	Education  []Entry   `yaml:"education"`
	Projects   []Project `yaml:"projects"`
	Skills     []string  `yaml:"skills"`
}

// Entry is a job or a qualification.
type Entry struct {
	Title        string   `yaml:"title"`
	Organization string   `yaml:"organization"`
	Start        string   `yaml:"start"`
	End          string   `yaml:"end"`
	Logo         string   `yaml:"logo"`
	Bullets      []string `yaml:"bullets"`
}

type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func parseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("parse content: name is required")
	}
	return &c, nil
}

func loadContent() (*Content, error) {
	return parseContent(contentYAML)
}
