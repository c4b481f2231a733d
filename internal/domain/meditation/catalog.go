package meditation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stages.yaml
var stagesYAML []byte

// StageInfo describes one stage of the guided session.
type StageInfo struct {
	ID          Stage  `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Duration    int    `yaml:"duration" json:"duration"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
	Prompt      string `yaml:"prompt" json:"-"`
	Fallback    string `yaml:"fallback" json:"-"`
}

// Catalog is the fixed list of stages plus the guide voice.
type Catalog struct {
	Guide          string      `yaml:"guide"`
	DefaultContent string      `yaml:"default_content"`
	Stages         []StageInfo `yaml:"stages"`
}

// LoadCatalog parses the embedded stage catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(stagesYAML)
}

// ParseCatalog parses and checks a catalog document.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse stage catalog: %w", err)
	}
	if len(c.Stages) != len(stageOrder) {
		return nil, fmt.Errorf("stage catalog has %d stages, want %d", len(c.Stages), len(stageOrder))
	}
	for i, st := range c.Stages {
		if st.ID != stageOrder[i] {
			return nil, fmt.Errorf("stage catalog entry %d is %q, want %q", i, st.ID, stageOrder[i])
		}
		if st.Duration <= 0 {
			return nil, fmt.Errorf("stage %q has no duration", st.ID)
		}
		c.Stages[i].Prompt = strings.TrimSpace(st.Prompt)
		c.Stages[i].Fallback = strings.TrimSpace(st.Fallback)
	}
	c.Guide = strings.TrimSpace(c.Guide)
	return &c, nil
}

// Lookup finds a stage by id.
func (c *Catalog) Lookup(id string) (StageInfo, bool) {
	for _, st := range c.Stages {
		if string(st.ID) == id {
			return st, true
		}
	}
	return StageInfo{}, false
}

// TotalDuration sums the stage durations in seconds.
func (c *Catalog) TotalDuration() int {
	total := 0
	for _, st := range c.Stages {
		total += st.Duration
	}
	return total
}

// FallbackContent returns the canned text for a stage.
func (c *Catalog) FallbackContent(id string) string {
	if st, ok := c.Lookup(id); ok && st.Fallback != "" {
		return st.Fallback
	}
	return c.DefaultContent
}
