package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Project holds per-project defaults from a .codetext.yaml file at the
// traversal root. Pointer fields distinguish "absent" from "false".
type Project struct {
	OutputType    string   `yaml:"output_type"`
	ExcludeHidden *bool    `yaml:"exclude_hidden"`
	Exclude       []string `yaml:"exclude"`
}

// LoadProject reads the project defaults file at root. A missing file is
// not an error; both return values are nil.
func LoadProject(fs afero.Fs, root string) (*Project, error) {
	name := filepath.Join(root, ProjectFileName)

	data, err := afero.ReadFile(fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return &p, nil
}

// ApplyProject merges project defaults into the configuration. Exclusion
// patterns always join the union; scalar settings apply only where nothing
// explicit (flag or environment) already decided them.
func (c *Config) ApplyProject(p *Project) {
	if p == nil {
		return
	}

	c.Exclude = append(c.Exclude, p.Exclude...)

	if p.OutputType != "" && !c.IsExplicit("output_type") {
		c.OutputType = p.OutputType
	}
	if p.ExcludeHidden != nil && !c.IsExplicit("exclude_hidden") {
		c.ExcludeHidden = *p.ExcludeHidden
	}
}
