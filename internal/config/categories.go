package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"drecli/internal/dre"
)

// CategoriesFile is the YAML layout of a category override file:
//
//	categories:
//	  - name: ebitda
//	    title: Composição do Ebitda
//	    headline: ebitda
//	    members: [ebitda, 8_1_despesas_estruturais]
type CategoriesFile struct {
	Categories []dre.Category `yaml:"categories"`
}

// LoadCategories reads the category list from a YAML file.
func LoadCategories(path string) ([]dre.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file CategoriesFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse categories file %s: %w", path, err)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s declares no categories", path)
	}

	return file.Categories, nil
}

// LoadRegistry returns the registry named by the configuration: the
// categories file when one is set, otherwise the built-in categories.
func (c *Config) LoadRegistry() (*dre.Registry, error) {
	path := c.CategoriesPath()
	if path == "" {
		return dre.DefaultRegistry(), nil
	}

	categories, err := LoadCategories(path)
	if err != nil {
		return nil, err
	}

	reg, err := dre.NewRegistry(categories...)
	if err != nil {
		return nil, fmt.Errorf("invalid categories in %s: %w", path, err)
	}
	return reg, nil
}
