package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drecli/internal/dre"
)

func TestLoadCategories(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "categories.yaml", `
categories:
  - name: revenue
    title: Receita
    ratio_to_base: true
    members: [receita_operacional_bruta, 1_1_vendas_de_mercadorias]
  - name: ebitda
    headline: ebitda
    members: [ebitda, 8_1_despesas_estruturais]
`)

	categories, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, dre.Category{
		Name:        "revenue",
		Title:       "Receita",
		RatioToBase: true,
		Members:     []string{"receita_operacional_bruta", "1_1_vendas_de_mercadorias"},
	}, categories[0])
	assert.Equal(t, "ebitda", categories[1].Headline)

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := LoadCategories(writeFile(t, dir, "typo.yaml", "categories:\n  - name: a\n    membres: [x]\n"))
		assert.Error(t, err)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		_, err := LoadCategories(writeFile(t, dir, "empty.yaml", "categories: []\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no categories")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCategories(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadRegistry(t *testing.T) {
	cfg := Default()
	reg, err := cfg.LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, dre.DefaultRegistry().Names(), reg.Names())

	dir := t.TempDir()
	writeFile(t, dir, "cats.yaml", "categories:\n  - name: only\n    members: [a, b]\n")
	cfg.baseDir = dir
	cfg.Report.CategoriesFile = "cats.yaml"

	reg, err = cfg.LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, reg.Names())

	writeFile(t, dir, "dup.yaml", "categories:\n  - name: a\n    members: [x, x]\n")
	cfg.Report.CategoriesFile = "dup.yaml"
	_, err = cfg.LoadRegistry()
	assert.Error(t, err)
}
