package dre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Receita Operacional Bruta", "receita_operacional_bruta"},
		{"(+/-) Resultado Financeiro Líquido", "_+_resultado_financeiro_liquido"},
		{"8.1 - Despesas Estruturais", "8_1_despesas_estruturais"},
		{"8.4.1.2 - 13º Salário", "8_4_1_2_13º_salario"},
		{"Deduções da Receita Operacional Bruta", "deducoes_da_receita_operacional_bruta"},
		{"8.3 - Despesas de Apoio à Operação", "8_3_despesas_de_apoio_a_operacao"},
		{"10.2.6 – IOF", "10_2_6_iof"},
		{"Margem de Contribuição 1", "margem_de_contribuicao_1"},
		{"  Ebitda  ", "ebitda"},
		{"D'Água", "dagua"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.label))
		})
	}
}

func TestCleanNameIsIdempotent(t *testing.T) {
	for _, c := range DefaultRegistry().Categories() {
		for _, m := range c.Members {
			assert.Equal(t, m, CleanName(m), "category %s", c.Name)
		}
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Receita Operacional Bruta", Title("receita_operacional_bruta"))
	assert.Equal(t, "+ Resultado Financeiro Liquido", Title("_+_resultado_financeiro_liquido"))
	assert.Equal(t, "", Title(""))
}
