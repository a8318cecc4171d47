package dre

// BaseAccount is the gross operating revenue line, the denominator of every
// ratio_to_base column unless configured otherwise.
const BaseAccount = "receita_operacional_bruta"

// defaultCategories mirrors the report tabs of the management DRE. Members
// are cleaned identifiers (see CleanName).
var defaultCategories = []Category{
	{
		Name:        "main_indicators",
		Title:       "Principais Indicadores",
		RatioToBase: true,
		Members: []string{
			"receita_operacional_bruta",
			"deducoes_da_receita_operacional_bruta",
			"receita_operacional_liquida",
			"custo_das_vendas",
			"margem_de_contribuicao_1",
			"margem_de_contribuicao_2",
			"ebitda",
			"despesa_com_escritorio",
			"resultado_operacional",
			"_+_resultado_financeiro_liquido",
			"resultado_antes_do_imposto",
			"resultado_gerencial_do_periodo",
		},
	},
	{
		Name:        "gross_revenue",
		Title:       "Receita Operacional Bruta",
		RatioToBase: true,
		Members: []string{
			"receita_operacional_bruta",
			"1_1_vendas_de_mercadorias",
			"1_2_prestacao_de_servicos",
			"1_3_pacotes",
		},
	},
	{
		Name:  "net_revenue",
		Title: "Receita Operacional Líquida",
		Members: []string{
			"receita_operacional_liquida",
			"receita_operacional_bruta",
			"2_1_impostos_sobre_vendas",
			"2_1_1_cofins",
			"2_1_2_icms",
			"2_1_3_iss",
			"2_1_4_simples_nacional",
			"2_2_devolucoes_de_vendas",
			"2_3_descontos_e_abatimentos",
		},
	},
	{
		Name:  "contribution_margin_1",
		Title: "Margem de Contribuição 1",
		Members: []string{
			"margem_de_contribuicao_1",
			"receita_operacional_bruta",
			"custo_das_vendas",
			"3_1_custo_das_mercadorias_vendidas",
			"3_2_perdas_de_estoque",
		},
	},
	{
		Name:  "contribution_margin_2",
		Title: "Margem de Contribuição 2",
		Members: []string{
			"margem_de_contribuicao_2",
			"receita_operacional_bruta",
			"4_despesas_comerciais",
			"4_1_comissoes_sobre_vendas",
			"4_2_taxa_de_cartoes",
			"4_3_taxa_de_franquia",
			"5_esforco_de_marketing",
			"5_1_marketing_promocional",
			"5_2_midia_regional",
			"5_3_midia_local",
			"5_4_amostras",
			"5_5_flaconetes",
			"5_6_eventos",
			"5_7_brindes",
			"6_embalagens",
		},
	},
	{
		Name:     "ebitda",
		Title:    "Composição do Ebitda",
		Headline: "ebitda",
		Members: []string{
			"ebitda",
			"8_1_despesas_estruturais",
			"8_2_despesas_com_comunicacao",
			"8_3_despesas_de_apoio_a_operacao",
			"8_4_pessoal",
			"8_5_taxa_de_ocupacao",
			"8_6_despesas_com_veiculos",
			"8_7_despesas_administrativas",
			"8_8_despesas_gerais",
			"8_8_6_outras_despesas",
			"8_9_servicos_de_terceiros",
		},
	},
	{
		Name:  "structural_expenses",
		Title: "Despesas Estruturais",
		Members: []string{
			"8_1_despesas_estruturais",
			"8_1_1_agua",
			"8_1_2_energia_eletrica",
			"8_1_3_limpeza_e_conservacao",
			"8_1_4_manutencao_e_reparos",
		},
	},
	{
		Name:  "communication_expenses",
		Title: "Despesas com Comunicação",
		Members: []string{
			"8_2_despesas_com_comunicacao",
			"8_2_1_pos_cartoes",
			"8_2_2_vsat",
			"8_2_3_telefonia",
			"8_2_4_internet",
		},
	},
	{
		Name:  "operating_support",
		Title: "Despesas de Apoio à Operação",
		Members: []string{
			"8_3_despesas_de_apoio_a_operacao",
			"8_3_2_vitrines",
			"8_3_4_uniformes",
		},
	},
	{
		Name:  "payroll_salary",
		Title: "Pessoal - Salários",
		Members: []string{
			"8_4_pessoal",
			"8_4_1_salarios",
			"8_4_1_1_salarios",
			"8_4_1_2_13º_salario",
			"8_4_1_3_hora_extra",
			"8_4_1_4_dsr",
			"8_4_1_5_ferias",
			"8_4_1_7_irrf_salarios",
			"8_4_1_8_contribuicao_sindical",
			"8_4_1_9_adiantamento_salarial",
			"8_4_1_11_descontos_gerais_sobre_folha",
			"8_4_1_12_descontos_inss",
			"8_4_1_13_descontos_irrf",
			"8_4_1_14_descontos_sobre_beneficios",
		},
	},
	{
		Name:  "payroll_charges",
		Title: "Pessoal - Encargos Sociais",
		Members: []string{
			"8_4_2_encargos_sociais",
			"8_4_2_1_inss_empresa",
			"8_4_2_2_fgts",
		},
	},
	{
		Name:  "payroll_benefits",
		Title: "Pessoal - Benefícios",
		Members: []string{
			"8_4_3_beneficios",
			"8_4_3_1_vale_transporte",
			"8_4_3_2_vale_refeicao",
			"8_4_3_3_plano_de_saude",
			"8_4_3_4_premios_bonus",
			"8_4_3_6_ajuda_de_custo",
			"8_4_3_7_farmacia",
		},
	},
	{
		Name:  "payroll_severance",
		Title: "Pessoal - Movimentação de Pessoal",
		Members: []string{
			"8_4_4_movimentacao_de_pessoal",
			"8_4_4_1_rescisao_do_contrato_de_trabalho",
		},
	},
	{
		Name:  "occupancy",
		Title: "Taxa de Ocupação",
		Members: []string{
			"8_5_taxa_de_ocupacao",
			"8_5_1_aluguel",
			"8_5_5_iptu",
		},
	},
	{
		Name:  "vehicles",
		Title: "Despesas com Veículos",
		Members: []string{
			"8_6_despesas_com_veiculos",
			"8_6_1_ipva_licenciamento",
			"8_6_3_combustivel",
			"8_6_4_manutencao_veiculos",
			"8_6_7_multa_veiculos",
		},
	},
	{
		Name:  "administrative",
		Title: "Despesas Administrativas",
		Members: []string{
			"8_7_despesas_administrativas",
			"8_7_1_material_de_escritorio",
			"8_7_4_copa_e_cozinha",
			"8_7_5_despesas_bancarias",
			"8_7_6_outras_despesas_administrativas",
		},
	},
	{
		Name:  "general_expenses",
		Title: "Despesas Gerais",
		Members: []string{
			"8_8_despesas_gerais",
			"8_8_2_doacoes",
			"8_8_2_2_outras_entidades",
			"8_8_3_impostos_e_taxas",
			"8_8_3_3_taxa_de_licenca_e_alvara",
			"8_8_3_4_outros_impostos_e_taxas",
			"8_8_4_seguros",
			"8_8_5_treinamento",
			"8_8_6_outras_despesas",
		},
	},
	{
		Name:  "third_party_services",
		Title: "Serviços de Terceiros",
		Members: []string{
			"8_9_servicos_de_terceiros",
			"8_9_1_contabilidade",
			"8_9_3_servicos_de_informatica",
			"8_9_4_servicos_vigilancia_e_seguranca",
			"8_9_6_servicos_de_transporte",
			"8_9_7_outros_servicos_terceirizados",
			"8_9_11_sistemas",
		},
	},
	{
		Name:     "operating_result",
		Title:    "Resultado Operacional",
		Headline: "resultado_operacional",
		Members: []string{
			"resultado_operacional",
			"_+_resultado_financeiro_liquido",
			"10_2_despesas_financeiras",
		},
	},
	{
		Name:  "net_financial_result",
		Title: "Resultado Financeiro Líquido",
		Members: []string{
			"_+_resultado_financeiro_liquido",
			"10_1_receitas_financeiras",
			"10_1_1_juros_sobre_receitas",
			"10_1_3_descontos_sobre_despesas",
			"10_1_4_rendimento_de_aplicacoes",
			"10_1_6_sobra_de_caixa",
		},
	},
	{
		Name:  "financial_expenses",
		Title: "Despesas Financeiras",
		Members: []string{
			"10_2_despesas_financeiras",
			"10_2_1_juros_sobre_despesas",
			"10_2_3_descontos_sobre_receitas",
			"10_2_4_juros_sobre_emprestimos",
			"10_2_5_taxa_de_antecipacao_de_cartoes",
			"10_2_6_iof",
			"10_2_8_outras_despesas_financeiras",
			"10_2_9_falta_de_caixa",
		},
	},
	{
		Name:             "pre_tax_result",
		Title:            "Resultado Antes do Imposto",
		Headline:         "resultado_operacional",
		DropEmptyPeriods: true,
		Members: []string{
			"resultado_antes_do_imposto",
			"ebitda",
			"despesa_com_escritorio",
			"resultado_operacional",
		},
	},
	{
		Name:             "period_result",
		Title:            "Resultado Gerencial do Período",
		Headline:         "resultado_antes_do_imposto",
		DropEmptyPeriods: true,
		Members: []string{
			"resultado_gerencial_do_periodo",
			"resultado_antes_do_imposto",
		},
	},
}

// DefaultRegistry returns the built-in management report categories.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultCategories...)
	if err != nil {
		panic("dre: invalid default categories: " + err.Error())
	}
	return r
}
