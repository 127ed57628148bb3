package service

import "fmt"

// Resources maps list page ids to their backend collections.
var Resources = map[string]ResourceSpec{
	"clientes": {
		Path: "/clientes",
		Columns: []Column{
			{Header: "Nome", Expr: "nome", Format: FormatText},
			{Header: "Tipo", Expr: "tipo", Format: FormatText},
			{Header: "Cidade", Expr: "cidade", Format: FormatText},
			{Header: "Status", Expr: "status", Format: FormatBadge},
			{Header: "Pedidos", Expr: "qtd_pedidos", Format: FormatNumber},
			{Header: "Valor Total", Expr: "valor_total", Format: FormatCurrency},
		},
		Filters: []string{"status", "tipo", "cidade"},
	},
	"pedidos": {
		Path: "/pedidos",
		Columns: []Column{
			{Header: "Pedido", Expr: "id_pedido", Format: FormatText},
			{Header: "Cliente", Expr: "cliente_nome", Format: FormatText},
			{Header: "Serviço", Expr: "tipo_servico", Format: FormatText},
			{Header: "Responsável", Expr: "responsavel", Format: FormatText},
			{Header: "Status", Expr: "status", Format: FormatBadge},
			{Header: "Entrega", Expr: "data_entrega", Format: FormatDate},
			{Header: "Valor", Expr: "valor", Format: FormatCurrency},
			{Header: "Margem", Expr: "margem", Format: FormatPercent},
		},
		Filters: []string{"status", "tipo_servico", "responsavel", "cliente_id"},
	},
	"demandas": {
		Path: "/demandas-social",
		Columns: []Column{
			{Header: "Demanda", Expr: "demanda", Format: FormatText},
			{Header: "Cliente", Expr: "cliente_nome", Format: FormatText},
			{Header: "Tipo de Arte", Expr: "tipo_arte", Format: FormatText},
			{Header: "Prioridade", Expr: "prioridade", Format: FormatBadge},
			{Header: "Status", Expr: "status", Format: FormatBadge},
			{Header: "Entrega", Expr: "data_entrega", Format: FormatDate},
			{Header: "Aprovado", Expr: "aprovado", Format: FormatBool},
		},
		Filters: []string{"status", "tipo_arte", "cliente_id", "prioridade"},
	},
	"financeiro": {
		Path: "/financeiro",
		Columns: []Column{
			{Header: "Data", Expr: "data", Format: FormatDate},
			{Header: "Descrição", Expr: "descricao", Format: FormatText},
			{Header: "Tipo", Expr: "tipo", Format: FormatBadge},
			{Header: "Categoria", Expr: "categoria", Format: FormatText},
			{Header: "Cliente/Fornecedor", Expr: "cliente_fornecedor", Format: FormatText},
			{Header: "Status", Expr: "status", Format: FormatBadge},
			{Header: "Valor", Expr: "valor", Format: FormatCurrency},
		},
		Filters: []string{"tipo", "categoria", "status", "data_inicio", "data_fim"},
	},
	"fornecedores": {
		Path: "/fornecedores",
		Columns: []Column{
			{Header: "Nome", Expr: "nome", Format: FormatText},
			{Header: "Serviço", Expr: "tipo_servico", Format: FormatText},
			{Header: "Contato", Expr: "contato", Format: FormatText},
			{Header: "Cidade", Expr: "cidade", Format: FormatText},
			{Header: "Prazo Médio (dias)", Expr: "prazo_medio", Format: FormatNumber},
			{Header: "Avaliação", Expr: "avaliacao", Format: FormatNumber},
			{Header: "Status", Expr: "status", Format: FormatBadge},
		},
		Filters: []string{"tipo_servico", "status", "cidade"},
	},
	"tabela-precos": {
		Path: "/tabela-precos",
		Columns: []Column{
			{Header: "Produto/Serviço", Expr: "produto_servico", Format: FormatText},
			{Header: "Categoria", Expr: "categoria", Format: FormatText},
			{Header: "Fornecedor", Expr: "fornecedor_nome", Format: FormatText},
			{Header: "Unidade", Expr: "unidade", Format: FormatText},
			{Header: "Custo", Expr: "preco_custo", Format: FormatCurrency},
			{Header: "Markup", Expr: "markup", Format: FormatPercent},
			{Header: "Preço de Venda", Expr: "preco_venda", Format: FormatCurrency},
			{Header: "Ativo", Expr: "ativo", Format: FormatBool},
		},
		Filters: []string{"categoria", "fornecedor_id", "ativo"},
	},
	"usuarios": {
		Path: "/users",
		Columns: []Column{
			{Header: "Usuário", Expr: "username", Format: FormatText},
			{Header: "E-mail", Expr: "email", Format: FormatText},
			{Header: "Perfil", Expr: "role", Format: FormatBadge},
			{Header: "Ativo", Expr: "is_active", Format: FormatBool},
			{Header: "Último Acesso", Expr: "last_login", Format: FormatDateTime},
		},
	},
}

// Resource returns the collection behind a list page.
func Resource(page string) (ResourceSpec, bool) {
	spec, ok := Resources[page]
	return spec, ok
}

// ValidateResources checks every catalog expression compiles.
func ValidateResources() error {
	for page, spec := range Resources {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("resource %s: %w", page, err)
		}
	}
	return nil
}
