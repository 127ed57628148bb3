package service

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/techmidia/painel/internal/apiclient"
)

func rawRows(t *testing.T, body string) []any {
	t.Helper()
	var rows []any
	require.NoError(t, json.Unmarshal([]byte(body), &rows))
	return rows
}

func TestValidateResources(t *testing.T) {
	require.NoError(t, ValidateResources())
}

func TestBuildTable_ClientesFormatsAndPlaceholders(t *testing.T) {
	spec, ok := Resource("clientes")
	require.True(t, ok)

	rows := rawRows(t, `[
		{"nome":"Prefeitura de Lins","tipo":"Prefeitura","cidade":"Lins","status":"Ativo","qtd_pedidos":12,"valor_total":1234.5},
		{"nome":"Padaria","tipo":"Comércio","status":"Em Negociação"}
	]`)

	table, err := BuildTable(spec, rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nome", "Tipo", "Cidade", "Status", "Pedidos", "Valor Total"}, table.Headers)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	assert.Equal(t, "Prefeitura de Lins", first[0].Text)
	assert.Equal(t, "status-badge status-ativo", first[3].Class)
	assert.Equal(t, "12", first[4].Text)
	assert.Equal(t, "R$ 1.234,50", first[5].Text)

	second := table.Rows[1]
	assert.Equal(t, "-", second[2].Text)
	assert.Equal(t, "status-badge status-em-negociação", second[3].Class)
	assert.Equal(t, "0", second[4].Text)
	assert.Equal(t, "R$ 0,00", second[5].Text)
}

func TestBuildTable_DatesAndBools(t *testing.T) {
	spec := ResourceSpec{Columns: []Column{
		{Header: "Entrega", Expr: "data_entrega", Format: FormatDate},
		{Header: "Ativo", Expr: "ativo", Format: FormatBool},
		{Header: "Acesso", Expr: "last_login", Format: FormatDateTime},
	}}

	table, err := BuildTable(spec, rawRows(t, `[{"data_entrega":"2024-03-05","ativo":true,"last_login":"2024-03-05T14:07:00"},{}]`))
	require.NoError(t, err)

	assert.Equal(t, "05/03/2024", table.Rows[0][0].Text)
	assert.Equal(t, "Sim", table.Rows[0][1].Text)
	assert.Equal(t, "05/03/2024 14:07", table.Rows[0][2].Text)
	assert.Equal(t, "-", table.Rows[1][0].Text)
	assert.Equal(t, "-", table.Rows[1][1].Text)
}

func TestBuildTable_Empty(t *testing.T) {
	spec, _ := Resource("pedidos")
	table, err := BuildTable(spec, nil)
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestResourceSpec_FilterQuery(t *testing.T) {
	spec, _ := Resource("pedidos")

	q := url.Values{
		"status":      {"Em andamento"},
		"cliente_id":  {" 4 "},
		"responsavel": {""},
		"drop_table":  {"x"},
	}
	assert.Equal(t, url.Values{"status": {"Em andamento"}, "cliente_id": {"4"}}, spec.FilterQuery(q))
	assert.Nil(t, spec.FilterQuery(url.Values{}))
}

func TestResourceService_List(t *testing.T) {
	backend := newBackend(t)
	svc := NewResourceService(ResourceServiceOptions{Backend: backend})
	spec, _ := Resource("fornecedores")

	backend.EXPECT().
		Get(gomock.Any(), gomock.Any(), "/fornecedores", url.Values{"cidade": {"Bauru"}}, gomock.Any()).
		DoAndReturn(getJSON(`[{"nome":"Gráfica Boa","cidade":"Bauru","prazo_medio":3,"status":"Ativo"}]`))

	table, err := svc.List(context.Background(), apiclient.Credentials{}, spec, url.Values{"cidade": {"Bauru"}})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Gráfica Boa", table.Rows[0][0].Text)
	assert.Equal(t, "3", table.Rows[0][4].Text)
}

func TestResource_Unknown(t *testing.T) {
	_, ok := Resource("nao-existe")
	assert.False(t, ok)
}
