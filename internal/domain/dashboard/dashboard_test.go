package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = `{
  "kpis": {"total_clientes": 12, "pedidos_atrasados": 2, "faturamento_mes": 1500.5, "saldo_mes": -10},
  "graficos": {
    "pedidos_por_status": {"Em andamento": 3, "Concluído": 5, "Atrasado": null},
    "faturamento_historico": [{"mes": "01/2024", "valor": 100}, {"mes": "02/2024", "valor": 250.5}],
    "top_clientes": [{"nome": "Prefeitura", "valor_total": 900, "qtd_pedidos": 4}]
  }
}`

func TestDecode_KeepsStatusOrderAndZeroes(t *testing.T) {
	var d Dashboard
	require.NoError(t, json.Unmarshal([]byte(payload), &d))

	assert.Equal(t, StatusCounts{
		{Status: "Em andamento", Count: 3},
		{Status: "Concluído", Count: 5},
		{Status: "Atrasado", Count: 0},
	}, d.Graficos.PedidosPorStatus)
	assert.Zero(t, d.KPIs.ClientesAtivos)
	assert.Equal(t, "danger", d.KPIs.LateOrdersVariant())
	assert.Equal(t, "text-danger", d.KPIs.BalanceClass())
}

func TestDecode_EmptyPayload(t *testing.T) {
	var d Dashboard
	require.NoError(t, json.Unmarshal([]byte(`{"kpis": {}, "graficos": {"pedidos_por_status": null}}`), &d))
	assert.Equal(t, "info", d.KPIs.LateOrdersVariant())
	assert.Equal(t, "text-success", d.KPIs.BalanceClass())
	assert.Empty(t, d.StatusChart().Data.Labels)
	assert.Empty(t, d.BillingChart().Data.Labels)
}

func TestStatusCounts_RejectsNonObject(t *testing.T) {
	var s StatusCounts
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))
}

func TestCharts(t *testing.T) {
	var d Dashboard
	require.NoError(t, json.Unmarshal([]byte(payload), &d))

	billing := d.BillingChart()
	assert.Equal(t, "line", billing.Type)
	assert.Equal(t, []string{"01/2024", "02/2024"}, billing.Data.Labels)
	require.Len(t, billing.Data.Datasets, 1)
	assert.Equal(t, "Faturamento", billing.Data.Datasets[0].Label)
	assert.Equal(t, []float64{100, 250.5}, billing.Data.Datasets[0].Data)

	status := d.StatusChart()
	assert.Equal(t, "doughnut", status.Type)
	assert.Equal(t, []string{"Em andamento", "Concluído", "Atrasado"}, status.Data.Labels)
	assert.Equal(t, StatusPalette, status.Data.Datasets[0].BackgroundColor)

	raw, err := json.Marshal(status)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"labels":["Em andamento","Concluído","Atrasado"]`)
}

func TestStatusCounts_MarshalKeepsOrder(t *testing.T) {
	raw, err := json.Marshal(StatusCounts{{Status: "b", Count: 1}, {Status: "a", Count: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":1,"a":2}`, string(raw))
	assert.Equal(t, `{"b":1,"a":2}`, string(raw))
}
