// Package dashboard holds the aggregate payload of GET /dashboard and the chart
// configurations derived from it.
package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dashboard is the aggregate read returned by the backend.
type Dashboard struct {
	KPIs     KPIs     `json:"kpis"`
	Graficos Graficos `json:"graficos"`
}

// KPIs are the summary metrics. Absent fields decode as zero.
type KPIs struct {
	TotalClientes      float64 `json:"total_clientes"`
	ClientesAtivos     float64 `json:"clientes_ativos"`
	NovosClientesMes   float64 `json:"novos_clientes_mes"`
	TotalPedidos       float64 `json:"total_pedidos"`
	PedidosEmAndamento float64 `json:"pedidos_em_andamento"`
	PedidosAtrasados   float64 `json:"pedidos_atrasados"`
	FaturamentoMes     float64 `json:"faturamento_mes"`
	MargemMedia        float64 `json:"margem_media"`
	ReceitasMes        float64 `json:"receitas_mes"`
	DespesasMes        float64 `json:"despesas_mes"`
	SaldoMes           float64 `json:"saldo_mes"`
	DemandasEmCriacao  float64 `json:"demandas_em_criacao"`
	DemandasAguardando float64 `json:"demandas_aguardando"`
	DemandasUrgentes   float64 `json:"demandas_urgentes"`
}

// LateOrdersVariant is the card style for the late-orders KPI.
func (k KPIs) LateOrdersVariant() string {
	if k.PedidosAtrasados > 0 {
		return "danger"
	}
	return "info"
}

// BalanceClass is the text class for the monthly balance.
func (k KPIs) BalanceClass() string {
	if k.SaldoMes >= 0 {
		return "text-success"
	}
	return "text-danger"
}

// Graficos carries the series used by the charts and the top-clients table.
type Graficos struct {
	PedidosPorStatus     StatusCounts   `json:"pedidos_por_status"`
	FaturamentoHistorico []MonthlyValue `json:"faturamento_historico"`
	TopClientes          []TopClient    `json:"top_clientes"`
}

// MonthlyValue is one point of the billing history.
type MonthlyValue struct {
	Mes   string  `json:"mes"`
	Valor float64 `json:"valor"`
}

// TopClient is one row of the top-clients table.
type TopClient struct {
	Nome       string  `json:"nome"`
	ValorTotal float64 `json:"valor_total"`
	QtdPedidos float64 `json:"qtd_pedidos"`
}

// StatusCount is one entry of the orders-by-status breakdown.
type StatusCount struct {
	Status string
	Count  float64
}

// StatusCounts decodes a JSON object while keeping the backend's key order,
// so chart slices keep the colors the backend order implies.
type StatusCounts []StatusCount

// UnmarshalJSON implements json.Unmarshaler.
func (s *StatusCounts) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("pedidos_por_status: expected object, got %v", tok)
	}
	out := StatusCounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var n *float64
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("pedidos_por_status[%s]: %w", key, err)
		}
		var v float64
		if n != nil {
			v = *n
		}
		out = append(out, StatusCount{Status: key, Count: v})
	}
	*s = out
	return nil
}

// MarshalJSON writes the counts back as an object in the same order.
func (s StatusCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Status)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(c.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
