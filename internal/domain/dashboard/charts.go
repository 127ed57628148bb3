package dashboard

// StatusPalette colors the orders-by-status slices, in order.
var StatusPalette = []string{"#007bff", "#28a745", "#ffc107", "#dc3545", "#6c757d"}

// Chart is a chart-widget configuration in the {type, data{labels, datasets}} shape.
type Chart struct {
	Type string    `json:"type"`
	Data ChartData `json:"data"`
	// Format tells the client how to label the value axis ("currency" or "").
	Format string `json:"format,omitempty"`
}

// ChartData holds labels and datasets.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

// BillingChart is the time series of monthly billing.
func (d Dashboard) BillingChart() Chart {
	hist := d.Graficos.FaturamentoHistorico
	labels := make([]string, 0, len(hist))
	values := make([]float64, 0, len(hist))
	for _, p := range hist {
		labels = append(labels, p.Mes)
		values = append(values, p.Valor)
	}
	return Chart{
		Type:   "line",
		Format: "currency",
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Faturamento",
				Data:            values,
				BorderColor:     "rgb(0, 123, 255)",
				BackgroundColor: "rgba(0, 123, 255, 0.1)",
				Tension:         0.4,
			}},
		},
	}
}

// StatusChart is the category breakdown of orders by status.
func (d Dashboard) StatusChart() Chart {
	counts := d.Graficos.PedidosPorStatus
	labels := make([]string, 0, len(counts))
	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Status)
		values = append(values, c.Count)
	}
	colors := make([]string, len(StatusPalette))
	copy(colors, StatusPalette)
	return Chart{
		Type: "doughnut",
		Data: ChartData{
			Labels:   labels,
			Datasets: []Dataset{{Data: values, BackgroundColor: colors}},
		},
	}
}
