package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/format"
	"github.com/techmidia/painel/internal/ports"
)

// ColumnFormat selects how a cell value is displayed.
type ColumnFormat string

const (
	FormatText     ColumnFormat = "text"
	FormatCurrency ColumnFormat = "currency"
	FormatNumber   ColumnFormat = "number"
	FormatPercent  ColumnFormat = "percent"
	FormatDate     ColumnFormat = "date"
	FormatDateTime ColumnFormat = "datetime"
	FormatBool     ColumnFormat = "bool"
	// FormatBadge renders a status pill styled by the lowercased value.
	FormatBadge ColumnFormat = "badge"
)

// MessageEmptyList is shown instead of an empty table.
const MessageEmptyList = "Nenhum registro encontrado."

// Column extracts one table column from each raw JSON row with a JMESPath expression.
type Column struct {
	Header string
	Expr   string
	Format ColumnFormat
}

// ResourceSpec describes a read-only backend collection shown as a table.
type ResourceSpec struct {
	Path    string
	Columns []Column
	// Filters are the query parameters forwarded to the backend.
	Filters []string
}

// Cell is one formatted value.
type Cell struct {
	Text  string
	Class string
	Value any
}

// Table is a formatted list page.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t == nil || len(t.Rows) == 0 }

// Validate checks every column expression compiles.
func (r ResourceSpec) Validate() error {
	for _, c := range r.Columns {
		if _, err := jmespath.Compile(c.Expr); err != nil {
			return fmt.Errorf("column %q: %w", c.Header, err)
		}
	}
	return nil
}

// FilterQuery keeps only the whitelisted, non-blank filters from q.
func (r ResourceSpec) FilterQuery(q url.Values) url.Values {
	out := url.Values{}
	for _, name := range r.Filters {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			out.Set(name, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ResourceServiceOptions groups dependencies for ResourceService.
type ResourceServiceOptions struct {
	Backend ports.BackendAPI
}

// ResourceService lists backend collections as formatted tables.
type ResourceService struct {
	backend ports.BackendAPI
}

// NewResourceService constructs a new ResourceService.
func NewResourceService(opts ResourceServiceOptions) *ResourceService {
	if opts.Backend == nil {
		panic("ResourceService requires a backend")
	}
	return &ResourceService{backend: opts.Backend}
}

// List fetches spec.Path with the whitelisted filters and builds the table.
func (s *ResourceService) List(
	ctx context.Context,
	creds apiclient.Credentials,
	spec ResourceSpec,
	query url.Values,
) (*Table, error) {
	var rows []any
	if err := s.backend.Get(ctx, creds, spec.Path, spec.FilterQuery(query), &rows); err != nil {
		return nil, err
	}
	return BuildTable(spec, rows)
}

// BuildTable formats raw rows. Missing values render as "-" (text, dates) or zero (numeric).
func BuildTable(spec ResourceSpec, rows []any) (*Table, error) {
	t := &Table{Headers: make([]string, len(spec.Columns)), Rows: make([][]Cell, 0, len(rows))}
	for i, c := range spec.Columns {
		t.Headers[i] = c.Header
	}
	for _, row := range rows {
		cells := make([]Cell, len(spec.Columns))
		for i, c := range spec.Columns {
			v, err := jmespath.Search(c.Expr, row)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", c.Header, err)
			}
			cells[i] = formatCell(c.Format, v)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

func formatCell(f ColumnFormat, v any) Cell {
	c := Cell{Value: v}
	switch f {
	case FormatCurrency:
		c.Text, c.Class = format.Currency(v), "text-end"
	case FormatNumber:
		c.Text, c.Class = format.Number(v), "text-end"
	case FormatPercent:
		c.Text, c.Class = format.Percent(v), "text-end"
	case FormatDate:
		c.Text = format.Date(v)
	case FormatDateTime:
		c.Text = format.DateTime(v)
	case FormatBool:
		if v == nil {
			c.Text = format.Placeholder
		} else {
			c.Text = format.Text(v)
		}
	case FormatBadge:
		c.Text = format.OrDash(v)
		if c.Text != format.Placeholder {
			c.Class = "status-badge status-" + badgeSlug(c.Text)
		}
	default:
		c.Text = format.OrDash(v)
	}
	return c
}

func badgeSlug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
