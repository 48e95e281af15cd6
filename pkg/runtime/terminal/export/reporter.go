package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
)

type TableConfig struct {
	IDWidth       int
	NameWidth     int
	QuantityWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:       16,
		NameWidth:     40,
		QuantityWidth: 12,
	}
}

// Reporter renders warehouse data as a text table
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(data *domain.WarehouseData) error {
	funcMap := template.FuncMap{
		"formatRow": func(id string, name string, quantity interface{}) string {
			return fmt.Sprintf("| %-*s | %-*s | %*v |",
				c.config.IDWidth, id,
				c.config.NameWidth, name,
				c.config.QuantityWidth, quantity)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.QuantityWidth+2))
		},
	}

	tmpl := `
Warehouse: {{.WarehouseID}}
Name: {{.WarehouseName}}
City: {{.WarehouseCity}}
Products: {{len .Products}}

{{separator}}
{{formatRow "Product ID" "Name" "Quantity"}}
{{separator}}
{{range .Products}}{{formatRow .ProductID .ProductName .ProductQuantity}}
{{end}}{{separator}}
`

	t, err := template.New("warehouse").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}
