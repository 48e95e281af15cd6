package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/warehouse-atlas/pkg/adapters"
	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Handler interface {
	Handle(data *domain.WarehouseData) error
}

// JSONReporter writes warehouse data in the HTTP gateway's JSON shape
type JSONReporter struct {
	writer io.Writer
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONReporter{writer: writer}
}

func (c *JSONReporter) Handle(data *domain.WarehouseData) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(adapters.MapDomainWarehouseToAPI(*data))
}

func NewHandler(format string, writer io.Writer) (Handler, error) {
	switch format {
	case FormatText, "":
		return NewReporter(writer), nil
	case FormatJSON:
		return NewJSONReporter(writer), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: expected %s or %s", format, FormatText, FormatJSON)
	}
}
