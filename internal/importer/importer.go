package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
)

type ProductWriter interface {
	Create(ctx context.Context, in productsvc.UpsertInput) (*domain.Product, error)
}

// JSONImporter streams a catalog JSON export (an array of products) and
// inserts each entry. Rows are decoded one at a time so large exports do not
// need to fit in memory.
type JSONImporter struct {
	decoder  *json.Decoder
	products ProductWriter
}

func NewJSONImporter(r io.Reader, products ProductWriter) *JSONImporter {
	return &JSONImporter{
		decoder:  json.NewDecoder(r),
		products: products,
	}
}

// Run parses the export and creates products. It stops at the first invalid
// row and reports how many were imported before it.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	tok, err := i.decoder.Token()
	if err != nil {
		return 0, fmt.Errorf("read opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return 0, errors.New("catalog export must be a JSON array")
	}

	imported := 0
	for i.decoder.More() {
		var row productsvc.UpsertInput
		if err := i.decoder.Decode(&row); err != nil {
			return imported, fmt.Errorf("decode row %d: %w", imported+1, err)
		}
		if _, err := i.products.Create(ctx, row); err != nil {
			return imported, fmt.Errorf("import %q: %w", row.Name, err)
		}
		imported++
	}

	if _, err := i.decoder.Token(); err != nil {
		return imported, fmt.Errorf("read closing token: %w", err)
	}
	return imported, nil
}
