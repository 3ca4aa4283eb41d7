// Package catalog loads product seed data: the embedded default catalog, a
// local JSON file, or a remote JSON document.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"hijabstore/internal/model"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Item is one catalog entry as it appears in seed documents. Prices are
// strings so that no float rounding happens before decimal parsing.
type Item struct {
	ID       uint   `json:"id"`
	Nama     string `json:"nama"`
	Kategori string `json:"kategori"`
	Harga    string `json:"harga"`
	ImageURL string `json:"imageUrl"`
}

// Result is a parsed catalog plus the entries that were rejected.
type Result struct {
	Products []model.Product
	Skipped  []string
}

// Default returns the embedded catalog.
func Default() (*Result, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// Load reads a catalog from a file path or an http(s) URL.
func Load(ctx context.Context, source string) (*Result, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func fetch(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status code: %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Parse decodes a JSON array of items. Entries without a name, category or a
// valid price are skipped and reported.
func Parse(r io.Reader) (*Result, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	res := &Result{Products: make([]model.Product, 0, len(items))}
	for _, it := range items {
		if strings.TrimSpace(it.Nama) == "" || strings.TrimSpace(it.Kategori) == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("item %d: missing nama or kategori", it.ID))
			continue
		}
		price, err := decimal.NewFromString(it.Harga)
		if err != nil || price.IsNegative() {
			res.Skipped = append(res.Skipped, fmt.Sprintf("item %d: invalid harga %q", it.ID, it.Harga))
			continue
		}
		res.Products = append(res.Products, model.Product{
			ID:       it.ID,
			Name:     it.Nama,
			Category: it.Kategori,
			Price:    price,
			ImageURL: it.ImageURL,
		})
	}
	return res, nil
}
