// Command gencatalog writes a sample CMS export for local development.
//
//	go run ./scripts/gencatalog [-out data/catalog/sample.jsonl.gz]
package main

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type object struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Slug       string         `json:"slug"`
	Title      string         `json:"title"`
	Content    string         `json:"content,omitempty"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt time.Time      `json:"modified_at"`
}

func image(name string) map[string]any {
	return map[string]any{
		"url":       "https://cdn.example.com/" + name,
		"imgix_url": "https://imgix.example.com/" + name,
	}
}

func sampleObjects(now time.Time) []object {
	objects := []object{
		{ID: "prod-desk-lamp", Type: "products", Slug: "desk-lamp", Title: "Desk Lamp", Metadata: map[string]any{
			"product_name": "Desk Lamp", "description": "Brass desk lamp with warm LED", "price": 49.99,
			"images": []any{image("desk-lamp.jpg")}, "stock_quantity": 25, "sku": "LAMP-001",
		}},
		{ID: "prod-oak-chair", Type: "products", Slug: "oak-chair", Title: "Oak Chair", Metadata: map[string]any{
			"product_name": "Oak Chair", "description": "Solid oak dining chair", "price": 129.00,
			"images": []any{image("oak-chair.jpg")}, "stock_quantity": 8, "sku": "CHAIR-OAK",
		}},
		{ID: "prod-notebook", Type: "products", Slug: "notebook", Title: "Notebook", Metadata: map[string]any{
			"product_name": "Notebook", "description": "A5 dotted notebook", "price": 12.5, "sku": "NB-A5",
		}},
		{ID: "svc-web-design", Type: "services", Slug: "web-design", Title: "Web Design", Metadata: map[string]any{
			"service_name": "Web Design", "short_description": "Sites that convert",
			"starting_price": "$2,500", "features": []string{"Responsive layouts", "CMS integration"},
		}},
		{ID: "svc-seo", Type: "services", Slug: "seo", Title: "SEO", Metadata: map[string]any{
			"service_name": "SEO", "short_description": "Get found",
		}},
		{ID: "cs-bakery", Type: "case-studies", Slug: "corner-bakery", Title: "Corner Bakery", Metadata: map[string]any{
			"project_name": "Corner Bakery online shop", "client_name": "Corner Bakery", "project_summary": "Ordering for a local bakery",
		}},
		{ID: "tm-ada", Type: "team-members", Slug: "ada", Title: "Ada", Metadata: map[string]any{
			"full_name": "Ada Lovelace", "job_title": "Engineering Lead",
		}},
		{ID: "tst-bakery", Type: "testimonials", Slug: "bakery-review", Title: "Bakery review", Metadata: map[string]any{
			"client_name": "Sam", "client_company": "Corner Bakery", "testimonial_quote": "Sales doubled.",
			"rating": map[string]string{"key": "5", "value": "5 Stars"},
		}},
	}

	for i := range objects {
		objects[i].CreatedAt = now
		objects[i].ModifiedAt = now
	}
	return objects
}

func main() {
	out := flag.String("out", "data/catalog/sample.jsonl.gz", "output path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	w := bufio.NewWriter(gz)
	enc := json.NewEncoder(w)

	objects := sampleObjects(time.Now().UTC())
	for _, obj := range objects {
		if err := enc.Encode(obj); err != nil {
			log.Fatalf("Failed to write %s: %v", obj.ID, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Fatalf("Failed to flush export: %v", err)
	}
	if err := gz.Close(); err != nil {
		log.Fatalf("Failed to close gzip writer: %v", err)
	}

	fmt.Printf("Wrote %d content objects to %s\n", len(objects), *out)
}
