package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name     string
	desc     string
	price    string
	sku      string
	category string
	stock    int
	imageURL string
	specs    [][2]string
}

var seedCategories = []struct {
	name string
	desc string
}{
	{"Living Room", "Sofas, coffee tables and armchairs"},
	{"Bedroom", "Beds, wardrobes and nightstands"},
	{"Dining", "Dining tables and chairs"},
	{"Office", "Desks and office chairs"},
}

var seedProducts = []seedProduct{
	{"Oslo Sofa", "Three-seater fabric sofa with oak legs", "899.00", "LR-SOFA-001", "Living Room", 14, "/images/oslo-sofa.jpg", [][2]string{{"Width", "210 cm"}, {"Upholstery", "Linen blend"}}},
	{"Luna Coffee Table", "Round walnut coffee table", "249.00", "LR-TBLE-002", "Living Room", 25, "/images/luna-table.jpg", [][2]string{{"Diameter", "90 cm"}}},
	{"Bergen Armchair", "Wingback armchair in bouclé", "459.00", "LR-CHR-003", "Living Room", 8, "/images/bergen-armchair.jpg", nil},
	{"Aria Bed Frame", "Queen bed frame with slatted base", "699.00", "BR-BED-001", "Bedroom", 12, "/images/aria-bed.jpg", [][2]string{{"Size", "Queen"}, {"Material", "Solid pine"}}},
	{"Nord Wardrobe", "Two-door wardrobe with mirror", "549.00", "BR-WRD-002", "Bedroom", 6, "/images/nord-wardrobe.jpg", nil},
	{"Sana Nightstand", "Compact nightstand with drawer", "119.00", "BR-NST-003", "Bedroom", 30, "/images/sana-nightstand.jpg", nil},
	{"Fjord Dining Table", "Extendable oak dining table for six", "799.00", "DN-TBLE-001", "Dining", 9, "/images/fjord-table.jpg", [][2]string{{"Length", "160-210 cm"}}},
	{"Kost Dining Chair", "Stackable beech dining chair", "89.00", "DN-CHR-002", "Dining", 48, "/images/kost-chair.jpg", nil},
	{"Atlas Desk", "Height-adjustable desk with cable tray", "429.00", "OF-DSK-001", "Office", 16, "/images/atlas-desk.jpg", [][2]string{{"Width", "140 cm"}, {"Height", "65-125 cm"}}},
	{"Ergo Office Chair", "Mesh-back task chair with lumbar support", "299.00", "OF-CHR-002", "Office", 22, "/images/ergo-chair.jpg", nil},
}

// Seed inserts demo categories and products if the catalog is empty.
func Seed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM products"); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil // already seeded
	}

	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		query, args, err := qb.Insert("categories").
			Rows(goqu.Record{"name": c.name, "description": c.desc, "is_active": true}).
			Returning("id").
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build category seed insert: %w", err)
		}
		var id int64
		if err := db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
		categoryIDs[c.name] = id
	}

	for _, p := range seedProducts {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("invalid seed price for %s: %w", p.sku, err)
		}

		query, args, err := qb.Insert("products").
			Rows(goqu.Record{
				"name":           p.name,
				"description":    p.desc,
				"price":          price,
				"sku":            p.sku,
				"category_id":    categoryIDs[p.category],
				"stock_quantity": p.stock,
				"is_active":      true,
			}).
			Returning("id").
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build product seed insert: %w", err)
		}
		var productID int64
		if err := db.QueryRowxContext(ctx, query, args...).Scan(&productID); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.sku, err)
		}

		query, args, err = qb.Insert("product_images").
			Rows(goqu.Record{
				"product_id":    productID,
				"image_url":     p.imageURL,
				"alt_text":      p.name,
				"is_primary":    true,
				"display_order": 0,
			}).
			Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build image seed insert: %w", err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to seed image for %s: %w", p.sku, err)
		}

		for i, spec := range p.specs {
			query, args, err = qb.Insert("product_specifications").
				Rows(goqu.Record{
					"product_id":    productID,
					"name":          spec[0],
					"value":         spec[1],
					"display_order": i,
				}).
				Prepared(true).ToSQL()
			if err != nil {
				return fmt.Errorf("failed to build specification seed insert: %w", err)
			}
			if _, err := db.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to seed specification for %s: %w", p.sku, err)
			}
		}
	}

	slog.Info("Seeded demo catalog", "categories", len(seedCategories), "products", len(seedProducts))
	return nil
}
