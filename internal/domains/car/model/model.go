package model

import (
	"carhive/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "cars"
	EntityName = "car"

	FieldID          = "id"
	FieldBrand       = "brand"
	FieldModel       = "model"
	FieldYear        = "year"
	FieldImages      = "images"
	FieldPricePerDay = "price_per_day"
	FieldLocation    = "location"
	FieldAvailable   = "available"
)

type Car struct {
	ID          string         `db:"id"`
	Brand       string         `db:"brand"`
	Model       string         `db:"model"`
	Year        int            `db:"year"`
	Images      pq.StringArray `db:"images"`
	PricePerDay float64        `db:"price_per_day"`
	Location    string         `db:"location"`
	Available   bool           `db:"available"`
	model.Metadata
}
