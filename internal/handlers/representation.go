package handlers

import (
	"encoding/json"

	"kassa/internal/models"
)

// ProductRepresentation is the public shape of a product. The VAT class is
// exposed as its percentage under "vat". Every key is always present; a
// missing product renders as all nulls.
type ProductRepresentation struct {
	Name    *string      `json:"name"`
	Barcode *int64       `json:"barcode"`
	Cost    *json.Number `json:"cost"`
	Vat     *json.Number `json:"vat"`
}

// SerializeProduct maps a product, possibly nil, to its representation.
func SerializeProduct(product *models.Product) ProductRepresentation {
	if product == nil {
		return ProductRepresentation{}
	}
	cost := json.Number(product.Cost.String())
	rep := ProductRepresentation{
		Name:    &product.Name,
		Barcode: &product.Barcode,
		Cost:    &cost,
	}
	if product.VatClass != nil {
		vat := json.Number(product.VatClass.Percent.String())
		rep.Vat = &vat
	}
	return rep
}
