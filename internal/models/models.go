// Package models holds the persisted entities of the back office.
package models

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{&VatClass{}, &Product{}, &User{}, &Receipt{}, &ReceiptItem{}}
}
