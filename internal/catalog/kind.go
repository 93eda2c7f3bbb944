package catalog

import "github.com/interpretive-systems/poslookup/internal/search"

// Kind is the broad category of a record, used for display only.
type Kind int

const (
	KindOther Kind = iota
	KindCustomer
	KindProduct
)

func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindProduct:
		return "product"
	default:
		return "item"
	}
}

// KindOf infers the category from the fields present: a phone marks a
// customer, a price marks a product or service.
func KindOf(item search.Item) Kind {
	if _, ok := item["phone"]; ok {
		return KindCustomer
	}
	if _, ok := item["price"]; ok {
		return KindProduct
	}
	return KindOther
}
