package domain

import "time"

// BasketItem is one line of a client's basket.
type BasketItem struct {
	AccountID int64
	Product   Product
	Count     int
}

// OrderLine is a single product purchase inside an Order.
type OrderLine struct {
	ProductID int64
	Name      string
	Price     int
	Count     int
}

// Cost is the price of the line.
func (l OrderLine) Cost() int { return l.Price * l.Count }

// OrderSource tells where a purchase originated.
type OrderSource string

const (
	SourceProduct OrderSource = "product"
	SourceBasket  OrderSource = "basket"
)

// Order is a set of lines a client pays for in one go.
type Order struct {
	AccountID int64
	Source    OrderSource
	Lines     []OrderLine
}

// Total is the sum of all line costs.
func (o Order) Total() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Cost()
	}
	return total
}

// Purchase is the journal record of a committed order.
type Purchase struct {
	AccountID   int64
	Source      OrderSource
	Lines       []OrderLine
	Total       int
	PurchasedAt time.Time
}
