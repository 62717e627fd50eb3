package models

const (
	DiningHere     = "HERE"
	DiningToGo     = "TO_GO"
	DiningDelivery = "DELIVERY"

	OrderStateOpen = "open"
	OrderStatePaid = "paid"

	TenderLabelCash     = "cash"
	TenderLabelGiftCard = "gift card"
)

// RefundReasons is the fixed pool the refund processor draws from.
var RefundReasons = []string{
	"customer complaint",
	"wrong item",
	"order mistake",
	"quality issue",
	"manager comp",
}

// OrderNotes is the fixed pool of free-text line-item notes.
var OrderNotes = []string{
	"no onions",
	"extra sauce on the side",
	"allergy: peanuts",
	"well done",
	"split plates please",
	"light ice",
	"gluten free if possible",
	"birthday dessert",
}
