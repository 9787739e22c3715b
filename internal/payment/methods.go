package payment

// Method identifies a payment path the shopper can choose at checkout.
type Method string

const (
	MethodCard     Method = "card"
	MethodWallet   Method = "wallet"
	MethodTransfer Method = "transfer"
)

// priority is the fixed order used to pick the default method and to list
// active methods: card gateway first, then wallet, then bank transfer.
var priority = []Method{MethodCard, MethodWallet, MethodTransfer}

var labels = map[Method]string{
	MethodCard:     "Card payment",
	MethodWallet:   "Wallet payment",
	MethodTransfer: "Bank transfer",
}

func (m Method) Valid() bool {
	_, ok := labels[m]
	return ok
}

func (m Method) Label() string {
	return labels[m]
}

// Info is one entry of the active-method list shown at checkout.
type Info struct {
	ID    Method `json:"id"`
	Label string `json:"label"`
}
