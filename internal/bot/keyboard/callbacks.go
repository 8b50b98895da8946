package keyboard

import (
	"strconv"
	"strings"

	"github.com/Proton-105/warung-bot/internal/domain"
)

// CallbackKind enumerates every button the bot renders.
type CallbackKind int

const (
	CallbackUnknown CallbackKind = iota
	CallbackMainMenu
	CallbackCatalog
	CallbackCart
	CallbackMyOrders
	CallbackCheckout
	CallbackAddToCart
	CallbackRemoveFromCart
	CallbackManageOrders
	CallbackPendingOrders
	CallbackAllOrders
	CallbackViewOrder
	CallbackUpdateOrderStatus
	CallbackBankAccounts
	CallbackViewBankAccounts
	CallbackAddBankAccount
	CallbackToggleBankAccount
	CallbackDeleteBankAccount
)

var callbackUniques = map[CallbackKind]string{
	CallbackMainMenu:          "main_menu",
	CallbackCatalog:           "catalog",
	CallbackCart:              "cart",
	CallbackMyOrders:          "orders",
	CallbackCheckout:          "checkout",
	CallbackAddToCart:         "add_to_cart",
	CallbackRemoveFromCart:    "remove_from_cart",
	CallbackManageOrders:      "manage_orders",
	CallbackPendingOrders:     "pending_orders",
	CallbackAllOrders:         "all_orders",
	CallbackViewOrder:         "view_order",
	CallbackUpdateOrderStatus: "update_order_status",
	CallbackBankAccounts:      "bank_accounts",
	CallbackViewBankAccounts:  "view_bank_accounts",
	CallbackAddBankAccount:    "add_bank_account",
	CallbackToggleBankAccount: "toggle_bank_account",
	CallbackDeleteBankAccount: "delete_bank_account",
}

var callbackKinds = func() map[string]CallbackKind {
	out := make(map[string]CallbackKind, len(callbackUniques))
	for kind, unique := range callbackUniques {
		out[unique] = kind
	}
	return out
}()

func (k CallbackKind) String() string {
	if unique, ok := callbackUniques[k]; ok {
		return unique
	}
	return "unknown"
}

// Callback is a decoded button payload. Only the fields of its Kind are set.
type Callback struct {
	Kind   CallbackKind
	ID     int64
	Status domain.OrderStatus
	Page   int
}

// ParseCallback decodes raw callback data. Anything that does not match a known shape is rejected.
func ParseCallback(raw string) (Callback, bool) {
	unique, data, err := DecodeCallback(raw)
	if err != nil {
		return Callback{}, false
	}

	kind, ok := callbackKinds[unique]
	if !ok {
		return Callback{}, false
	}

	switch kind {
	case CallbackAddToCart, CallbackRemoveFromCart, CallbackViewOrder,
		CallbackToggleBankAccount, CallbackDeleteBankAccount:
		id, ok := parseID(data)
		if !ok {
			return Callback{}, false
		}
		return Callback{Kind: kind, ID: id}, true

	case CallbackUpdateOrderStatus:
		rawID, rawStatus, found := strings.Cut(data, CallbackDataSeparator)
		if !found {
			return Callback{}, false
		}
		id, ok := parseID(rawID)
		if !ok {
			return Callback{}, false
		}
		status, ok := domain.ParseOrderStatus(rawStatus)
		if !ok {
			return Callback{}, false
		}
		return Callback{Kind: kind, ID: id, Status: status}, true

	case CallbackAllOrders:
		if data == "" {
			return Callback{Kind: kind, Page: 1}, true
		}
		page, err := strconv.Atoi(data)
		if err != nil || page < 1 {
			return Callback{}, false
		}
		return Callback{Kind: kind, Page: page}, true

	default:
		if data != "" {
			return Callback{}, false
		}
		return Callback{Kind: kind}, true
	}
}

// Button renders c as an inline button with the given label.
func (c Callback) Button(text string) InlineButton {
	btn := InlineButton{Text: text, Unique: c.Kind.String()}

	switch c.Kind {
	case CallbackUpdateOrderStatus:
		btn.Data = strconv.FormatInt(c.ID, 10) + CallbackDataSeparator + string(c.Status)
	case CallbackAllOrders:
		if c.Page > 1 {
			btn.Data = strconv.Itoa(c.Page)
		}
	default:
		if c.ID != 0 {
			btn.Data = strconv.FormatInt(c.ID, 10)
		}
	}

	return btn
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
