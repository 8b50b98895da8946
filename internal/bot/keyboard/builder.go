package keyboard

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/domain"
)

// OrdersPerPage bounds the all-orders list.
const OrdersPerPage = 10

// Builder creates the inline keyboards shown by the bot.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log}
}

func cb(kind CallbackKind) Callback { return Callback{Kind: kind} }

func (b *Builder) build(name string, kb *InlineKeyboardBuilder) *telebot.ReplyMarkup {
	markup, err := kb.Build()
	if err != nil {
		b.log.Error("failed to build keyboard", slog.String("keyboard", name), slog.Any("error", err))
		return nil
	}
	return markup
}

// MainMenu builds the customer entry menu.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	kb := NewInlineKeyboard().
		AddRow(cb(CallbackCatalog).Button("🛍️ Catalog")).
		AddRow(cb(CallbackCart).Button("🛒 My Cart")).
		AddRow(cb(CallbackMyOrders).Button("📦 My Orders"))
	return b.build("main_menu", kb)
}

// ProductCard builds the buttons under one catalog entry.
func (b *Builder) ProductCard(productID int64) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard().
		AddRow(Callback{Kind: CallbackAddToCart, ID: productID}.Button("Add to Cart"))
	return b.build("product_card", kb)
}

// CartItem is the subset of a cart line the keyboard needs.
type CartItem struct {
	ProductID int64
	Name      string
}

// Cart builds per-item remove buttons plus checkout and back.
func (b *Builder) Cart(items []CartItem) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	for _, item := range items {
		kb.AddRow(Callback{Kind: CallbackRemoveFromCart, ID: item.ProductID}.Button("Remove " + item.Name))
	}
	kb.AddRow(cb(CallbackCheckout).Button("Checkout")).
		AddRow(cb(CallbackMainMenu).Button("Back to Menu"))
	return b.build("cart", kb)
}

// BackToMenu builds a single back button.
func (b *Builder) BackToMenu() *telebot.ReplyMarkup {
	return b.build("back_to_menu", NewInlineKeyboard().AddRow(cb(CallbackMainMenu).Button("🏠 Back to Menu")))
}

// OrdersPanel builds the admin order management menu.
func (b *Builder) OrdersPanel() *telebot.ReplyMarkup {
	kb := NewInlineKeyboard().
		AddRow(cb(CallbackPendingOrders).Button("📋 View Pending Orders")).
		AddRow(cb(CallbackAllOrders).Button("📊 View All Orders")).
		AddRow(cb(CallbackMainMenu).Button("🏠 Back to Menu"))
	return b.build("orders_panel", kb)
}

// OrderList builds one view button per order, optional pagination and back.
// totalPages below 2 hides the pagination row.
func (b *Builder) OrderList(orders []domain.Order, page, totalPages int) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	for _, order := range orders {
		kb.AddRow(Callback{Kind: CallbackViewOrder, ID: order.ID}.Button(fmt.Sprintf("📝 View Order #%d", order.ID)))
	}
	if totalPages > 1 {
		kb.AddRow(PaginationButtons(CallbackAllOrders, page, totalPages)...)
	}
	kb.AddRow(cb(CallbackMainMenu).Button("🏠 Back to Menu"))
	return b.build("order_list", kb)
}

var statusButtonLabels = map[domain.OrderStatus]string{
	domain.OrderPaid:      "✅ Mark as Paid",
	domain.OrderShipped:   "🚚 Mark as Shipped",
	domain.OrderDelivered: "📦 Mark as Delivered",
	domain.OrderCanceled:  "❌ Cancel Order",
}

// OrderDetails offers only the transitions valid from the order's current status.
func (b *Builder) OrderDetails(order domain.Order) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	for _, next := range order.Status.NextStatuses() {
		kb.AddRow(Callback{Kind: CallbackUpdateOrderStatus, ID: order.ID, Status: next}.Button(statusButtonLabels[next]))
	}
	kb.AddRow(
		cb(CallbackPendingOrders).Button("📋 Back to Orders"),
		cb(CallbackMainMenu).Button("🏠 Main Menu"),
	)
	return b.build("order_details", kb)
}

// BankAccountsPanel builds the admin bank account menu.
func (b *Builder) BankAccountsPanel() *telebot.ReplyMarkup {
	kb := NewInlineKeyboard().
		AddRow(cb(CallbackViewBankAccounts).Button("💳 View Bank Accounts")).
		AddRow(cb(CallbackAddBankAccount).Button("➕ Add Bank Account")).
		AddRow(cb(CallbackMainMenu).Button("🏠 Back to Menu"))
	return b.build("bank_accounts_panel", kb)
}

// BankAccountList builds toggle and delete buttons per account.
func (b *Builder) BankAccountList(accounts []domain.BankAccount) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	for _, account := range accounts {
		label := "✅ Activate " + account.BankName
		if account.IsActive {
			label = "❌ Deactivate " + account.BankName
		}
		kb.AddRow(
			Callback{Kind: CallbackToggleBankAccount, ID: account.ID}.Button(label),
			Callback{Kind: CallbackDeleteBankAccount, ID: account.ID}.Button("🗑️ Delete"),
		)
	}
	kb.AddRow(cb(CallbackMainMenu).Button("🏠 Back to Menu"))
	return b.build("bank_account_list", kb)
}
