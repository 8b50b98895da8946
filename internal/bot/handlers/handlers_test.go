package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/cart"
	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/order"
	"github.com/Proton-105/warung-bot/internal/repository/memory"
	"github.com/Proton-105/warung-bot/internal/session"
	"github.com/Proton-105/warung-bot/internal/user"
	"github.com/Proton-105/warung-bot/pkg/config"
	"github.com/Proton-105/warung-bot/pkg/money"
)

const (
	adminID    int64 = 1000
	customerID int64 = 2000
)

type sent struct {
	chatID int64
	text   string
	photo  string
	opts   []any
}

type recordingMessenger struct {
	mu      sync.Mutex
	sent    []sent
	answers []string
	pushes  []sent
}

func (m *recordingMessenger) SendText(_ context.Context, chatID int64, text string, opts ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sent{chatID: chatID, text: text, opts: opts})
	return nil
}

func (m *recordingMessenger) SendPhoto(_ context.Context, chatID int64, photoURL, caption string, opts ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sent{chatID: chatID, text: caption, photo: photoURL, opts: opts})
	return nil
}

func (m *recordingMessenger) AnswerCallback(_ context.Context, _ string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, text)
	return nil
}

func (m *recordingMessenger) PushText(_ context.Context, telegramID int64, text string, _ ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushes = append(m.pushes, sent{chatID: telegramID, text: text})
	return nil
}

func (m *recordingMessenger) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.text)
	}
	return out
}

func (m *recordingMessenger) lastText() string {
	texts := m.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

type fixture struct {
	h         *Handlers
	messenger *recordingMessenger
	store     *memory.Store
	carts     *cart.Store
	sessions  *session.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	require.NoError(t, store.CreateUser(context.Background(), &domain.User{TelegramID: adminID, FirstName: "Super", Role: domain.RoleAdmin}))

	f := &fixture{
		messenger: &recordingMessenger{},
		store:     store,
		carts:     cart.NewStore(),
		sessions:  session.NewEngine(),
	}
	f.h = New(Deps{
		Messenger: f.messenger,
		Sessions:  f.sessions,
		Carts:     f.carts,
		Orders:    order.NewService(store, nil, log),
		Users:     user.NewService(store, log),
		Store:     store,
		Money:     money.NewFormatter(config.CurrencyConfig{Symbol: "Rp", Locale: "id-ID"}),
		Log:       log,
	})
	return f
}

func (f *fixture) product(t *testing.T, name, price string) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Description: name + " description", Price: decimal.RequireFromString(price)}
	require.NoError(t, f.store.CreateProduct(context.Background(), p))
	return p
}

func callback(sender int64, cb keyboard.Callback) *Event {
	return &Event{
		Kind:       EventCallback,
		SenderID:   sender,
		ChatID:     sender,
		Sender:     user.Profile{TelegramID: sender, FirstName: "Ayu", Username: "ayu"},
		CallbackID: fmt.Sprintf("cb-%d", sender),
		Callback:   cb,
	}
}

func command(sender int64, name string) *Event {
	return &Event{Kind: EventCommand, SenderID: sender, ChatID: sender, Command: name, Text: name}
}

func text(sender int64, body string) *Event {
	return &Event{Kind: EventText, SenderID: sender, ChatID: sender, Text: body}
}

func TestCheckout_CreatesPendingOrderAndClearsCart(t *testing.T) {
	tests := []struct {
		name        string
		withAccount bool
		want        string
	}{
		{name: "with active bank account", withAccount: true, want: "<b>BCA</b>"},
		{name: "without bank accounts", want: "<i>Payment details will be provided by admin.</i>"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			if tc.withAccount {
				require.NoError(t, f.store.CreateBankAccount(ctx, &domain.BankAccount{
					BankName: "BCA", AccountNumber: "123", AccountHolderName: "Warung", IsActive: true,
				}))
			}

			p1 := f.product(t, "Kopi", "10.0")
			p2 := f.product(t, "Teh", "5.0")
			f.carts.Add(customerID, *p1)
			f.carts.Add(customerID, *p2)

			require.NoError(t, f.h.Checkout(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCheckout})))

			assert.Empty(t, f.carts.Items(customerID))

			customer, err := f.store.FindUserByTelegramID(ctx, customerID)
			require.NoError(t, err)
			assert.Equal(t, domain.RoleCustomer, customer.Role)

			orders, err := f.store.ListOrdersByUser(ctx, customer.ID)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.True(t, decimal.NewFromInt(15).Equal(orders[0].Total))
			assert.Equal(t, domain.OrderPending, orders[0].Status)

			texts := f.messenger.texts()
			require.GreaterOrEqual(t, len(texts), 2)
			confirmation := texts[len(texts)-2]
			assert.Contains(t, confirmation, "Order created successfully!")
			assert.Contains(t, confirmation, "Total: Rp 15")
			assert.Contains(t, confirmation, tc.want)
			assert.Equal(t, welcomeText, f.messenger.lastText())
		})
	}
}

func TestCheckout_UsesSnapshotPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Kopi", "10.0")
	f.carts.Add(customerID, *p)

	p.Price = decimal.NewFromInt(99)
	require.NoError(t, f.store.UpdateProduct(ctx, p))

	require.NoError(t, f.h.Checkout(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCheckout})))

	orders, err := f.store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(orders[0].Total))
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.h.Checkout(context.Background(), callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCheckout})))

	assert.Equal(t, []string{emptyCartText}, f.messenger.texts())
	orders, err := f.store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_EscapesAccountDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, account := range []*domain.BankAccount{
		{BankName: "BCA_Syariah", AccountNumber: "<12&34>", AccountHolderName: "Toko *Maju*", IsActive: true},
		{BankName: "Bank*Jago", AccountNumber: "5678", AccountHolderName: "Warung_Ayu", IsActive: true},
	} {
		require.NoError(t, f.store.CreateBankAccount(ctx, account))
	}

	p := f.product(t, "Kopi", "10.0")
	f.carts.Add(customerID, *p)

	require.NoError(t, f.h.Checkout(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCheckout})))

	f.messenger.mu.Lock()
	defer f.messenger.mu.Unlock()
	require.GreaterOrEqual(t, len(f.messenger.sent), 2)
	confirmation := f.messenger.sent[len(f.messenger.sent)-2]

	assert.Contains(t, confirmation.opts, telebot.ModeHTML)
	assert.Contains(t, confirmation.text, "<b>BCA_Syariah</b>")
	assert.Contains(t, confirmation.text, "<b>Bank*Jago</b>")
	assert.Contains(t, confirmation.text, "Account: &lt;12&amp;34&gt;")
	assert.Contains(t, confirmation.text, "Name: Toko *Maju*")
	assert.Contains(t, confirmation.text, "Name: Warung_Ayu")
	assert.NotContains(t, confirmation.text, `\_`)
}

func TestCheckout_ConcurrentTapsCreateOneOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.product(t, "Kopi", "10.0")
	p2 := f.product(t, "Teh", "5.0")
	f.carts.Add(customerID, *p1)
	f.carts.Add(customerID, *p2)

	const taps = 2
	var wg sync.WaitGroup
	errs := make([]error, taps)
	for i := 0; i < taps; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.h.Checkout(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCheckout}))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	orders, err := f.store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, decimal.NewFromInt(15).Equal(orders[0].Total))
	assert.Empty(t, f.carts.Items(customerID))

	empty := 0
	for _, body := range f.messenger.texts() {
		if body == emptyCartText {
			empty++
		}
	}
	assert.Equal(t, 1, empty)
}

func TestShowCart_EscapesNamesAndTotals(t *testing.T) {
	f := newFixture(t)

	f.carts.Add(customerID, *f.product(t, "Kopi_Susu <Gula>", "10.0"))
	f.carts.Add(customerID, *f.product(t, "Teh*Manis", "2.5"))

	require.NoError(t, f.h.ShowCart(context.Background(), callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCart})))

	body := f.messenger.lastText()
	assert.Contains(t, body, "1. Kopi_Susu &lt;Gula&gt; - ")
	assert.Contains(t, body, "2. Teh*Manis - ")
	assert.Contains(t, body, "<b>Total: "+f.h.money.Format(f.carts.Total(customerID))+"</b>")
}

func TestAddToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Kopi", "10.0")

	ev := callback(customerID, keyboard.Callback{Kind: keyboard.CallbackAddToCart, ID: p.ID})
	require.NoError(t, f.h.AddToCart(ctx, ev))
	assert.True(t, ev.Answered())

	require.NoError(t, f.h.AddToCart(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackAddToCart, ID: p.ID})))
	require.NoError(t, f.h.AddToCart(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackAddToCart, ID: 999})))

	assert.Equal(t, []string{"Added to cart!", "Product already in cart", "Product not found"}, f.messenger.answers)
	assert.Len(t, f.carts.Items(customerID), 1)
	assert.Contains(t, f.messenger.lastText(), "<b>Total: Rp 10</b>")
}

func TestRemoveFromCart(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Kopi", "10.0")
	f.carts.Add(customerID, *p)

	require.NoError(t, f.h.RemoveFromCart(context.Background(), callback(customerID, keyboard.Callback{Kind: keyboard.CallbackRemoveFromCart, ID: p.ID})))

	assert.Equal(t, []string{"Removed from cart"}, f.messenger.answers)
	assert.Equal(t, emptyCartText, f.messenger.lastText())
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.Catalog(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCatalog})))
	assert.Equal(t, []string{"Our catalog is empty at the moment."}, f.messenger.texts())

	withImage := &domain.Product{Name: "Kopi_Susu", Price: decimal.NewFromInt(12000), ImageURL: "http://x/kopi.jpg"}
	require.NoError(t, f.store.CreateProduct(ctx, withImage))
	f.product(t, "Teh", "5000")

	require.NoError(t, f.h.Catalog(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackCatalog})))

	f.messenger.mu.Lock()
	defer f.messenger.mu.Unlock()
	require.Len(t, f.messenger.sent, 4)
	assert.Equal(t, "http://x/kopi.jpg", f.messenger.sent[2].photo)
	assert.Contains(t, f.messenger.sent[2].text, "<b>Kopi_Susu</b>")
	assert.Contains(t, f.messenger.sent[2].opts, telebot.ModeHTML)
	assert.Contains(t, f.messenger.sent[2].text, "Price: Rp 12.000")
	assert.Empty(t, f.messenger.sent[3].photo)
}

func TestAdminHandlers_DenyCustomers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account := &domain.BankAccount{BankName: "BCA", AccountNumber: "1", AccountHolderName: "W", IsActive: true}
	require.NoError(t, f.store.CreateBankAccount(ctx, account))
	require.NoError(t, f.store.CreateUser(ctx, &domain.User{TelegramID: customerID, FirstName: "Ayu", Role: domain.RoleCustomer}))
	o := &domain.Order{UserID: 1, Status: domain.OrderPending}
	require.NoError(t, f.store.CreateOrder(ctx, o))

	callbacks := []struct {
		name    string
		handler Handler
		cb      keyboard.Callback
	}{
		{"toggle bank account", f.h.ToggleBankAccount, keyboard.Callback{Kind: keyboard.CallbackToggleBankAccount, ID: account.ID}},
		{"delete bank account", f.h.DeleteBankAccount, keyboard.Callback{Kind: keyboard.CallbackDeleteBankAccount, ID: account.ID}},
		{"update order status", f.h.UpdateOrderStatus, keyboard.Callback{Kind: keyboard.CallbackUpdateOrderStatus, ID: o.ID, Status: domain.OrderPaid}},
		{"view order", f.h.ViewOrder, keyboard.Callback{Kind: keyboard.CallbackViewOrder, ID: o.ID}},
		{"all orders", f.h.AllOrders, keyboard.Callback{Kind: keyboard.CallbackAllOrders, Page: 1}},
		{"add bank account", f.h.AddBankAccount, keyboard.Callback{Kind: keyboard.CallbackAddBankAccount}},
	}

	for _, tc := range callbacks {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			before := len(f.messenger.answers)
			require.NoError(t, tc.handler(ctx, callback(customerID, tc.cb)))
			require.Len(t, f.messenger.answers, before+1)
			assert.Equal(t, "You don't have permission to do that.", f.messenger.answers[before])
		})
	}

	for _, name := range []string{"/addproduct", "/manageorders", "/bankaccounts", "/addbankaccount"} {
		name := name
		t.Run(name+" by unknown user", func(t *testing.T) {
			handlers := map[string]Handler{
				"/addproduct":     f.h.AddProduct,
				"/manageorders":   f.h.ManageOrders,
				"/bankaccounts":   f.h.BankAccounts,
				"/addbankaccount": f.h.AddBankAccount,
			}
			require.NoError(t, handlers[name](ctx, command(7777, name)))
			assert.Equal(t, "You don't have permission to do that.", f.messenger.lastText())
		})
	}

	stored, err := f.store.FindBankAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	storedOrder, err := f.store.FindOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, storedOrder.Status)

	assert.Equal(t, 0, f.sessions.Count())
}

func TestAddProductForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.AddProduct(ctx, command(adminID, "/addproduct")))
	assert.Equal(t, "Please enter the product name.", f.messenger.lastText())

	for _, input := range []string{"Widget", "A nice widget", "abc"} {
		require.NoError(t, f.h.SessionText(ctx, text(adminID, input)))
	}
	assert.Equal(t, "Invalid price. Please enter a number.", f.messenger.lastText())

	for _, input := range []string{"19.99", "http://x/img.jpg"} {
		require.NoError(t, f.h.SessionText(ctx, text(adminID, input)))
	}
	assert.Equal(t, "Product added successfully!", f.messenger.lastText())

	products, err := f.store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.True(t, decimal.RequireFromString("19.99").Equal(products[0].Price))

	_, open := f.sessions.Current(adminID)
	assert.False(t, open)
}

func TestAddProductForm_RoleRevokedBeforeSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.AddProduct(ctx, command(adminID, "/addproduct")))
	for _, input := range []string{"Widget", "A nice widget", "19.99"} {
		require.NoError(t, f.h.SessionText(ctx, text(adminID, input)))
	}

	admin, err := f.store.FindUserByTelegramID(ctx, adminID)
	require.NoError(t, err)
	admin.Role = domain.RoleCustomer
	require.NoError(t, f.store.UpdateUser(ctx, admin))

	require.NoError(t, f.h.SessionText(ctx, text(adminID, "http://x/img.jpg")))
	assert.Equal(t, "You don't have permission to do that.", f.messenger.lastText())

	products, err := f.store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	_, open := f.sessions.Current(adminID)
	assert.False(t, open)
}

func TestAddBankAccountForm_ShowsPanelAfterwards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.AddBankAccount(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackAddBankAccount})))
	for _, input := range []string{"BCA", "1234567890", "Toko Warung"} {
		require.NoError(t, f.h.SessionText(ctx, text(adminID, input)))
	}

	texts := f.messenger.texts()
	require.GreaterOrEqual(t, len(texts), 2)
	assert.Equal(t, "Bank account added successfully!", texts[len(texts)-2])
	assert.Contains(t, f.messenger.lastText(), "Bank Account Management")

	accounts, err := f.store.ListActiveBankAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Toko Warung", accounts[0].AccountHolderName)
}

func TestBeginForm_ReplacesOpenForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.AddProduct(ctx, command(adminID, "/addproduct")))
	require.NoError(t, f.h.SessionText(ctx, text(adminID, "Widget")))
	require.NoError(t, f.h.AddBankAccount(ctx, command(adminID, "/addbankaccount")))

	texts := f.messenger.texts()
	assert.Equal(t, "Your previous form was discarded.", texts[len(texts)-2])
	kind, _ := f.sessions.Current(adminID)
	assert.Equal(t, session.KindAddBankAccount, kind)
}

func TestSessionText_WithoutFormIsIgnored(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.h.SessionText(context.Background(), text(customerID, "hello")))
	assert.Empty(t, f.messenger.texts())
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.AddProduct(ctx, command(adminID, "/addproduct")))
	require.NoError(t, f.h.Cancel(ctx, command(adminID, "/cancel")))

	texts := f.messenger.texts()
	assert.Equal(t, "Operation cancelled. Returning to main menu.", texts[len(texts)-2])
	assert.Equal(t, 0, f.sessions.Count())
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := &domain.Order{UserID: 1, Status: domain.OrderPending, Total: decimal.NewFromInt(15)}
	require.NoError(t, f.store.CreateOrder(ctx, o))

	require.NoError(t, f.h.UpdateOrderStatus(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackUpdateOrderStatus, ID: o.ID, Status: domain.OrderShipped})))
	require.NoError(t, f.h.UpdateOrderStatus(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackUpdateOrderStatus, ID: o.ID, Status: domain.OrderPaid})))
	require.NoError(t, f.h.UpdateOrderStatus(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackUpdateOrderStatus, ID: 404, Status: domain.OrderPaid})))

	assert.Equal(t, []string{"Failed to update order", "Order status updated to paid", "Order not found"}, f.messenger.answers)
	assert.Contains(t, f.messenger.lastText(), "📋 Status: PAID")

	stored, err := f.store.FindOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, stored.Status)
}

func TestAllOrders_Paginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, f.store.CreateOrder(ctx, &domain.Order{UserID: 1, Status: domain.OrderPending}))
	}

	require.NoError(t, f.h.AllOrders(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackAllOrders, Page: 2})))

	body := f.messenger.lastText()
	assert.Equal(t, 2, strings.Count(body, "Order #"))
	assert.Contains(t, body, "Page 2 of 2")
}

func TestMyOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.MyOrders(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackMyOrders})))
	assert.Equal(t, "Please place an order first.", f.messenger.lastText())

	customer := &domain.User{TelegramID: customerID, FirstName: "Ayu", Role: domain.RoleCustomer}
	require.NoError(t, f.store.CreateUser(ctx, customer))

	require.NoError(t, f.h.MyOrders(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackMyOrders})))
	assert.Equal(t, "You have no orders yet.", f.messenger.lastText())

	require.NoError(t, f.store.CreateOrder(ctx, &domain.Order{UserID: customer.ID, Status: domain.OrderPaid, Total: decimal.NewFromInt(15000)}))
	require.NoError(t, f.h.MyOrders(ctx, callback(customerID, keyboard.Callback{Kind: keyboard.CallbackMyOrders})))
	assert.Contains(t, f.messenger.lastText(), "Total: Rp 15.000")
}

func TestToggleAndDeleteBankAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account := &domain.BankAccount{BankName: "BCA", AccountNumber: "1", AccountHolderName: "W", IsActive: true}
	require.NoError(t, f.store.CreateBankAccount(ctx, account))

	require.NoError(t, f.h.ToggleBankAccount(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackToggleBankAccount, ID: account.ID})))
	assert.Contains(t, f.messenger.lastText(), "❌ Inactive")

	require.NoError(t, f.h.DeleteBankAccount(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackDeleteBankAccount, ID: account.ID})))
	require.NoError(t, f.h.DeleteBankAccount(ctx, callback(adminID, keyboard.Callback{Kind: keyboard.CallbackDeleteBankAccount, ID: account.ID})))

	assert.Equal(t, []string{"Bank account deactivated", "Bank account deleted", "Bank account not found"}, f.messenger.answers)
	assert.Equal(t, "No bank accounts found.", f.messenger.lastText())
}
