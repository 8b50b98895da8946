package bot

import (
	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
)

// Command constants for Telegram bot commands.
const (
	CommandStart          = "/start"
	CommandAddProduct     = "/addproduct"
	CommandManageOrders   = "/manageorders"
	CommandBankAccounts   = "/bankaccounts"
	CommandAddBankAccount = "/addbankaccount"
	CommandCancel         = "/cancel"
)

// RegisterRoutes binds every command, button and form input to its handler.
func RegisterRoutes(r *Router, h *handlers.Handlers) {
	r.RegisterCommand(CommandStart, h.Start)
	r.RegisterCommand(CommandAddProduct, h.AddProduct)
	r.RegisterCommand(CommandManageOrders, h.ManageOrders)
	r.RegisterCommand(CommandBankAccounts, h.BankAccounts)
	r.RegisterCommand(CommandAddBankAccount, h.AddBankAccount)
	r.RegisterCommand(CommandCancel, h.Cancel)

	r.RegisterCallback(keyboard.CallbackMainMenu, h.Start)
	r.RegisterCallback(keyboard.CallbackCatalog, h.Catalog)
	r.RegisterCallback(keyboard.CallbackCart, h.ShowCart)
	r.RegisterCallback(keyboard.CallbackMyOrders, h.MyOrders)
	r.RegisterCallback(keyboard.CallbackCheckout, h.Checkout)
	r.RegisterCallback(keyboard.CallbackAddToCart, h.AddToCart)
	r.RegisterCallback(keyboard.CallbackRemoveFromCart, h.RemoveFromCart)
	r.RegisterCallback(keyboard.CallbackManageOrders, h.ManageOrders)
	r.RegisterCallback(keyboard.CallbackPendingOrders, h.PendingOrders)
	r.RegisterCallback(keyboard.CallbackAllOrders, h.AllOrders)
	r.RegisterCallback(keyboard.CallbackViewOrder, h.ViewOrder)
	r.RegisterCallback(keyboard.CallbackUpdateOrderStatus, h.UpdateOrderStatus)
	r.RegisterCallback(keyboard.CallbackBankAccounts, h.BankAccounts)
	r.RegisterCallback(keyboard.CallbackViewBankAccounts, h.ViewBankAccounts)
	r.RegisterCallback(keyboard.CallbackAddBankAccount, h.AddBankAccount)
	r.RegisterCallback(keyboard.CallbackToggleBankAccount, h.ToggleBankAccount)
	r.RegisterCallback(keyboard.CallbackDeleteBankAccount, h.DeleteBankAccount)

	r.SetSessionHandler(h.SessionText)
}
