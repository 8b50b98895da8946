package httpapi

import (
	"net/http"

	"github.com/Proton-105/warung-bot/internal/domain"
)

type bankAccountRequest struct {
	BankName          string `json:"bank_name" validate:"required,max=100"`
	AccountNumber     string `json:"account_number" validate:"required,max=50"`
	AccountHolderName string `json:"account_holder_name" validate:"required,max=255"`
	// IsActive defaults to true on create when omitted.
	IsActive *bool `json:"is_active"`
}

func (req bankAccountRequest) apply(acc *domain.BankAccount) {
	acc.BankName = req.BankName
	acc.AccountNumber = req.AccountNumber
	acc.AccountHolderName = req.AccountHolderName
	if req.IsActive != nil {
		acc.IsActive = *req.IsActive
	}
}

func (a *api) listBankAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := a.store.ListBankAccounts(r.Context())
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (a *api) getBankAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	account, err := a.store.FindBankAccountByID(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (a *api) createBankAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountRequest
	if !a.decode(w, r, &req) {
		return
	}

	account := domain.BankAccount{IsActive: true}
	req.apply(&account)
	if err := a.store.CreateBankAccount(r.Context(), &account); err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (a *api) updateBankAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req bankAccountRequest
	if !a.decode(w, r, &req) {
		return
	}

	account, err := a.store.FindBankAccountByID(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	req.apply(account)
	if err := a.store.UpdateBankAccount(r.Context(), account); err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (a *api) toggleBankAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	account, err := a.store.ToggleBankAccount(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (a *api) deleteBankAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := a.store.DeleteBankAccount(r.Context(), id); err != nil {
		a.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
