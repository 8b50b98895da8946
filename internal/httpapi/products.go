package httpapi

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Proton-105/warung-bot/internal/domain"
)

type productRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
}

func (req productRequest) apply(p *domain.Product) {
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.ImageURL = req.ImageURL
}

func (a *api) decodeProduct(w http.ResponseWriter, r *http.Request) (productRequest, bool) {
	var req productRequest
	if !a.decode(w, r, &req) {
		return req, false
	}
	if req.Price.IsNegative() {
		writeError(w, http.StatusUnprocessableEntity, "price must not be negative")
		return req, false
	}
	return req, true
}

func (a *api) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.store.ListProducts(r.Context())
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (a *api) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	product, err := a.store.FindProductByID(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (a *api) createProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeProduct(w, r)
	if !ok {
		return
	}

	var product domain.Product
	req.apply(&product)
	if err := a.store.CreateProduct(r.Context(), &product); err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (a *api) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	req, ok := a.decodeProduct(w, r)
	if !ok {
		return
	}

	product := domain.Product{ID: id}
	req.apply(&product)
	if err := a.store.UpdateProduct(r.Context(), &product); err != nil {
		a.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (a *api) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := a.store.DeleteProduct(r.Context(), id); err != nil {
		a.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
