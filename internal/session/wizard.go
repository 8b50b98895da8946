package session

import (
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Kind names a multi-step form.
type Kind int

const (
	KindNone Kind = iota
	KindAddProduct
	KindAddBankAccount
)

func (k Kind) String() string {
	switch k {
	case KindAddProduct:
		return "add_product"
	case KindAddBankAccount:
		return "add_bank_account"
	default:
		return "none"
	}
}

// Outcome is the result of feeding one message to a wizard: Prompt, Complete or Rejected.
type Outcome interface {
	outcome()
}

// Prompt asks for the next field.
type Prompt struct {
	Text string
}

// Complete carries the finished draft: ProductDraft or BankAccountDraft.
type Complete struct {
	Draft any
}

// Rejected means the input failed validation. The wizard stays on the same step.
type Rejected struct {
	Reason string
}

func (Prompt) outcome()   {}
func (Complete) outcome() {}
func (Rejected) outcome() {}

// ProductDraft is a finished add-product form.
type ProductDraft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// BankAccountDraft is a finished add-bank-account form.
type BankAccountDraft struct {
	BankName          string
	AccountNumber     string
	AccountHolderName string
}

const (
	promptProductName        = "Please enter the product name."
	promptProductDescription = "Please enter the product description."
	promptProductPrice       = "Please enter the product price."
	promptProductImage       = "Please enter the product image URL."
	promptBankName           = "Please enter the bank name (e.g., BCA, Mandiri, BNI)."
	promptAccountNumber      = "Please enter the account number."
	promptAccountHolder      = "Please enter the account holder name."

	rejectEmpty    = "Please enter a value (up to 255 characters)."
	rejectPrice    = "Invalid price. Please enter a number."
	rejectNegative = "Invalid price. The price cannot be negative."
	rejectImageURL = "Invalid image URL. Please enter a full link, e.g. https://example.com/image.jpg."
)

// step is one position of a wizard. Each step type holds only the fields collected before it.
type step interface {
	kind() Kind
	advance(v *validator.Validate, text string) (step, Outcome)
}

func firstStep(kind Kind) (step, string, bool) {
	switch kind {
	case KindAddProduct:
		return productName{}, promptProductName, true
	case KindAddBankAccount:
		return bankName{}, promptBankName, true
	default:
		return nil, "", false
	}
}

func textField(v *validator.Validate, text string) (string, bool) {
	value := strings.TrimSpace(text)
	if err := v.Var(value, "required,max=255"); err != nil {
		return "", false
	}
	return value, true
}

type productName struct{}

func (productName) kind() Kind { return KindAddProduct }

func (s productName) advance(v *validator.Validate, text string) (step, Outcome) {
	name, ok := textField(v, text)
	if !ok {
		return s, Rejected{Reason: rejectEmpty}
	}
	return productDescription{name: name}, Prompt{Text: promptProductDescription}
}

type productDescription struct {
	name string
}

func (productDescription) kind() Kind { return KindAddProduct }

func (s productDescription) advance(v *validator.Validate, text string) (step, Outcome) {
	description := strings.TrimSpace(text)
	if err := v.Var(description, "required,max=2000"); err != nil {
		return s, Rejected{Reason: rejectEmpty}
	}
	return productPrice{name: s.name, description: description}, Prompt{Text: promptProductPrice}
}

type productPrice struct {
	name        string
	description string
}

func (productPrice) kind() Kind { return KindAddProduct }

func (s productPrice) advance(_ *validator.Validate, text string) (step, Outcome) {
	price, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return s, Rejected{Reason: rejectPrice}
	}
	if price.IsNegative() {
		return s, Rejected{Reason: rejectNegative}
	}
	return productImage{name: s.name, description: s.description, price: price}, Prompt{Text: promptProductImage}
}

type productImage struct {
	name        string
	description string
	price       decimal.Decimal
}

func (productImage) kind() Kind { return KindAddProduct }

func (s productImage) advance(v *validator.Validate, text string) (step, Outcome) {
	imageURL := strings.TrimSpace(text)
	if err := v.Var(imageURL, "required,url"); err != nil {
		return s, Rejected{Reason: rejectImageURL}
	}
	return nil, Complete{Draft: ProductDraft{
		Name:        s.name,
		Description: s.description,
		Price:       s.price,
		ImageURL:    imageURL,
	}}
}

type bankName struct{}

func (bankName) kind() Kind { return KindAddBankAccount }

func (s bankName) advance(v *validator.Validate, text string) (step, Outcome) {
	name, ok := textField(v, text)
	if !ok {
		return s, Rejected{Reason: rejectEmpty}
	}
	return bankAccountNumber{bankName: name}, Prompt{Text: promptAccountNumber}
}

type bankAccountNumber struct {
	bankName string
}

func (bankAccountNumber) kind() Kind { return KindAddBankAccount }

func (s bankAccountNumber) advance(v *validator.Validate, text string) (step, Outcome) {
	number, ok := textField(v, text)
	if !ok {
		return s, Rejected{Reason: rejectEmpty}
	}
	return bankAccountHolder{bankName: s.bankName, accountNumber: number}, Prompt{Text: promptAccountHolder}
}

type bankAccountHolder struct {
	bankName      string
	accountNumber string
}

func (bankAccountHolder) kind() Kind { return KindAddBankAccount }

func (s bankAccountHolder) advance(v *validator.Validate, text string) (step, Outcome) {
	holder, ok := textField(v, text)
	if !ok {
		return s, Rejected{Reason: rejectEmpty}
	}
	return nil, Complete{Draft: BankAccountDraft{
		BankName:          s.bankName,
		AccountNumber:     s.accountNumber,
		AccountHolderName: holder,
	}}
}
