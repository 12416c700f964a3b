package models

// IncomeCategory tags an entry. Unknown tags are accepted and displayed raw.
type IncomeCategory string

const (
	IncomeSalary    IncomeCategory = "salario"
	IncomeFreelance IncomeCategory = "freelance"
	IncomeReturns   IncomeCategory = "rendimentos"
	IncomeSavings   IncomeCategory = "poupanca"
	IncomeExtraWork IncomeCategory = "extra"
)

var incomeCategoryLabels = map[IncomeCategory]string{
	IncomeSalary:    "Salário",
	IncomeFreelance: "Freelance",
	IncomeReturns:   "Rendimentos",
	IncomeSavings:   "Poupança",
	IncomeExtraWork: "Trabalhos Extras",
}

func (c IncomeCategory) Label() string { return labelOr(incomeCategoryLabels, c) }

// ReceiptMethod tags how an entry was received.
type ReceiptMethod string

const (
	ReceiptCash     ReceiptMethod = "dinheiro"
	ReceiptPix      ReceiptMethod = "pix"
	ReceiptTransfer ReceiptMethod = "transferencia"
	ReceiptCheque   ReceiptMethod = "cheque"
)

var receiptMethodLabels = map[ReceiptMethod]string{
	ReceiptCash:     "Dinheiro",
	ReceiptPix:      "PIX",
	ReceiptTransfer: "Transferência",
	ReceiptCheque:   "Cheque",
}

func (m ReceiptMethod) Label() string { return labelOr(receiptMethodLabels, m) }

// ExpenseCategory tags an expense. Unknown tags are accepted and displayed raw.
type ExpenseCategory string

const (
	ExpenseShopping  ExpenseCategory = "compras"
	ExpensePharmacy  ExpenseCategory = "farmacia"
	ExpenseEducation ExpenseCategory = "educacao"
	ExpenseLeisure   ExpenseCategory = "lazer"
	ExpenseGym       ExpenseCategory = "academia"
	ExpenseTransport ExpenseCategory = "transporte"
	ExpenseFood      ExpenseCategory = "alimentacao"
)

var expenseCategoryLabels = map[ExpenseCategory]string{
	ExpenseShopping:  "Compras",
	ExpensePharmacy:  "Farmácia",
	ExpenseEducation: "Educação",
	ExpenseLeisure:   "Lazer",
	ExpenseGym:       "Academia",
	ExpenseTransport: "Transporte",
	ExpenseFood:      "Alimentação",
}

func (c ExpenseCategory) Label() string { return labelOr(expenseCategoryLabels, c) }

// PaymentMethod is closed: credit drives installment generation, so unknown
// values are rejected.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentPix    PaymentMethod = "pix"
	PaymentDebit  PaymentMethod = "debito"
	PaymentCredit PaymentMethod = "credito"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentCash:   "Dinheiro",
	PaymentPix:    "PIX",
	PaymentDebit:  "Cartão de Débito",
	PaymentCredit: "Cartão de Crédito",
}

func (m PaymentMethod) Label() string { return labelOr(paymentMethodLabels, m) }

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// CardNetwork tags a card's brand.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkElo        CardNetwork = "elo"
	NetworkAmex       CardNetwork = "american"
)

var cardNetworkLabels = map[CardNetwork]string{
	NetworkVisa:       "Visa",
	NetworkMastercard: "MasterCard",
	NetworkElo:        "Elo",
	NetworkAmex:       "American Express",
}

func (n CardNetwork) Label() string { return labelOr(cardNetworkLabels, n) }

// CategoryLabel renders any income or expense tag, falling back to the raw
// tag. Dashboard groupings mix both kinds.
func CategoryLabel(tag string) string {
	if l, ok := incomeCategoryLabels[IncomeCategory(tag)]; ok {
		return l
	}
	if l, ok := expenseCategoryLabels[ExpenseCategory(tag)]; ok {
		return l
	}
	return tag
}

// LabelTables exposes every display mapping keyed by enum name.
func LabelTables() map[string]map[string]string {
	return map[string]map[string]string{
		"tipo_entrada":      stringKeys(incomeCategoryLabels),
		"forma_recebimento": stringKeys(receiptMethodLabels),
		"tipo_despesa":      stringKeys(expenseCategoryLabels),
		"tipo_pagamento":    stringKeys(paymentMethodLabels),
		"bandeira":          stringKeys(cardNetworkLabels),
	}
}

func labelOr[K ~string](labels map[K]string, key K) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return string(key)
}

func stringKeys[K ~string](labels map[K]string) map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[string(k)] = v
	}
	return out
}
