// Package bank is an in-memory banking simulator.
//
// Customers and accounts live in an arena keyed by identifier; relations are
// identifier references resolved through the Bank, never pointers between
// entities. Nothing is persisted.
package bank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrBalanceOverflow   = errors.New("amount would exceed the maximum balance")
)

// Kind is the direction of a transaction.
type Kind string

const (
	Credit Kind = "Credit"
	Debit  Kind = "Debit"
)

// Customer owns zero or more accounts.
type Customer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Phone      string   `json:"phone"`
	AccountIDs []string `json:"account_ids"`
}

// Account is a balance with its transaction log.
type Account struct {
	Number       string        `json:"number"`
	Type         string        `json:"type"`
	OwnerID      string        `json:"owner_id"`
	Balance      Money         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction is one balance change on an account.
type Transaction struct {
	ID          string    `json:"id"`
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Amount      Money     `json:"amount"`
	Kind        Kind      `json:"kind"`
}

// Bank is the arena holding every customer and account.
type Bank struct {
	customers     map[string]*Customer
	customerOrder []string
	accounts      map[string]*Account
	accountOrder  []string

	customerSeq *Sequence
	accountSeq  *Sequence
	now         func() time.Time
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock sets the time source used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// WithSequences replaces the customer and account id generators.
func WithSequences(customers, accounts *Sequence) Option {
	return func(b *Bank) {
		b.customerSeq = customers
		b.accountSeq = accounts
	}
}

// New returns an empty Bank. Customer ids start at CUST1000, account numbers at ACCT100000.
func New(opts ...Option) *Bank {
	b := &Bank{
		customers:   make(map[string]*Customer),
		accounts:    make(map[string]*Account),
		customerSeq: NewSequence("CUST", 1000),
		accountSeq:  NewSequence("ACCT", 100000),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateCustomer registers a customer and returns it.
func (b *Bank) CreateCustomer(name, address, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	c := &Customer{
		ID:      b.customerSeq.Next(),
		Name:    name,
		Address: strings.TrimSpace(address),
		Phone:   strings.TrimSpace(phone),
	}
	b.customers[c.ID] = c
	b.customerOrder = append(b.customerOrder, c.ID)
	return c.snapshot(), nil
}

// OpenAccount opens a zero-balance account for an existing customer.
func (b *Bank) OpenAccount(customerID, accountType string) (Account, error) {
	c, ok := b.customers[customerID]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	accountType = strings.TrimSpace(accountType)
	if accountType == "" {
		return Account{}, fmt.Errorf("%w: account type is required", ErrInvalidInput)
	}

	a := &Account{
		Number:  b.accountSeq.Next(),
		Type:    accountType,
		OwnerID: c.ID,
	}
	b.accounts[a.Number] = a
	b.accountOrder = append(b.accountOrder, a.Number)
	c.AccountIDs = append(c.AccountIDs, a.Number)
	return a.snapshot(), nil
}

// Deposit credits amount and returns the new balance.
func (b *Bank) Deposit(number string, amount Money, description string) (Money, error) {
	a, err := b.account(number)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if a.Balance > MaxMoney-amount {
		return 0, ErrBalanceOverflow
	}
	if description == "" {
		description = "Deposit"
	}
	b.record(a, amount, Credit, description)
	return a.Balance, nil
}

// Withdraw debits amount and returns the new balance.
func (b *Bank) Withdraw(number string, amount Money, description string) (Money, error) {
	a, err := b.account(number)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if a.Balance < amount {
		return 0, ErrInsufficientFunds
	}
	if description == "" {
		description = "Withdrawal"
	}
	b.record(a, amount, Debit, description)
	return a.Balance, nil
}

// Transfer moves amount between two accounts. Either both sides are recorded or neither.
func (b *Bank) Transfer(from, to string, amount Money) error {
	src, err := b.account(from)
	if err != nil {
		return err
	}
	dst, err := b.account(to)
	if err != nil {
		return err
	}
	if src.Number == dst.Number {
		return ErrSameAccount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}
	if dst.Balance > MaxMoney-amount {
		return ErrBalanceOverflow
	}

	b.record(src, amount, Debit, "Transfer to "+dst.Number)
	b.record(dst, amount, Credit, "Transfer from "+src.Number)
	return nil
}

// Customer returns the customer with id.
func (b *Bank) Customer(id string) (Customer, error) {
	c, ok := b.customers[id]
	if !ok {
		return Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return c.snapshot(), nil
}

// Account returns the account with number.
func (b *Bank) Account(number string) (Account, error) {
	a, err := b.account(number)
	if err != nil {
		return Account{}, err
	}
	return a.snapshot(), nil
}

// Customers returns all customers in creation order.
func (b *Bank) Customers() []Customer {
	out := make([]Customer, 0, len(b.customerOrder))
	for _, id := range b.customerOrder {
		out = append(out, b.customers[id].snapshot())
	}
	return out
}

// Accounts returns all accounts in creation order.
func (b *Bank) Accounts() []Account {
	out := make([]Account, 0, len(b.accountOrder))
	for _, n := range b.accountOrder {
		out = append(out, b.accounts[n].snapshot())
	}
	return out
}

// Owner resolves the customer owning an account.
func (b *Bank) Owner(number string) (Customer, error) {
	a, err := b.account(number)
	if err != nil {
		return Customer{}, err
	}
	return b.Customer(a.OwnerID)
}

// History returns up to limit of the most recent transactions, oldest first.
// A non-positive limit returns nothing.
func (b *Bank) History(number string, limit int) ([]Transaction, error) {
	a, err := b.account(number)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []Transaction{}, nil
	}
	start := len(a.Transactions) - limit
	if start < 0 {
		start = 0
	}
	return append([]Transaction(nil), a.Transactions[start:]...), nil
}

func (b *Bank) account(number string) (*Account, error) {
	a, ok := b.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	return a, nil
}

func (b *Bank) record(a *Account, amount Money, kind Kind, description string) {
	if kind == Credit {
		a.Balance += amount
	} else {
		a.Balance -= amount
	}
	a.Transactions = append(a.Transactions, Transaction{
		ID:          "T" + strconv.Itoa(len(a.Transactions)+1),
		Time:        b.now(),
		Description: description,
		Amount:      amount,
		Kind:        kind,
	})
}

func (c *Customer) snapshot() Customer {
	out := *c
	out.AccountIDs = append([]string(nil), c.AccountIDs...)
	return out
}

func (a *Account) snapshot() Account {
	out := *a
	out.Transactions = append([]Transaction(nil), a.Transactions...)
	return out
}
