package bank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func newTestBank(t *testing.T) (*Bank, Account, Account) {
	t.Helper()
	b := New(WithClock(fixedClock()))

	alice, err := b.CreateCustomer("Alice", "1 Main St", "555-0100")
	require.NoError(t, err)
	bob, err := b.CreateCustomer("Bob", "2 Side St", "555-0101")
	require.NoError(t, err)

	a1, err := b.OpenAccount(alice.ID, "Savings")
	require.NoError(t, err)
	a2, err := b.OpenAccount(bob.ID, "Checking")
	require.NoError(t, err)
	return b, a1, a2
}

func TestSequencesAreOwnedPerBank(t *testing.T) {
	b1 := New()
	b2 := New()

	c1, err := b1.CreateCustomer("Alice", "", "")
	require.NoError(t, err)
	c2, err := b1.CreateCustomer("Bob", "", "")
	require.NoError(t, err)
	c3, err := b2.CreateCustomer("Carol", "", "")
	require.NoError(t, err)

	assert.Equal(t, "CUST1000", c1.ID)
	assert.Equal(t, "CUST1001", c2.ID)
	assert.Equal(t, "CUST1000", c3.ID, "a second bank must not share counters")

	a, err := b1.OpenAccount(c1.ID, "Savings")
	require.NoError(t, err)
	assert.Equal(t, "ACCT100000", a.Number)
}

func TestWithSequences(t *testing.T) {
	b := New(WithSequences(NewSequence("C-", 1), NewSequence("A-", 7)))
	c, err := b.CreateCustomer("Alice", "", "")
	require.NoError(t, err)
	a, err := b.OpenAccount(c.ID, "Savings")
	require.NoError(t, err)

	assert.Equal(t, "C-1", c.ID)
	assert.Equal(t, "A-7", a.Number)
}

func TestOpenAccountLinksOwner(t *testing.T) {
	b, a1, _ := newTestBank(t)

	owner, err := b.Owner(a1.Number)
	require.NoError(t, err)
	assert.Equal(t, "Alice", owner.Name)
	assert.Equal(t, []string{a1.Number}, owner.AccountIDs)
	assert.Equal(t, Money(0), a1.Balance)
}

func TestCreateErrors(t *testing.T) {
	b := New()

	_, err := b.CreateCustomer("  ", "addr", "phone")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = b.OpenAccount("CUST9999", "Savings")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	c, err := b.CreateCustomer("Alice", "", "")
	require.NoError(t, err)
	_, err = b.OpenAccount(c.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDepositWithdraw(t *testing.T) {
	b, a1, _ := newTestBank(t)

	bal, err := b.Deposit(a1.Number, 10000, "")
	require.NoError(t, err)
	assert.Equal(t, Money(10000), bal)

	bal, err = b.Withdraw(a1.Number, 2550, "")
	require.NoError(t, err)
	assert.Equal(t, Money(7450), bal)

	_, err = b.Withdraw(a1.Number, 10000, "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = b.Deposit(a1.Number, 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = b.Withdraw(a1.Number, -5, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = b.Deposit("ACCT1", 100, "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	acct, err := b.Account(a1.Number)
	require.NoError(t, err)
	require.Len(t, acct.Transactions, 2)
	assert.Equal(t, Transaction{ID: "T1", Time: fixedClock()(), Description: "Deposit", Amount: 10000, Kind: Credit}, acct.Transactions[0])
	assert.Equal(t, "T2", acct.Transactions[1].ID)
	assert.Equal(t, "Withdrawal", acct.Transactions[1].Description)
	assert.Equal(t, Debit, acct.Transactions[1].Kind)
}

func TestTransfer(t *testing.T) {
	b, a1, a2 := newTestBank(t)
	_, err := b.Deposit(a1.Number, 5000, "")
	require.NoError(t, err)

	require.NoError(t, b.Transfer(a1.Number, a2.Number, 2000))

	src, err := b.Account(a1.Number)
	require.NoError(t, err)
	dst, err := b.Account(a2.Number)
	require.NoError(t, err)
	assert.Equal(t, Money(3000), src.Balance)
	assert.Equal(t, Money(2000), dst.Balance)
	assert.Equal(t, "Transfer to "+a2.Number, src.Transactions[1].Description)
	assert.Equal(t, "Transfer from "+a1.Number, dst.Transactions[0].Description)
}

func TestTransferFailuresLeaveBalancesUntouched(t *testing.T) {
	b, a1, a2 := newTestBank(t)
	_, err := b.Deposit(a1.Number, 1000, "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		from    string
		to      string
		amount  Money
		wantErr error
	}{
		{name: "same account", from: a1.Number, to: a1.Number, amount: 100, wantErr: ErrSameAccount},
		{name: "insufficient", from: a1.Number, to: a2.Number, amount: 1001, wantErr: ErrInsufficientFunds},
		{name: "zero amount", from: a1.Number, to: a2.Number, amount: 0, wantErr: ErrInvalidAmount},
		{name: "unknown source", from: "ACCT1", to: a2.Number, amount: 10, wantErr: ErrAccountNotFound},
		{name: "unknown target", from: a1.Number, to: "ACCT1", amount: 10, wantErr: ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, b.Transfer(tt.from, tt.to, tt.amount), tt.wantErr)

			src, err := b.Account(a1.Number)
			require.NoError(t, err)
			dst, err := b.Account(a2.Number)
			require.NoError(t, err)
			assert.Equal(t, Money(1000), src.Balance)
			assert.Len(t, src.Transactions, 1)
			assert.Equal(t, Money(0), dst.Balance)
			assert.Empty(t, dst.Transactions)
		})
	}
}

func TestHistory(t *testing.T) {
	b, a1, _ := newTestBank(t)
	for i := 1; i <= 5; i++ {
		_, err := b.Deposit(a1.Number, Money(i*100), "")
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		limit int
		ids   []string
	}{
		{name: "last three", limit: 3, ids: []string{"T3", "T4", "T5"}},
		{name: "more than available", limit: 10, ids: []string{"T1", "T2", "T3", "T4", "T5"}},
		{name: "zero", limit: 0, ids: []string{}},
		{name: "negative", limit: -2, ids: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := b.History(a1.Number, tt.limit)
			require.NoError(t, err)
			ids := make([]string, 0, len(txs))
			for _, tx := range txs {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}

	_, err := b.History("ACCT1", 3)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSnapshotsAreCopies(t *testing.T) {
	b, a1, _ := newTestBank(t)
	_, err := b.Deposit(a1.Number, 100, "")
	require.NoError(t, err)

	acct, err := b.Account(a1.Number)
	require.NoError(t, err)
	acct.Balance = 999999
	acct.Transactions[0].Amount = 1

	fresh, err := b.Account(a1.Number)
	require.NoError(t, err)
	assert.Equal(t, Money(100), fresh.Balance)
	assert.Equal(t, Money(100), fresh.Transactions[0].Amount)

	customers := b.Customers()
	require.Len(t, customers, 2)
	customers[0].AccountIDs[0] = "tampered"
	owner, err := b.Owner(a1.Number)
	require.NoError(t, err)
	assert.Equal(t, a1.Number, owner.AccountIDs[0])

	assert.Len(t, b.Accounts(), 2)
}

func TestCreditsNeverOverflowBalance(t *testing.T) {
	b, a1, a2 := newTestBank(t)
	huge, err := ParseMoney("90000000000000000")
	require.NoError(t, err)

	_, err = b.Deposit(a1.Number, huge, "")
	require.NoError(t, err)
	_, err = b.Deposit(a1.Number, huge, "")
	assert.ErrorIs(t, err, ErrBalanceOverflow)

	_, err = b.Deposit(a2.Number, huge, "")
	require.NoError(t, err)
	assert.ErrorIs(t, b.Transfer(a1.Number, a2.Number, huge), ErrBalanceOverflow)

	for _, number := range []string{a1.Number, a2.Number} {
		acct, err := b.Account(number)
		require.NoError(t, err)
		assert.Equal(t, huge, acct.Balance)
		assert.Len(t, acct.Transactions, 1)
	}
}
