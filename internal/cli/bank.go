package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/semmy-space/coda/internal/bank"
	"github.com/semmy-space/coda/internal/output"
)

// historyLimit is how many recent transactions option 8 shows.
const historyLimit = 10

// BankCmd implements the bank command
type BankCmd struct{}

// Run executes the bank menu loop over a fresh in-memory bank
func (cmd *BankCmd) Run(con *Console, logger *zap.Logger) error {
	m := &bankMenu{bank: bank.New(), con: con, logger: logger.Named("bank")}
	return m.run()
}

type bankMenu struct {
	bank   *bank.Bank
	con    *Console
	logger *zap.Logger
}

func (m *bankMenu) run() error {
	for {
		m.printMenu()
		answer, err := m.con.Prompt("| Enter your choice (1-9): ")
		if errors.Is(err, io.EOF) {
			m.goodbye()
			return nil
		}
		if err != nil {
			return inputError(err)
		}

		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > 9 {
			m.con.Printf("| Invalid input. Please enter a number (1-9) |\n")
			continue
		}
		if choice == 9 {
			m.goodbye()
			return nil
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, errNoInput) {
				return inputError(err)
			}
			m.logger.Debug("operation failed", zap.Int("choice", choice), zap.Error(err))
			m.con.Printf("| Error: %v.\n", err)
		}
	}
}

func (m *bankMenu) dispatch(choice int) error {
	switch choice {
	case 1:
		return m.createCustomer()
	case 2:
		return m.openAccount()
	case 3:
		return m.deposit()
	case 4:
		return m.withdraw()
	case 5:
		return m.transfer()
	case 6:
		return m.customerDetails()
	case 7:
		return m.accountDetails()
	case 8:
		return m.history()
	}
	return nil
}

func (m *bankMenu) printMenu() {
	rule := strings.Repeat("=", 45)
	m.con.Printf("\n%s\n|           BANK MANAGEMENT SYSTEM          |\n%s\n", rule, rule)
	for i, item := range []string{
		"Create New Customer",
		"Create New Account",
		"Deposit Money",
		"Withdraw Money",
		"Transfer Funds",
		"View Customer Details",
		"View Account Details",
		"View Transaction History",
		"Exit",
	} {
		m.con.Printf("| %s |\n", output.PadString(fmt.Sprintf("%d. %s", i+1, item), 41))
	}
	m.con.Printf("%s\n", rule)
}

func (m *bankMenu) header(title string) {
	rule := strings.Repeat("=", 45)
	m.con.Printf("\n%s\n| %s |\n%s\n", rule, output.PadString(title, 41), rule)
}

func (m *bankMenu) createCustomer() error {
	m.header("CREATE NEW CUSTOMER")
	name, err := m.con.Prompt("| Enter customer name: ")
	if err != nil {
		return err
	}
	address, err := m.con.Prompt("| Enter address: ")
	if err != nil {
		return err
	}
	phone, err := m.con.Prompt("| Enter phone number: ")
	if err != nil {
		return err
	}

	c, err := m.bank.CreateCustomer(name, address, phone)
	if err != nil {
		return err
	}
	m.con.Printf("| Customer created successfully!\n| Customer ID: %s\n", c.ID)
	return nil
}

func (m *bankMenu) openAccount() error {
	m.header("CREATE NEW ACCOUNT")
	customerID, err := m.selectCustomer()
	if err != nil || customerID == "" {
		return err
	}
	accountType, err := m.con.Prompt("| Enter account type (Savings/Checking): ")
	if err != nil {
		return err
	}

	a, err := m.bank.OpenAccount(customerID, accountType)
	if err != nil {
		return err
	}
	m.con.Printf("| Account created successfully!\n| Account Number: %s\n", a.Number)
	return nil
}

func (m *bankMenu) deposit() error {
	m.header("DEPOSIT MONEY")
	number, err := m.selectAccount("Select account:", "")
	if err != nil || number == "" {
		return err
	}
	amount, err := m.promptAmount("| Enter amount to deposit: $")
	if err != nil {
		return err
	}

	balance, err := m.bank.Deposit(number, amount, "")
	if err != nil {
		return err
	}
	m.con.Printf("| Deposit successful. New balance: %s\n", balance)
	return nil
}

func (m *bankMenu) withdraw() error {
	m.header("WITHDRAW MONEY")
	number, err := m.selectAccount("Select account:", "")
	if err != nil || number == "" {
		return err
	}
	amount, err := m.promptAmount("| Enter amount to withdraw: $")
	if err != nil {
		return err
	}

	balance, err := m.bank.Withdraw(number, amount, "")
	if err != nil {
		return err
	}
	m.con.Printf("| Withdrawal successful. New balance: %s\n", balance)
	return nil
}

func (m *bankMenu) transfer() error {
	m.header("TRANSFER FUNDS")
	if len(m.bank.Accounts()) < 2 {
		m.con.Printf("| Need at least 2 accounts to transfer!\n")
		return nil
	}
	from, err := m.selectAccount("Select SOURCE account:", "")
	if err != nil || from == "" {
		return err
	}
	to, err := m.selectAccount("Select TARGET account:", from)
	if err != nil || to == "" {
		return err
	}
	amount, err := m.promptAmount("| Enter amount to transfer: $")
	if err != nil {
		return err
	}

	if err := m.bank.Transfer(from, to, amount); err != nil {
		return err
	}
	m.con.Printf("| Transfer successful!\n")
	return nil
}

func (m *bankMenu) customerDetails() error {
	m.header("CUSTOMER DETAILS")
	id, err := m.selectCustomer()
	if err != nil || id == "" {
		return err
	}
	c, err := m.bank.Customer(id)
	if err != nil {
		return err
	}

	m.con.Printf("\nCustomer Information:\n")
	m.con.Printf("ID: %s\nName: %s\nAddress: %s\nPhone: %s\n", c.ID, c.Name, c.Address, c.Phone)
	m.con.Printf("Number of Accounts: %d\n", len(c.AccountIDs))
	for _, number := range c.AccountIDs {
		a, err := m.bank.Account(number)
		if err != nil {
			return err
		}
		m.con.Printf("  - %s (%s): %s\n", a.Number, a.Type, a.Balance)
	}
	return nil
}

func (m *bankMenu) accountDetails() error {
	m.header("ACCOUNT DETAILS")
	number, err := m.selectAccount("Select account:", "")
	if err != nil || number == "" {
		return err
	}
	a, err := m.bank.Account(number)
	if err != nil {
		return err
	}
	owner, err := m.bank.Owner(number)
	if err != nil {
		return err
	}

	m.con.Printf("\nAccount Information:\n")
	m.con.Printf("Account Number: %s\nType: %s\nBalance: %s\nOwner: %s\n", a.Number, a.Type, a.Balance, owner.Name)
	return nil
}

func (m *bankMenu) history() error {
	m.header("TRANSACTION HISTORY")
	number, err := m.selectAccount("Select account:", "")
	if err != nil || number == "" {
		return err
	}
	txs, err := m.bank.History(number, historyLimit)
	if err != nil {
		return err
	}

	m.con.Printf("\nTransaction History (Last %d transactions):\n", len(txs))
	if len(txs) == 0 {
		m.con.Printf("No transactions yet.\n")
		return nil
	}

	cols := []output.Column{
		{Name: "Timestamp", Key: "time"},
		{Name: "ID", Key: "id"},
		{Name: "Type", Key: "kind"},
		{Name: "Amount", Key: "amount"},
		{Name: "Description", Key: "description", Width: 30},
	}
	rows := make([]map[string]string, len(txs))
	for i, tx := range txs {
		rows[i] = map[string]string{
			"time":        tx.Time.Format("2006-01-02 15:04:05"),
			"id":          tx.ID,
			"kind":        string(tx.Kind),
			"amount":      tx.Amount.String(),
			"description": tx.Description,
		}
	}
	output.RenderTable(m.con.out, cols, rows)
	return nil
}

// selectCustomer lists customers and returns the chosen id, or "" after
// reporting an empty bank or a bad selection.
func (m *bankMenu) selectCustomer() (string, error) {
	customers := m.bank.Customers()
	if len(customers) == 0 {
		m.con.Printf("| No customers available.\n| Please create a customer first.\n")
		return "", nil
	}

	m.con.Printf("| Select customer:\n")
	ids := make([]string, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
		m.con.Printf("| %d. %s - %s\n", i+1, c.ID, c.Name)
	}
	answer, err := m.con.Prompt("| Enter customer number: ")
	if err != nil {
		return "", err
	}

	id, ok := pick(answer, ids)
	if !ok {
		m.con.Printf("| Invalid customer selection!\n")
		return "", nil
	}
	return id, nil
}

// selectAccount lists accounts other than exclude and returns the chosen number,
// or "" after reporting no accounts or a bad selection.
func (m *bankMenu) selectAccount(label, exclude string) (string, error) {
	var numbers []string
	var lines []string
	for _, a := range m.bank.Accounts() {
		if a.Number == exclude {
			continue
		}
		owner, err := m.bank.Owner(a.Number)
		if err != nil {
			return "", err
		}
		numbers = append(numbers, a.Number)
		lines = append(lines, fmt.Sprintf("%s (%s) - %s: %s", a.Number, a.Type, owner.Name, a.Balance))
	}
	if len(numbers) == 0 {
		m.con.Printf("| No accounts available!\n")
		return "", nil
	}

	m.con.Printf("| %s\n", label)
	for i, line := range lines {
		m.con.Printf("| %d. %s\n", i+1, line)
	}
	answer, err := m.con.Prompt("| Enter account number: ")
	if err != nil {
		return "", err
	}

	number, ok := pick(answer, numbers)
	if !ok {
		m.con.Printf("| Invalid account selection!\n")
		return "", nil
	}
	return number, nil
}

func (m *bankMenu) promptAmount(label string) (bank.Money, error) {
	var amount bank.Money
	_, err := m.con.PromptValid(label, func(s string) error {
		v, err := bank.ParseMoney(s)
		if err != nil {
			return err
		}
		amount = v
		return nil
	})
	return amount, err
}

func (m *bankMenu) goodbye() {
	m.con.Printf("\nThank you for using the Bank Management System!\n")
}

// pick resolves a menu answer given either as a 1-based position or as the id itself.
func pick(answer string, ids []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(ids) {
			return ids[n-1], true
		}
		return "", false
	}
	for _, id := range ids {
		if strings.EqualFold(id, answer) {
			return id, true
		}
	}
	return "", false
}
