// Package ofx turns OFX/QFX bank and card statements into expense and
// income drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/classification"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/aclindsa/ofxgo"
)

const dateLayout = "2006-01-02"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options control how statement lines become drafts.
type Options struct {
	// BudgetID is attached to every imported expense.
	BudgetID model.ID
	// ExpenseCategory is used when the transaction type implies none.
	ExpenseCategory string
	// IncomeCategory is used when the transaction type implies none.
	IncomeCategory string
	// Classifier, when set, picks categories from the statement text and
	// drops transfers between own accounts.
	Classifier *classification.Classifier
}

// Statement is the drafts read from one file. Debits become expenses and
// credits become income.
type Statement struct {
	Accounts []string
	Expenses []model.ExpenseDraft
	Income   []model.IncomeDraft
	// Transfers counts lines skipped as transfers.
	Transfers int
}

// Len returns the number of drafts.
func (s Statement) Len() int {
	return len(s.Expenses) + len(s.Income)
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
	opts   Options
}

// NewParser creates a new OFX parser.
func NewParser(opts Options, logger *slog.Logger) *Parser {
	if opts.ExpenseCategory == "" {
		opts.ExpenseCategory = "Uncategorized"
	}
	if opts.IncomeCategory == "" {
		opts.IncomeCategory = "Deposit"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{opts: opts, logger: logger}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML exports sometimes drop the closing bracket of a bare tag line.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile reads a statement.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Statement{}, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return Statement{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var stmt Statement
	for _, msg := range resp.Bank {
		if bank, ok := msg.(*ofxgo.StatementResponse); ok {
			stmt.Accounts = appendAccount(stmt.Accounts, string(bank.BankAcctFrom.AcctID))
			if bank.BankTranList != nil {
				p.collect(&stmt, bank.BankTranList.Transactions)
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if card, ok := msg.(*ofxgo.CCStatementResponse); ok {
			stmt.Accounts = appendAccount(stmt.Accounts, string(card.CCAcctFrom.AcctID))
			if card.BankTranList != nil {
				p.collect(&stmt, card.BankTranList.Transactions)
			}
		}
	}

	p.logger.Info("Parsed OFX file",
		"accounts", len(stmt.Accounts),
		"expenses", len(stmt.Expenses),
		"income", len(stmt.Income),
		"transfers", stmt.Transfers)
	return stmt, nil
}

func appendAccount(accounts []string, id string) []string {
	if id == "" {
		return accounts
	}
	for _, a := range accounts {
		if a == id {
			return accounts
		}
	}
	return append(accounts, id)
}

func (p *Parser) collect(stmt *Statement, txns []ofxgo.Transaction) {
	for _, tx := range txns {
		amount, _ := tx.TrnAmt.Float64()
		if amount == 0 {
			continue
		}
		name := merchantName(tx)
		date := tx.DtPosted.Format(dateLayout)
		kind := tx.TrnType.String()

		rule, classified := p.classify(tx, name, amount > 0)
		if classified && rule.Kind == classification.KindTransfer {
			stmt.Transfers++
			continue
		}

		if amount > 0 {
			category := p.opts.IncomeCategory
			if kind == "INT" || kind == "DIV" {
				category = "Interest"
			}
			if classified {
				category = rule.Category
			}
			stmt.Income = append(stmt.Income, model.IncomeDraft{
				SourceName:   name,
				Category:     category,
				DateReceived: date,
				Notes:        string(tx.FiTID),
				Recurrence:   model.RecurrenceNone,
				Amount:       model.Float(amount),
			})
			continue
		}

		category := p.opts.ExpenseCategory
		switch kind {
		case "FEE", "SRVCHG":
			category = "Bank Fees"
		case "ATM", "CASH":
			category = "Cash & ATM"
		}
		if classified {
			category = rule.Category
		}
		description := name
		if tx.CheckNum != "" && !strings.Contains(description, string(tx.CheckNum)) {
			description = fmt.Sprintf("%s (check %s)", description, tx.CheckNum)
		}
		stmt.Expenses = append(stmt.Expenses, model.ExpenseDraft{
			Category:    category,
			Description: description,
			Date:        date,
			Recurrence:  model.RecurrenceNone,
			BudgetID:    p.opts.BudgetID,
			Amount:      model.Float(-amount),
		})
	}
}

// classify matches the raw statement text of tx. Credits consider income and
// transfer rules, debits expense and transfer rules.
func (p *Parser) classify(tx ofxgo.Transaction, name string, credit bool) (classification.Rule, bool) {
	if p.opts.Classifier == nil {
		return classification.Rule{}, false
	}
	text := strings.Join([]string{string(tx.Name), string(tx.Memo), name}, " ")
	kind := classification.KindExpense
	if credit {
		kind = classification.KindIncome
	}
	return p.opts.Classifier.Classify(text, kind, classification.KindTransfer)
}

var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"ACH CREDIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// merchantName picks the cleanest counterparty label of a transaction.
func merchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "DEPOSIT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
