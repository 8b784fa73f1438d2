package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/ledgerdeck/internal/classification"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240128120000[0:GMT]
<TRNAMT>1800.00
<FITID>2024012801
<NAME>ACH CREDIT ACME PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>2.15
<FITID>2024013101
<NAME>INTEREST PAYMENT
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>-5.00
<FITID>2024013102
<NAME>MONTHLY SERVICE FEE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expenses      int
		income        int
		expectedError bool
	}{
		{name: "valid bank statement", ofxData: sampleBankOFX, expenses: 4, income: 2},
		{name: "valid credit card statement", ofxData: sampleCreditCardOFX, expenses: 2},
		{name: "invalid OFX data", ofxData: "not valid OFX", expectedError: true},
		{name: "empty OFX", ofxData: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(Options{}, nil)

			stmt, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, stmt.Expenses, tt.expenses)
			assert.Len(t, stmt.Income, tt.income)
			assert.Equal(t, tt.expenses+tt.income, stmt.Len())
		})
	}
}

func TestParseBankStatement(t *testing.T) {
	budget := model.ID("3")
	parser := NewParser(Options{BudgetID: budget, ExpenseCategory: "Operations"}, nil)

	stmt, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, stmt.Accounts)
	require.Len(t, stmt.Expenses, 4)
	require.Len(t, stmt.Income, 2)

	coffee := stmt.Expenses[0]
	assert.Equal(t, "STARBUCKS STORE #1234", coffee.Description)
	assert.Equal(t, "Operations", coffee.Category)
	assert.Equal(t, "2024-01-15", coffee.Date)
	assert.Equal(t, model.RecurrenceNone, coffee.Recurrence)
	assert.InDelta(t, 25.50, *coffee.Amount, 0.001)
	assert.Equal(t, budget, coffee.BudgetID)

	assert.Equal(t, "CHECK #1234", stmt.Expenses[2].Description)
	assert.InDelta(t, 500.00, *stmt.Expenses[2].Amount, 0.001)
	assert.Equal(t, "Bank Fees", stmt.Expenses[3].Category)

	salary := stmt.Income[0]
	assert.Equal(t, "ACME PAYROLL", salary.SourceName)
	assert.Equal(t, "Deposit", salary.Category)
	assert.Equal(t, "2024-01-28", salary.DateReceived)
	assert.Equal(t, "2024012801", salary.Notes)
	assert.InDelta(t, 1800, *salary.Amount, 0.001)

	assert.Equal(t, "Interest", stmt.Income[1].Category)
}

func TestParseClassifiesAndSkipsTransfers(t *testing.T) {
	rules := append(classification.DefaultRules(),
		classification.Rule{Category: "Groceries", Kind: classification.KindTransfer, Pattern: `WHOLE\s*FOODS`, Priority: 10})
	classifier, err := classification.New(rules)
	require.NoError(t, err)
	parser := NewParser(Options{ExpenseCategory: "Operations", Classifier: classifier}, nil)

	stmt, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, 1, stmt.Transfers)
	require.Len(t, stmt.Expenses, 3)
	require.Len(t, stmt.Income, 2)

	assert.Equal(t, "Operations", stmt.Expenses[0].Category, "unmatched lines keep the default")
	assert.Equal(t, "Bank Fees", stmt.Expenses[2].Category)
	assert.Equal(t, "Salary", stmt.Income[0].Category)
	assert.Equal(t, "Interest", stmt.Income[1].Category)
}

func TestParseCreditCardStatement(t *testing.T) {
	parser := NewParser(Options{}, nil)

	stmt, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, stmt.Accounts)
	require.Len(t, stmt.Expenses, 2)

	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", stmt.Expenses[0].Description)
	assert.Equal(t, "Uncategorized", stmt.Expenses[0].Category)
	assert.InDelta(t, 45.99, *stmt.Expenses[0].Amount, 0.001)
	assert.True(t, stmt.Expenses[0].BudgetID.IsZero())
	assert.Equal(t, "2024-01-15", stmt.Expenses[1].Date)
}

func TestMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{"remove POS prefix", ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, "STARBUCKS"},
		{"remove DEBIT CARD prefix", ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"}, "WHOLE FOODS"},
		{"keep clean name", ofxgo.Transaction{Name: "NETFLIX.COM"}, "NETFLIX.COM"},
		{"trim whitespace", ofxgo.Transaction{Name: "  AMAZON.COM  "}, "AMAZON.COM"},
		{"strip posting date", ofxgo.Transaction{Name: "03/14 SHELL OIL"}, "SHELL OIL"},
		{"memo for generic name", ofxgo.Transaction{Name: "PURCHASE", Memo: "HOME DEPOT"}, "HOME DEPOT"},
		{"payee wins", ofxgo.Transaction{Name: "ACH", Payee: &ofxgo.Payee{Name: "City Water"}}, "City Water"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, merchantName(tt.tx))
		})
	}
}

func TestPreprocessFixesSeverityAndTags(t *testing.T) {
	out := preprocessOFX("\n\n<SEVERITY>Info</SEVERITY>\n<CODE\n")
	assert.Equal(t, "<SEVERITY>INFO</SEVERITY>\n<CODE>\n", out)
}
