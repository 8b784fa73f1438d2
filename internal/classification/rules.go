package classification

// DefaultRules returns the built-in categories for bank statement lines.
func DefaultRules() []Rule {
	return []Rule{
		// Income
		{Category: "Salary", Kind: KindIncome, Pattern: `\b(DIRECTDEP|DIRECT\s*DEP|DIR\s*DEP|PAYROLL|SALARY|WAGES)\b`, Priority: 100},
		{Category: "Tax Refund", Kind: KindIncome, Pattern: `\b(TAX\s*REF|IRS\s*TREAS|STATE\s*TAX\s*REF|FED\s*TAX\s*REF)\b`, Priority: 95},
		{Category: "Interest", Kind: KindIncome, Pattern: `\b(INTEREST|INT\s*EARNED|INT\s*INCOME|DIVIDEND)\b`, Priority: 95},
		{Category: "Refund", Kind: KindIncome, Pattern: `\b(REFUND|REIMB|REIMBURSEMENT|CASHBACK|CASH\s*BACK)\b`, Priority: 90},
		{Category: "Investment", Kind: KindIncome, Pattern: `\b(CAPITAL\s*GAIN|STOCK\s*SALE|INVESTMENT\s*INCOME)\b`, Priority: 90},
		{Category: "Client Payment", Kind: KindIncome, Pattern: `\b(PAYMENT\s*FROM|INVOICE|CUSTOMER\s*PAY)\b`, Priority: 85},
		{Category: "Rental", Kind: KindIncome, Pattern: `\b(RENT\s*INCOME|RENTAL\s*PAYMENT|TENANT)\b`, Priority: 85},

		// Transfers move money between the organization's own accounts.
		{Category: "Wire Transfer", Kind: KindTransfer, Pattern: `\b(WIRE\s*IN|WIRE\s*OUT|WIRE\s*TRANSFER|WIRE\s*XFER)\b`, Priority: 85},
		{Category: "Account Transfer", Kind: KindTransfer, Pattern: `\b(TRANSFER|XFER|TFR|ACCOUNT\s*TO\s*ACCOUNT)\b`, Priority: 80},
		{Category: "Savings Transfer", Kind: KindTransfer, Pattern: `\b(TO\s*SAVINGS|FROM\s*SAVINGS|SAVINGS\s*TRANSFER)\b`, Priority: 75},
		{Category: "Card Payment", Kind: KindTransfer, Pattern: `\b(CC\s*PAYMENT|CREDIT\s*CARD\s*PAY|CARD\s*PAYMENT)\b`, Priority: 75},

		// Expenses
		{Category: "Payroll Taxes", Kind: KindExpense, Pattern: `\b(EFTPS|PAYROLL\s*TAX|941\s*TAX)\b`, Priority: 70},
		{Category: "Loan Payment", Kind: KindExpense, Pattern: `\b(LOAN\s*PMT|MORTGAGE\s*PMT|AUTO\s*PMT)\b`, Priority: 70},
		{Category: "Utilities", Kind: KindExpense, Pattern: `\b(ELECTRIC|GAS\s*CO|WATER\s*DEPT|UTILITY|COMCAST|VERIZON|AT&T)\b`, Priority: 60},
		{Category: "Software", Kind: KindExpense, Pattern: `\b(AWS|GITHUB|GOOGLE\s*WORKSPACE|ATLASSIAN|SLACK|ADOBE)\b`, Priority: 60},
		{Category: "Travel", Kind: KindExpense, Pattern: `\b(AIRLINES?|HOTEL|UBER|LYFT|AIRBNB|DELTA|UNITED)\b`, Priority: 55},
		{Category: "Cash & ATM", Kind: KindExpense, Pattern: `\b(ATM|CASH\s*WITHDRAWAL|WITHDRAW)\b`, Priority: 50},
		{Category: "Bank Fees", Kind: KindExpense, Pattern: `\b(FEE|SERVICE\s*CHG|PENALTY|OVERDRAFT)\b`, Priority: 45},
		{Category: "Subscriptions", Kind: KindExpense, Pattern: `\b(AUTOPAY|RECURRING|SUBSCRIPTION)\b`, Priority: 45},
	}
}
