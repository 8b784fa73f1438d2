package listview

import (
	"strings"
	"testing"

	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExpenses() []model.Expense {
	return []model.Expense{
		{ID: "1", Category: "Travel", Description: "Flight to Denver", Amount: 420, Date: "2024-03-02"},
		{ID: "2", Category: "Office", Description: "Printer paper", Amount: 35.5, Date: "2024-03-04"},
		{ID: "3", Category: "Travel", Description: "Hotel denver", Amount: 610, Date: "2024-03-05"},
		{ID: "4", Category: "Meals", Description: "Team lunch", Amount: 88, Date: "2024-03-09"},
	}
}

func TestQueryMatch(t *testing.T) {
	e := sampleExpenses()[0]

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"empty value matches", Equals("category", ""), true},
		{"equality", Equals("category", "Travel"), true},
		{"equality is exact", Equals("category", "travel"), false},
		{"substring ignores case", Search("description", "DENVER"), true},
		{"substring miss", Search("description", "boston"), false},
		{"unknown field", Equals("vendor", "x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Match(e))
		})
	}
}

func TestApplyComposes(t *testing.T) {
	records := sampleExpenses()
	f1 := Search("description", "denver")
	f2 := Equals("category", "Travel")
	f3 := Equals("category", "Office")

	for _, pair := range [][2]Query{{f1, f2}, {f1, f3}, {f2, f3}, {nil, f1}} {
		chained := Apply(Apply(records, pair[0]), pair[1])
		combined := Apply(records, pair[0].And(pair[1]))
		assert.Equal(t, combined, chained)
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	records := sampleExpenses()
	before := append([]model.Expense(nil), records...)

	out := Apply(records, Equals("category", "Travel"))
	require.Len(t, out, 2)
	out[0].Category = "Changed"

	all := Apply(records, nil)
	all[1].Category = "Changed"

	assert.Equal(t, before, records)
}

func TestAndDoesNotShareBacking(t *testing.T) {
	base := make(Query, 1, 4)
	base[0] = Equals("category", "Travel")[0]
	a := base.And(Search("description", "hotel"))
	b := base.And(Search("description", "flight"))
	assert.Equal(t, "hotel", a[1].Value)
	assert.Equal(t, "flight", b[1].Value)
	assert.Len(t, base, 1)
}

func TestDateFilters(t *testing.T) {
	require.True(t, ExpensesConfig.CanFilter("date"))
	require.True(t, IncomeConfig.CanFilter("date_received"))

	expenses := Apply(sampleExpenses(), Equals("date", "2024-03-04"))
	require.Len(t, expenses, 1)
	assert.Equal(t, model.ID("2"), expenses[0].ID)

	income := Apply([]model.Income{
		{ID: "1", SourceName: "Acme", DateReceived: "2024-01-05"},
		{ID: "2", SourceName: "Globex", DateReceived: "2024-01-06"},
	}, Equals("date_received", "2024-01-05"))
	require.Len(t, income, 1)
	assert.Equal(t, "Acme", income[0].SourceName)
}

func TestOptionsFirstAppearance(t *testing.T) {
	assert.Equal(t, []string{"Travel", "Office", "Meals"}, Options(sampleExpenses(), "category"))
	assert.Empty(t, Options([]model.Expense{{ID: "1"}}, "category"))
}

func TestBuildDocumentRoundTrip(t *testing.T) {
	doc := BuildDocument(ExpensesConfig.Filename, sampleExpenses(), ExpensesConfig.ExportColumns)
	assert.Equal(t, "expenses.csv", doc.Filename)

	lines := strings.Split(string(doc.Bytes()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Category,Amount,Description,Date", lines[0])
	for i, line := range lines[1:] {
		e := sampleExpenses()[i]
		assert.Equal(t, []string{e.Category, e.Amount.String(), e.Description, e.Date}, strings.Split(line, ","))
	}
}

func TestIncomeExportHeader(t *testing.T) {
	doc := BuildDocument(IncomeConfig.Filename, []model.Income{
		{ID: "1", SourceName: "Client A", Category: "Consulting", Amount: 1500, DateReceived: "2024-02-01", Notes: "Q1"},
	}, IncomeConfig.exportColumns())
	assert.Equal(t, "Source,Category,Amount,Date,Notes\nClient A,Consulting,1500,2024-02-01,Q1", string(doc.Bytes()))
}
