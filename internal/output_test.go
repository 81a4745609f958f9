package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestWriteJSON_Golden(t *testing.T) {
	tests := []struct {
		name   string
		output JSONOutput
	}{
		{"list_output", NewJSONOutput(sampleExpenses(), GetCurrency("USD"), 0, 0)},
		{"month_summary_output", NewJSONOutput(FilterByMonth(sampleExpenses(), 1, 2025), GetCurrency("EUR"), 1, 2025)},
		{"empty_output", NewJSONOutput(nil, GetCurrency("USD"), 0, 0)},
	}

	g := goldie.New(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJSON(&buf, tt.output); err != nil {
				t.Fatalf("WriteJSON() error = %v", err)
			}
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestPrintExpensesTable(t *testing.T) {
	var buf bytes.Buffer
	PrintExpensesTable(&buf, sampleExpenses(), GetCurrency("USD"))
	out := buf.String()

	for _, want := range []string{"ID", "Date", "Description", "Amount", "4711", "2025-01-15", "Coffee", "$3.50", "Groceries", "$57.80", "Total", "$61.30"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTotal(t *testing.T) {
	var buf bytes.Buffer
	PrintTotal(&buf, "Total expenses", 12.5, GetCurrency("USD"))

	if !strings.Contains(buf.String(), "Total expenses: ") || !strings.Contains(buf.String(), "$12.50") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "Expense added successfully (ID: %d)", 7)
	PrintNotice(&buf, "No expenses found")
	PrintError(&buf, "Error: %v", ErrInvalidAmount)

	out := buf.String()
	for _, want := range []string{"Expense added successfully (ID: 7)", "No expenses found", "Error: invalid amount"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		month int
		want  string
	}{
		{1, "January"},
		{12, "December"},
		{13, "month 13"},
	}
	for _, tt := range tests {
		if got := MonthName(tt.month); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}
