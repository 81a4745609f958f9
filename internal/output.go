package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats accepted by --output
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// JSONOutput is the root JSON output object for list and summary commands
type JSONOutput struct {
	Expenses []JSONExpense `json:"expenses"`
	Summary  JSONSummary   `json:"summary"`
}

// JSONSummary contains aggregate statistics over the listed expenses
type JSONSummary struct {
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	Month    int     `json:"month,omitempty"`
	Year     int     `json:"year,omitempty"`
}

// JSONExpense is the JSON output format for an expense
type JSONExpense struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// JSONDeleteResult is printed by delete in JSON mode
type JSONDeleteResult struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

// JSONImportResult is printed by import in JSON mode
type JSONImportResult struct {
	Imported []JSONExpense `json:"imported"`
	Skipped  int           `json:"skipped"`
}

func NewJSONExpense(e Expense) JSONExpense {
	return JSONExpense{
		ID:          e.ID,
		Date:        e.Date.Format(DateLayout),
		Description: e.Description,
		Amount:      e.Amount,
	}
}

// NewJSONOutput builds the list/summary document. month and year are only
// set for month summaries.
func NewJSONOutput(c Collection, currency Currency, month, year int) JSONOutput {
	expenses := make([]JSONExpense, 0, len(c))
	for _, e := range c {
		expenses = append(expenses, NewJSONExpense(e))
	}
	return JSONOutput{
		Expenses: expenses,
		Summary: JSONSummary{
			Count:    len(c),
			Total:    Total(c),
			Currency: currency.Code,
			Month:    month,
			Year:     year,
		},
	}
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// PrintExpensesTable renders c as a table with a total footer
func PrintExpensesTable(w io.Writer, c Collection, currency Currency) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"ID", "Date", "Description", "Amount"})
	for _, e := range c {
		t.AppendRow(table.Row{e.ID, e.Date.Format(DateLayout), e.Description, currency.Format(e.Amount)})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", text.Bold.Sprint("Total"), text.Bold.Sprint(currency.Format(Total(c)))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
}

// PrintTotal prints a one line total, e.g. "Total expenses: $12.50"
func PrintTotal(w io.Writer, label string, total float64, currency Currency) {
	fmt.Fprintf(w, "%s: %s\n", label, text.Bold.Sprint(currency.Format(total)))
}

// PrintSuccess prints a green confirmation line
func PrintSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, text.FgGreen.Sprintf(format, args...))
}

// PrintNotice prints a yellow informational line, used for "nothing found"
func PrintNotice(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, text.FgYellow.Sprintf(format, args...))
}

// PrintError prints a red error line
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, text.FgRed.Sprintf(format, args...))
}

// MonthName returns the English month name for 1-12
func MonthName(month int) string {
	if err := ValidateMonth(month); err != nil {
		return fmt.Sprintf("month %d", month)
	}
	return time.Month(month).String()
}
