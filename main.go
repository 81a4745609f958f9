package main

import (
	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// CommonParams are accepted by every command that touches the expense store
type CommonParams struct {
	Store    string `descr:"Path to the expense store (default ~/.expense-tracker/expenses.json)" optional:"true"`
	Backend  string `descr:"Storage backend" alts:"json,sqlite" optional:"true"`
	Config   string `descr:"Path to the config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Currency string `descr:"Currency code used when printing amounts, e.g. EUR (default from system locale)" optional:"true"`
	Output   string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Verbose  bool   `descr:"Log debug information to stderr" optional:"true"`
}

type AddParams struct {
	CommonParams
	Description string `descr:"Expense description"`
	Amount      string `descr:"Expense amount, greater than zero"`
	Date        string `descr:"Expense date (YYYY-MM-DD), defaults to today" optional:"true"`
}

type ListParams struct {
	CommonParams
}

type DeleteParams struct {
	CommonParams
	ID int `name:"id" descr:"Id of the expense to delete"`
}

type SummaryParams struct {
	CommonParams
}

type SummaryMonthParams struct {
	CommonParams
	Month int `descr:"Month number (1-12)"`
	Year  int `descr:"Only count expenses from this year (default: every year)" optional:"true"`
}

type ExportParams struct {
	CommonParams
	File string `descr:"Path of the xlsx file to write" positional:"true"`
}

type ImportParams struct {
	CommonParams
	Source string `descr:"Import file format (default: from prefix or file extension)" alts:"json,xlsx" optional:"true"`
	File   string `descr:"File to import, optionally prefixed with its format (json:backup.txt)" positional:"true"`
}

type ConfigInitParams struct {
	Config string `descr:"Path of the config file to create (default ~/.expense-tracker/config.yaml)" optional:"true"`
	Force  bool   `descr:"Overwrite an existing config file" optional:"true"`
}

func main() {
	// .env is optional, it only provides EXPENSE_TRACKER_* fallbacks
	_ = godotenv.Load()

	boa.CmdT[boa.NoParams]{
		Use:   "expense-tracker",
		Short: "Track personal expenses from the command line",
		Long:  "Records expenses (description, amount, date) in a local store and reports totals overall or per month.",
		SubCmds: boa.SubCmds(
			boa.CmdT[AddParams]{
				Use:   "add",
				Short: "Add a new expense",
				RunFunc: func(params *AddParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, func(a *app) error { return runAdd(a, params) })
				},
			},
			boa.CmdT[ListParams]{
				Use:   "list",
				Short: "List all expenses",
				RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, runList)
				},
			},
			boa.CmdT[DeleteParams]{
				Use:   "delete",
				Short: "Delete an expense by id",
				RunFunc: func(params *DeleteParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, func(a *app) error { return runDelete(a, params.ID) })
				},
			},
			boa.CmdT[SummaryParams]{
				Use:   "summary",
				Short: "Show the total of all expenses",
				RunFunc: func(params *SummaryParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, runSummary)
				},
			},
			boa.CmdT[SummaryMonthParams]{
				Use:   "summary-month",
				Short: "Show the total of expenses in one month",
				Long:  "Sums the expenses dated in the given calendar month. Without --year, the month of every year is counted.",
				RunFunc: func(params *SummaryMonthParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, func(a *app) error { return runSummaryMonth(a, params.Month, params.Year) })
				},
			},
			boa.CmdT[ExportParams]{
				Use:   "export",
				Short: "Export all expenses to an xlsx spreadsheet",
				RunFunc: func(params *ExportParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, func(a *app) error { return runExport(a, params.File) })
				},
			},
			boa.CmdT[ImportParams]{
				Use:   "import",
				Short: "Import expenses from an xlsx or JSON file",
				Long:  "Appends the expenses found in the file with fresh ids. Rows with an invalid amount, date or empty description are skipped.",
				RunFunc: func(params *ImportParams, cmd *cobra.Command, args []string) {
					run(cmd, &params.CommonParams, func(a *app) error { return runImport(a, params.Source, params.File) })
				},
			},
			boa.CmdT[boa.NoParams]{
				Use:   "config",
				Short: "Manage the config file",
				SubCmds: boa.SubCmds(
					boa.CmdT[ConfigInitParams]{
						Use:   "init",
						Short: "Write a config file template",
						RunFunc: func(params *ConfigInitParams, cmd *cobra.Command, args []string) {
							exitOnError(cmd, runConfigInit(cmd.OutOrStdout(), params))
						},
					},
				),
			},
		),
	}.Run()
}
