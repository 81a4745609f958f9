package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gigurra/expense-tracker/internal"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is what a command needs for its single load → transform → save cycle
type app struct {
	store    *internal.Store
	currency internal.Currency
	output   string
	stdout   io.Writer
}

func newApp(cmd *cobra.Command, p *CommonParams) (*app, error) {
	log := internal.NewLogger(cmd.ErrOrStderr(), p.Verbose)

	cfgPath := p.Config
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfigOrDefault(cfgPath, explicit)
	if err != nil {
		return nil, err
	}

	settings, err := cfg.Resolve(internal.Settings{
		StorePath: p.Store,
		Backend:   p.Backend,
		Currency:  p.Currency,
	}, os.Getenv)
	if err != nil {
		return nil, err
	}

	backend, err := internal.OpenBackend(settings.Backend, settings.StorePath)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"backend": settings.Backend,
		"path":    settings.StorePath,
		"config":  cfgPath,
	}).Debug("resolved settings")

	output := p.Output
	if output == "" {
		output = internal.OutputTable
	}
	if output == internal.OutputJSON || os.Getenv("NO_COLOR") != "" {
		text.DisableColors()
	}

	return &app{
		store:    internal.NewStore(backend, internal.WithLogger(log)),
		currency: internal.ResolveCurrency(settings.Currency),
		output:   output,
		stdout:   cmd.OutOrStdout(),
	}, nil
}

func (a *app) json() bool {
	return a.output == internal.OutputJSON
}

// run builds the app for a command and exits non-zero if fn fails
func run(cmd *cobra.Command, p *CommonParams, fn func(a *app) error) {
	a, err := newApp(cmd, p)
	if err == nil {
		err = fn(a)
	}
	exitOnError(cmd, err)
}

func exitOnError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	internal.PrintError(cmd.ErrOrStderr(), "Error: %v", err)
	os.Exit(1)
}

func runAdd(a *app, p *AddParams) error {
	date := a.store.Today()
	if p.Date != "" {
		parsed, err := internal.ParseDate(p.Date)
		if err != nil {
			return fmt.Errorf("%w %q, expected YYYY-MM-DD", internal.ErrInvalidDate, p.Date)
		}
		date = parsed
	}

	expenses, err := a.store.Load()
	if err != nil {
		return err
	}

	e, expenses, err := a.store.AddOn(expenses, p.Description, p.Amount, date)
	if err != nil {
		return err
	}

	if err := a.store.Save(expenses); err != nil {
		return err
	}

	if a.json() {
		return internal.WriteJSON(a.stdout, internal.NewJSONExpense(e))
	}
	internal.PrintSuccess(a.stdout, "Expense added successfully (ID: %d)", e.ID)
	return nil
}

func runList(a *app) error {
	expenses, err := a.store.Load()
	if err != nil {
		return err
	}

	if a.json() {
		return internal.WriteJSON(a.stdout, internal.NewJSONOutput(expenses, a.currency, 0, 0))
	}

	expenses, ok := internal.ListAll(expenses)
	if !ok {
		internal.PrintNotice(a.stdout, "No expenses found")
		return nil
	}
	internal.PrintExpensesTable(a.stdout, expenses, a.currency)
	return nil
}

func runDelete(a *app, id int) error {
	expenses, err := a.store.Load()
	if err != nil {
		return err
	}

	remaining, removed := internal.Delete(expenses, id)
	if removed {
		if err := a.store.Save(remaining); err != nil {
			return err
		}
	}

	switch {
	case a.json():
		return internal.WriteJSON(a.stdout, internal.JSONDeleteResult{ID: id, Deleted: removed})
	case removed:
		internal.PrintSuccess(a.stdout, "Expense deleted successfully (ID: %d)", id)
	default:
		internal.PrintNotice(a.stdout, "Expense with ID %d not found", id)
	}
	return nil
}

func runSummary(a *app) error {
	expenses, err := a.store.Load()
	if err != nil {
		return err
	}

	if a.json() {
		return internal.WriteJSON(a.stdout, internal.NewJSONOutput(expenses, a.currency, 0, 0))
	}
	if len(expenses) == 0 {
		internal.PrintNotice(a.stdout, "No expenses found")
		return nil
	}
	internal.PrintTotal(a.stdout, "Total expenses", internal.Total(expenses), a.currency)
	return nil
}

func runSummaryMonth(a *app, month, year int) error {
	if err := internal.ValidateMonth(month); err != nil {
		return err
	}

	expenses, err := a.store.Load()
	if err != nil {
		return err
	}

	if a.json() {
		matched := internal.FilterByMonth(expenses, month, year)
		return internal.WriteJSON(a.stdout, internal.NewJSONOutput(matched, a.currency, month, year))
	}

	var count int
	var total float64
	if year == 0 {
		count, total = internal.TotalForMonth(expenses, month)
	} else {
		matched := internal.FilterByMonth(expenses, month, year)
		count, total = len(matched), internal.Total(matched)
	}

	period := internal.MonthName(month)
	if year != 0 {
		period = fmt.Sprintf("%s %d", period, year)
	}
	if count == 0 {
		internal.PrintNotice(a.stdout, "No expenses found for %s", period)
		return nil
	}
	internal.PrintTotal(a.stdout, "Total expenses for "+period, total, a.currency)
	return nil
}

func runExport(a *app, path string) error {
	expenses, err := a.store.Load()
	if err != nil {
		return err
	}
	if err := internal.ExportXLSX(path, expenses); err != nil {
		return err
	}
	internal.PrintSuccess(a.stdout, "Exported %d expenses to %s", len(expenses), path)
	return nil
}

func runImport(a *app, source, arg string) error {
	source, path, err := internal.ResolveSource(source, arg)
	if err != nil {
		return err
	}
	importer, err := internal.GetImporter(source)
	if err != nil {
		return err
	}
	rows, err := importer.Import(path)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	expenses, err := a.store.Load()
	if err != nil {
		return err
	}

	added, expenses, skipped := a.store.Import(expenses, rows)
	if len(added) > 0 {
		if err := a.store.Save(expenses); err != nil {
			return err
		}
	}

	if a.json() {
		result := internal.JSONImportResult{Imported: []internal.JSONExpense{}, Skipped: skipped}
		for _, e := range added {
			result.Imported = append(result.Imported, internal.NewJSONExpense(e))
		}
		return internal.WriteJSON(a.stdout, result)
	}

	internal.PrintSuccess(a.stdout, "Imported %d expenses from %s", len(added), path)
	if skipped > 0 {
		internal.PrintNotice(a.stdout, "Skipped %d invalid rows", skipped)
	}
	return nil
}

func runConfigInit(w io.Writer, p *ConfigInitParams) error {
	path := p.Config
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	if path == "" {
		return errors.New("cannot determine home directory, use --config")
	}

	if _, err := os.Stat(path); err == nil && !p.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := internal.ConfigTemplate().Save(path); err != nil {
		return err
	}
	internal.PrintSuccess(w, "Wrote config template to %s", path)
	return nil
}
