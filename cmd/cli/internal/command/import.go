package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/tabular"
)

type importOptions struct {
	file      string
	mapping   string
	delimiter string
	sheet     string
	live      bool
	yes       bool
	preview   bool
}

func newImportCmd(deps Deps, flags *ledgerFlags) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Preview a bank export and, with --live, import it into the ledger",
		Example: `  ledgerbridge import -f export.csv -m rabobank.yaml --delimiter ';'
  ledgerbridge import -f export.xlsx --sheet Movimentos --live`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, deps, flags, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "CSV or XLSX bank export")
	f.StringVarP(&opts.mapping, "mapping", "m", "", "yaml mapping file (default: detect a known bank profile)")
	f.StringVarP(&opts.delimiter, "delimiter", "d", "", `CSV delimiter, one character or "tab" (default ",")`)
	f.StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	f.BoolVar(&opts.live, "live", false, "post the transactions to the ledger")
	f.BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation before a live import")
	f.BoolVar(&opts.preview, "preview", false, "print the first transactions of every group")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, deps Deps, flags *ledgerFlags, opts importOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	table, err := readTable(opts)
	if err != nil {
		return err
	}

	mf, source, err := resolveMapping(opts.mapping, table.Headers)
	if err != nil {
		return err
	}

	mapping, err := mf.Mapping.Config()
	if err != nil {
		return fmt.Errorf("mapping from %s: %w", source, err)
	}

	fmt.Fprintf(out, "%s: %d rows (%s), mapping from %s\n", filepath.Base(opts.file), len(table.Rows), table.Charset, source)

	svc := importer.NewService(deps.Connector)
	req := importer.Request{
		Rows:           table.Rows,
		Mapping:        mapping,
		GroupByColumn:  mf.GroupByColumn,
		AccountMapping: mf.Accounts,
		DryRun:         true,
		Ledger:         deps.Ledger.Resolve(mf.ledgerConfig(flags)),
	}

	preview, err := svc.Import(ctx, req)
	if err != nil {
		return fmt.Errorf("preview import: %w", err)
	}

	fmt.Fprint(out, renderSummary(preview, opts.preview))

	if !opts.live {
		fmt.Fprintln(out, "Dry run, nothing was imported. Pass --live to import.")
		return nil
	}

	if !opts.yes {
		question := fmt.Sprintf("Import %d transactions from %d groups?", preview.TotalTransactions-preview.TotalInvalid, len(preview.Groups))

		ok, err := deps.Confirm(question)
		if err != nil {
			return fmt.Errorf("confirm import: %w", err)
		}

		if !ok {
			fmt.Fprintln(out, "Import cancelled.")
			return nil
		}
	}

	req.DryRun = false

	var result *importer.Result

	err = withSpinner(ctx, out, "Importing into the ledger...", func(ctx context.Context) error {
		var err error
		result, err = svc.Import(ctx, req)

		return err
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(out, "Imported %d transactions into %d accounts.\n", result.TotalTransactions-result.TotalInvalid, len(result.Groups))

	return nil
}

func readTable(opts importOptions) (*tabular.Table, error) {
	delimiter, err := tabular.ParseDelimiter(opts.delimiter)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	table, err := tabular.Read(f, opts.file, delimiter, opts.sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.file, err)
	}

	return table, nil
}
