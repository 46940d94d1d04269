package command

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/profile"
)

// mappingFile is the yaml document passed with --mapping.
//
//	mapping:
//	  date: {type: direct, column: Datum}
//	  amount: {type: direct, column: Bedrag}
//	  notes: {type: merge, columns: [Omschrijving-1, Omschrijving-2], separator: " / "}
//	groupByColumn: IBAN/BBAN
//	accounts:
//	  NL01RABO0123456789: 5b1f...
//	ledger:
//	  serverUrl: http://localhost:5007
//	  budgetId: my-budget
type mappingFile struct {
	Mapping       importer.MappingSpec `yaml:"mapping"`
	GroupByColumn string               `yaml:"groupByColumn"`
	Accounts      map[string]string    `yaml:"accounts"`
	Ledger        struct {
		ServerURL  string `yaml:"serverUrl"`
		Credential string `yaml:"credential"`
		BudgetID   string `yaml:"budgetId"`
	} `yaml:"ledger"`
}

func loadMappingFile(path string) (*mappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}

	return &mf, nil
}

// resolveMapping returns the mapping file at path or, when path is empty,
// the profile matching the file's headers.
func resolveMapping(path string, headers []string) (*mappingFile, string, error) {
	if path != "" {
		mf, err := loadMappingFile(path)
		if err != nil {
			return nil, "", err
		}

		return mf, path, nil
	}

	p, ok := profile.Detect(headers)
	if !ok {
		return nil, "", fmt.Errorf("%w: no --mapping given and the headers match no known bank profile", importer.ErrConfiguration)
	}

	return &mappingFile{Mapping: p.Mapping, GroupByColumn: p.GroupByColumn}, "profile " + p.Name, nil
}

// ledgerConfig layers flags over the mapping file; empty fields fall back to env later.
func (mf *mappingFile) ledgerConfig(flags *ledgerFlags) ledger.Config {
	cfg := ledger.Config{
		ServerURL:  mf.Ledger.ServerURL,
		Credential: mf.Ledger.Credential,
		BudgetID:   mf.Ledger.BudgetID,
	}

	if flags.server != "" {
		cfg.ServerURL = flags.server
	}

	if flags.budget != "" {
		cfg.BudgetID = flags.budget
	}

	return cfg
}
