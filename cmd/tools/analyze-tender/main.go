// cmd/tools/analyze-tender/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tender-workers/internal/eligibility"
	"tender-workers/internal/models"
	"tender-workers/internal/tenderstore"
)

// tenderFile is the JSON accepted by -file: the tender text plus optional
// spreadsheet exemption flags.
type tenderFile struct {
	models.TenderText
	ExcelMsmeExemption    bool `json:"excelMsmeExemption"`
	ExcelStartupExemption bool `json:"excelStartupExemption"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze-tender", flag.ContinueOnError)
	file := fs.String("file", "-", "Tender JSON file (- for stdin)")
	ceiling := fs.String("ceiling", "", "Company turnover ceiling in lakhs (e.g. 400)")
	types := fs.String("types", "", "Comma-separated project types (e.g. Software,Website)")
	keywords := fs.String("keywords", "", "Comma-separated negative keywords")
	similar := fs.String("similar", "", "Similar-category override")
	msme := fs.Bool("msme", false, "Force the MSME exemption flag")
	startup := fs.Bool("startup", false, "Force the startup exemption flag")
	pretty := fs.Bool("pretty", true, "Indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ceiling == "" || *types == "" {
		fs.Usage()
		return fmt.Errorf("ceiling and types are required")
	}

	policy, err := tenderstore.ParsePolicy(*ceiling, splitList(*types))
	if err != nil {
		return err
	}

	tender, err := readTender(*file, stdin)
	if err != nil {
		return err
	}

	negative := []models.NegativeKeyword{}
	for _, kw := range splitList(*keywords) {
		negative = append(negative, models.NegativeKeyword{Keyword: kw})
	}

	result := eligibility.Analyze(tender.TenderText, policy, negative, eligibility.Options{
		ExcelMsmeExemption:    tender.ExcelMsmeExemption || *msme,
		ExcelStartupExemption: tender.ExcelStartupExemption || *startup,
		SimilarCategory:       *similar,
	})

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func readTender(path string, stdin io.Reader) (tenderFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return tenderFile{}, fmt.Errorf("read tender: %w", err)
	}

	var tender tenderFile
	if err := json.Unmarshal(data, &tender); err != nil {
		return tenderFile{}, fmt.Errorf("parse tender: %w", err)
	}
	return tender, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
