// Command eonreport parses a document-list XLSX report exported from e.on's
// customer portal and prints the rows, or the usage periods derived from
// them, as JSON.
// Usage: go run ./cmd/eonreport [-consumption] report.xlsx
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"rachunki/internal/xlsxreport"
)

func main() {
	consumption := flag.Bool("consumption", false, "print derived usage periods instead of raw rows")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: eonreport [-consumption] report.xlsx")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *consumption); err != nil {
		log.Fatal(err)
	}
}

func run(path string, consumption bool) error {
	records, err := xlsxreport.ParseReport(path)
	if err != nil {
		return err
	}

	var out any = records
	if consumption {
		out = xlsxreport.Consumption(records)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
