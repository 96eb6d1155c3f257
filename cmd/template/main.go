// Command template writes the inventory upload template workbook to disk, so
// store staff have a correctly-headed file to fill in.
package main

import (
	"flag"
	"log"
	"os"

	"go-store-ledger/internal/service"
)

func main() {
	out := flag.String("o", "inventory_upload_template.xlsx", "output path")
	flag.Parse()

	exports := service.NewExportService(nil, nil)
	data, err := exports.TemplateWorkbook()
	if err != nil {
		log.Fatal("Failed to build template: ", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal("Failed to write template: ", err)
	}
	log.Println("Template written to", *out)
}
