package export

import (
	"fmt"
	"log"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes rows to a CSV file at path, columns driven by the csv
// struct tags on Row
func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	log.Printf("Saved %d rows to %s", len(rows), path)
	return nil
}
