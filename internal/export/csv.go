package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/job-scalper/internal/models"
)

// WriteCSV writes a title,link header followed by one row per posting.
func WriteCSV(w io.Writer, postings []models.JobPosting) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"title", "link"}); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}
	for _, p := range postings {
		if err := writer.Write([]string{p.Title, p.Link}); err != nil {
			return fmt.Errorf("error writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteCSVFile(path string, postings []models.JobPosting) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(file, postings); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
