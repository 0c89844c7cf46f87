package parser

import "github.com/ukaji3/examgrid-go/pkg/examgrid/models"

func grid(rows ...[]string) [][]models.Cell {
	return models.NewRawSheet("t", rows, nil).Rows
}

func sheet(name string, rows ...[]string) *models.RawSheet {
	return models.NewRawSheet(name, rows, nil)
}

func noTrace(string, string, float64, string) {}

func columnByHeader(cols []models.Column, header string) string {
	for _, c := range cols {
		if c.Header == header {
			return c.Key
		}
	}
	return ""
}
