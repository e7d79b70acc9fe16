package util

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
)

// Marshals a slice of gocsv-tagged structs and prints it as a borderless table
func MarshalAndPrintTable(writer io.Writer, in interface{}) error {
	csvContent, err := gocsv.MarshalString(in)
	if err != nil {
		return err
	}

	rows, err := csv.NewReader(strings.NewReader(csvContent)).ReadAll()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetRowLine(false)
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetColumnSeparator("")

	for i, row := range rows {
		if i == 0 {
			table.SetHeader(row)
		} else {
			table.Append(row)
		}
	}

	table.Render()
	return nil
}
