package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"eyeset/internal/dataset"
	"eyeset/internal/labeling"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

var titleCaser = cases.Title(language.English)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderBucketTable lays out per-subset, per-label counts:
//
//	Subset | Open | Closed | Total
func renderBucketTable(counts dataset.BucketCounts) string {
	headers := []string{"Subset"}
	aligns := []columnAlignment{alignLeft}
	for _, label := range labeling.All {
		headers = append(headers, titleCaser.String(string(label)))
		aligns = append(aligns, alignRight)
	}
	headers = append(headers, "Total")
	aligns = append(aligns, alignRight)

	countRow := func(name string, labels dataset.LabelCounts) []string {
		row := []string{name}
		for _, label := range labeling.All {
			row = append(row, strconv.Itoa(labels.Get(label)))
		}
		return append(row, strconv.Itoa(labels.Total()))
	}

	rows := make([][]string, 0, len(dataset.Subsets)+1)
	for _, subset := range dataset.Subsets {
		rows = append(rows, countRow(string(subset), counts.Subset(subset)))
	}
	rows = append(rows, countRow("all", counts.Labels()))

	return renderTable(headers, rows, aligns)
}
