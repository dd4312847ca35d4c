package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/seenimoa/edgardash/internal/labels"
	"github.com/seenimoa/edgardash/internal/state"
	"github.com/seenimoa/edgardash/pkg/models"
	"github.com/seenimoa/edgardash/pkg/utils"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// newTable returns a tab-aligned writer with the given header row.
func newTable(headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	return w
}

func row(w *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

// snapErr turns a recorded state error into a command error.
func snapErr(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printList renders one page of a search, or its JSON form.
func printList[T any](ls state.ListState[T], headers []string, render func(T) []any) error {
	if err := snapErr(ls.Error); err != nil {
		return err
	}
	if asJSON {
		return printJSON(ls)
	}
	if len(ls.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	w := newTable(headers...)
	for _, item := range ls.Results {
		row(w, render(item)...)
	}
	w.Flush()
	fmt.Printf("\nPage %d of %d · %d total\n", ls.Page+1, max(ls.TotalPages, 1), ls.TotalElements)
	return nil
}

func printFilings(filings []models.Filing) {
	w := newTable("DATE", "FORM", "CIK", "COMPANY", "ACCESSION")
	for _, f := range filings {
		row(w, f.FilingDate, f.FormType, utils.TrimCIK(f.CIK), f.CompanyName, f.AccessionNumber)
	}
	w.Flush()
}

func printJobs(jobs []models.DownloadJob) {
	if len(jobs) == 0 {
		fmt.Println("No download jobs.")
		return
	}
	w := newTable("ID", "TYPE", "STATUS", "PROGRESS", "ITEMS", "CREATED")
	for _, j := range jobs {
		row(w, j.ID, j.Type, labels.StatusIcon(j.Status)+" "+string(j.Status),
			fmt.Sprintf("%.0f%%", j.Progress),
			fmt.Sprintf("%d/%d", j.ProcessedItems, j.TotalItems), orDash(j.CreatedAt))
	}
	w.Flush()
}

func printJob(j models.DownloadJob) {
	fmt.Printf("%s %s job %s: %s (%.0f%%, %d/%d items)\n",
		labels.StatusIcon(j.Status), j.Type, j.ID, j.Status, j.Progress, j.ProcessedItems, j.TotalItems)
	if j.ErrorMessage != "" {
		fmt.Printf("   error: %s\n", j.ErrorMessage)
	}
}
