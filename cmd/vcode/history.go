package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/vcode/internal/config"
	"github.com/jask/vcode/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently completed codes from the journal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Decode(v)
		if err != nil {
			return err
		}
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()
		entries, err := j.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("list journal: %w", err)
		}
		writeHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of entries to show")
}

func writeHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no entries")
		return
	}
	for _, e := range entries {
		value := e.Value
		if e.Masked {
			value = strings.Repeat("•", e.Length)
		}
		fmt.Fprintf(w, "%s  %-8s  %-2d  %s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Kind, e.Length, value, shortID(e.SessionID))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
