package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clearway/teamsdb/internal/classify"
	"github.com/clearway/teamsdb/internal/snapshot"
)

// StoresOptions holds flags for the stores command.
type StoresOptions struct {
	*RootOptions
	Snapshot string
}

// StoreInfo describes one raw store and its classified domain.
type StoreInfo struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// StoresResult holds the complete stores output.
type StoresResult struct {
	Stores []StoreInfo `json:"stores"`
	Total  int         `json:"total"`
}

// NewStoresCommand creates the stores command.
func NewStoresCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoresOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List raw stores in a snapshot",
		Long: `List every raw store name present in a snapshot, with the domain
each name classifies into (conversation, replychain, readmarker,
profile, or unclassified).

Useful for inspecting which store copies a client version left behind
before running a full extraction.

Examples:
  teamsdb stores --db ./snapshot.db
  teamsdb stores --db ./snapshot.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStores(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Snapshot, "db", "", "path to snapshot database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStores(opts *StoresOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	snap, err := snapshot.Open(opts.Snapshot)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open snapshot", err)
	}
	defer snap.Close()

	names, err := snap.Stores(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list stores", err)
	}

	result := StoresResult{Total: len(names)}
	for _, name := range names {
		result.Stores = append(result.Stores, StoreInfo{
			Name:   name,
			Domain: classify.Classify(name).String(),
		})
	}

	return formatter.Emit(result, func(w io.Writer) error {
		if result.Total == 0 {
			fmt.Fprintln(w, "No stores found.")
			return nil
		}
		for _, s := range result.Stores {
			fmt.Fprintf(w, "%-14s %s\n", s.Domain, s.Name)
		}
		fmt.Fprintf(w, "\n%d stores\n", result.Total)
		return nil
	})
}
