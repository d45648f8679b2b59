package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clearway/teamsdb/internal/extract"
	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/rules"
	"github.com/clearway/teamsdb/internal/snapshot"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Snapshot string
	Rules    string
	Messages bool
}

// ListResult holds the complete list output.
type ListResult struct {
	Conversations []model.Conversation `json:"conversations"`
	Total         int                  `json:"total"`
	Unread        int                  `json:"unread"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all conversations in a snapshot",
		Long: `Extract and list every conversation from a client snapshot.

Conversations are deduplicated across store copies, titled per thread
type, and ordered by last message time (most recent first). Meeting
sub-threads and internal system stores are filtered out by default;
pass --rules to change the filter set.

Examples:
  teamsdb list --db ./snapshot.db
  teamsdb list --db ./snapshot.db --messages
  teamsdb list --db ./snapshot.db --rules filters.cue --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd, false)
		},
	}

	cmd.Flags().StringVar(&opts.Snapshot, "db", "", "path to snapshot database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "path to CUE rules file (default: built-in filters)")
	cmd.Flags().BoolVar(&opts.Messages, "messages", false, "include per-conversation messages in text output")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command, unreadOnly bool) error {
	ctx := cmd.Context()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	r := rules.Default()
	if opts.Rules != "" {
		loaded, err := rules.Load(opts.Rules)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load rules", err)
		}
		r = loaded
	}

	snap, err := snapshot.Open(opts.Snapshot)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open snapshot", err)
	}
	defer snap.Close()

	formatter.VerboseLog("snapshot opened: %s", opts.Snapshot)

	ex := extract.New(snap, extract.WithRules(r))

	var convs []model.Conversation
	if unreadOnly {
		convs, err = ex.UnreadOnly(ctx)
	} else {
		convs, err = ex.Extract(ctx)
	}
	if err != nil {
		if extract.IsSnapshotUnavailable(err) {
			return WrapExitError(ExitCommandError, "snapshot unavailable", err)
		}
		return WrapExitError(ExitFailure, "extraction failed", err)
	}

	result := ListResult{Conversations: convs, Total: len(convs)}
	for _, c := range convs {
		if c.HasUnread() {
			result.Unread++
		}
	}

	return formatter.Emit(result, func(w io.Writer) error {
		return outputListText(w, result, opts.Messages)
	})
}

func outputListText(w io.Writer, result ListResult, withMessages bool) error {
	if result.Total == 0 {
		fmt.Fprintln(w, "No conversations found.")
		return nil
	}

	for _, c := range result.Conversations {
		marker := " "
		if c.HasUnread() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s [%s] %s\n", marker, c.ThreadType, c.Title)
		fmt.Fprintf(w, "    id: %s  last: %s  unread: %d\n", c.ID, c.LastMessageTime, c.UnreadCount)
		if withMessages {
			for _, m := range c.Messages {
				unread := ""
				if m.Unread {
					unread = " (unread)"
				}
				fmt.Fprintf(w, "    %s  %s: %s%s\n", m.Timestamp, m.SenderName, m.Content, unread)
			}
		}
	}

	fmt.Fprintf(w, "\n%d conversations, %d with unread content\n", result.Total, result.Unread)
	return nil
}
