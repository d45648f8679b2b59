package cli

import (
	"github.com/spf13/cobra"
)

// NewUnreadCommand creates the unread command.
func NewUnreadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "unread",
		Short: "List conversations with unread content",
		Long: `Extract conversations and keep only those with unread content.

Runs the same pass as list and then drops every conversation whose
unread count is zero. Ordering matches list: most recent first.

Examples:
  teamsdb unread --db ./snapshot.db
  teamsdb unread --db ./snapshot.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd, true)
		},
	}

	cmd.Flags().StringVar(&opts.Snapshot, "db", "", "path to snapshot database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "path to CUE rules file (default: built-in filters)")
	cmd.Flags().BoolVar(&opts.Messages, "messages", false, "include per-conversation messages in text output")

	return cmd
}
