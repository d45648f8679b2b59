package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clearway/teamsdb/internal/synthetic"
)

// SynthOptions holds flags for the synth command.
type SynthOptions struct {
	*RootOptions
	Out      string
	Seed     string
	RandSeed int64
}

// SynthResult holds the synth command output.
type SynthResult struct {
	Path          string `json:"path"`
	Users         int    `json:"users"`
	Conversations int    `json:"conversations"`
}

// NewSynthCommand creates the synth command.
func NewSynthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SynthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic snapshot",
		Long: `Generate a synthetic snapshot database for testing and demos.

The generated snapshot mimics a real client's persistence layer:
duplicated store copies with locale suffixes, conflicting record
versions, consumption horizons and profile stores. A YAML seed file
controls users and conversations; without one a built-in seed with
duplicates, unread tails and a hidden channel is used.

Generation is deterministic for a given seed and --rand-seed.

Examples:
  teamsdb synth --out ./snapshot.db
  teamsdb synth --out ./snapshot.db --seed seed.yaml --rand-seed 7`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "output path for snapshot database (required)")
	_ = cmd.MarkFlagRequired("out")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "path to YAML seed file (default: built-in seed)")
	cmd.Flags().Int64Var(&opts.RandSeed, "rand-seed", 1, "random seed for generated identifiers")

	return cmd
}

func runSynth(opts *SynthOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	seed := synthetic.DefaultSeed()
	if opts.Seed != "" {
		loaded, err := synthetic.LoadSeed(opts.Seed)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load seed", err)
		}
		seed = loaded
	}

	if err := synthetic.Generate(opts.Out, seed, opts.RandSeed); err != nil {
		return WrapExitError(ExitCommandError, "failed to generate snapshot", err)
	}

	result := SynthResult{
		Path:          opts.Out,
		Users:         len(seed.Users),
		Conversations: len(seed.Conversations),
	}

	return formatter.Emit(result, func(w io.Writer) error {
		fmt.Fprintf(w, "Snapshot written to %s (%d users, %d conversations)\n",
			result.Path, result.Users, result.Conversations)
		return nil
	})
}
