package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/bingo-server/internal/puzzle"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	root := &cobra.Command{
		Use:          "solve",
		Short:        "Solve puzzles from a file or stdin",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available puzzles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range puzzle.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	})

	for _, name := range puzzle.Names() {
		root.AddCommand(newPuzzleCmd(name, log))
	}

	return root
}

func newPuzzleCmd(name string, log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [file]",
		Short: "Solve the " + name + " puzzle",
		Long: "Solve the " + name + " puzzle. Input is read from file, " +
			"or from stdin when file is omitted or \"-\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"puzzle": name,
				"bytes":  len(input),
			}).Debug("solving")

			answer, err := puzzle.Solve(name, string(input))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "part 1: %d\n", answer.Part1)
			fmt.Fprintf(out, "part 2: %d\n", answer.Part2)
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
