package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstream/pkg/fstream"
)

func newCatCommand() *cobra.Command {
	var from uint64

	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Stream a file's bytes to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fstream.OpenInput(args[0])
			if err != nil {
				return err
			}
			s = s.WithLogger(newLogger())

			if from > 0 {
				if err := s.Seek(from); err != nil {
					_ = s.Close()
					return err
				}
			}

			if _, err := io.Copy(cmd.OutOrStdout(), s.Reader()); err != nil {
				_ = s.Close()
				return err
			}
			return s.Close()
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 0, "absolute offset to start reading at")
	return cmd
}
