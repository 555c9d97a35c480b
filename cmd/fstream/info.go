package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstream/pkg/fstream"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the name and size of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fstream.OpenInput(args[0])
			if err != nil {
				return err
			}
			s = s.WithLogger(newLogger())

			cmd.Printf("name: %s\n", s.Name())
			cmd.Printf("path: %s\n", s.Path())
			cmd.Printf("size: %d\n", s.Size())
			return s.Close()
		},
	}
}
