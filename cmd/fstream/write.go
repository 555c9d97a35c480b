package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstream/pkg/fstream"
)

func newWriteCommand() *cobra.Command {
	var truncate bool
	var at uint64

	cmd := &cobra.Command{
		Use:   "write <file>",
		Short: "Write stdin to a file through the stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fstream.OpenFile(args[0], truncate, fstream.Write)
			if err != nil {
				return err
			}
			s = s.WithLogger(newLogger())

			if at > 0 {
				if err := s.Seek(at); err != nil {
					_ = s.Close()
					return err
				}
			}

			n, err := io.Copy(s.Writer(), os.Stdin)
			if err != nil {
				_ = s.Close()
				return err
			}
			if err := s.Close(); err != nil {
				return err
			}

			cmd.Printf("wrote %d bytes to %s\n", n, s.Name())
			return nil
		},
	}

	cmd.Flags().BoolVar(&truncate, "truncate", false, "truncate existing content before writing")
	cmd.Flags().Uint64Var(&at, "at", 0, "absolute offset to start writing at")
	return cmd
}
