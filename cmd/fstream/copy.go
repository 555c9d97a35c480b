package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstream/pkg/fstream"
)

func newCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy a file through two buffered streams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := fstream.OpenInput(args[0])
			if err != nil {
				return err
			}
			src = src.WithLogger(newLogger())

			dst, err := fstream.OpenOutput(args[1])
			if err != nil {
				_ = src.Close()
				return err
			}
			dst = dst.WithLogger(newLogger())

			n, err := io.Copy(dst.Writer(), src.Reader())
			if err != nil {
				_ = src.Close()
				_ = dst.Close()
				return err
			}
			if err := src.Close(); err != nil {
				_ = dst.Close()
				return err
			}
			if err := dst.Close(); err != nil {
				return err
			}

			cmd.Printf("copied %d bytes from %s to %s\n", n, src.Name(), dst.Name())
			return nil
		},
	}
}
