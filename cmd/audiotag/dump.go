package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Changhuaishui/audio-tagger-sub000/internal/mp4"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the box tree of an MP4 file",
	Long:  `Dump walks the ISO-BMFF box structure and prints one indented line per box with its type, size, and offset. Useful for verifying what a rewrite actually produced.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return err
		}

		return mp4.Dump(cmd.OutOrStdout(), f, stat.Size(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
