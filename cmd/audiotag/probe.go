package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/spf13/cobra"

	audiotag "github.com/Changhuaishui/audio-tagger-sub000"
	"github.com/Changhuaishui/audio-tagger-sub000/internal/mp4"
)

var probeCmd = &cobra.Command{
	Use:   "probe FILE...",
	Short: "Show container kind, writability, and current tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, path := range args {
			if err := probeFile(out, path); err != nil {
				log.Error().Str("file", path).Err(err).Msg("probe failed")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func probeFile(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	kind, err := audiotag.DetectContainer(f, stat.Size(), path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return nil
	}

	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "  container: %s\n", kind)
	fmt.Fprintf(out, "  writable:  %v\n", audiotag.IsSupportedContainer(path))

	if kind == audiotag.ContainerMP4 {
		tags, err := mp4.ReadTags(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  title:     %s\n", tags.Title)
		fmt.Fprintf(out, "  artist:    %s\n", tags.Artist)
		fmt.Fprintf(out, "  album:     %s\n", tags.Album)
		fmt.Fprintf(out, "  year:      %s\n", tags.Year)
		fmt.Fprintf(out, "  comment:   %s\n", tags.Comment)
		if len(tags.Cover) > 0 {
			fmt.Fprintf(out, "  cover:     %s (%d bytes)\n", tags.CoverMIME, len(tags.Cover))
		}
		return nil
	}

	// Non-MP4 containers: read through the independent tag library.
	m, err := tag.ReadFrom(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  title:     %s\n", m.Title())
	fmt.Fprintf(out, "  artist:    %s\n", m.Artist())
	fmt.Fprintf(out, "  album:     %s\n", m.Album())
	if m.Year() != 0 {
		fmt.Fprintf(out, "  year:      %d\n", m.Year())
	}
	return nil
}
