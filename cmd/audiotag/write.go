package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	audiotag "github.com/Changhuaishui/audio-tagger-sub000"
)

var (
	flagTitle    string
	flagArtist   string
	flagAlbum    string
	flagYear     string
	flagComment  string
	flagCover    string
	flagValidate bool
	flagKeepTime bool
)

var writeCmd = &cobra.Command{
	Use:   "write [flags] FILE...",
	Short: "Write metadata fields to one or more files",
	Long: `Write applies the given tag fields to each file. Blank flags are
skipped by default so a partial set of flags never erases existing
tags; pass --clear-blank to make blank values clear fields instead.

Fields the target container cannot encode are reported and skipped;
all other fields still commit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&flagTitle, "title", "", "title (©nam)")
	writeCmd.Flags().StringVar(&flagArtist, "artist", "", "artist (©ART)")
	writeCmd.Flags().StringVar(&flagAlbum, "album", "", "album (©alb)")
	writeCmd.Flags().StringVar(&flagYear, "year", "", "year/date (©day)")
	writeCmd.Flags().StringVar(&flagComment, "comment", "", "comment (©cmt)")
	writeCmd.Flags().StringVar(&flagCover, "cover", "", "path to a JPEG or PNG cover image")
	writeCmd.Flags().BoolVar(&flagValidate, "validate", false, "re-read and verify after writing")
	writeCmd.Flags().BoolVar(&flagKeepTime, "keep-mtime", false, "preserve the file modification time")

	rootCmd.AddCommand(writeCmd)
}

func buildFields() ([]audiotag.Field, error) {
	fields := []audiotag.Field{
		audiotag.Title(flagTitle),
		audiotag.Artist(flagArtist),
		audiotag.Album(flagAlbum),
		audiotag.Year(flagYear),
		audiotag.Comment(flagComment),
	}
	if flagCover != "" {
		data, err := os.ReadFile(flagCover)
		if err != nil {
			return nil, fmt.Errorf("read cover image: %w", err)
		}
		fields = append(fields, audiotag.Cover(data, ""))
	}
	return fields, nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	fields, err := buildFields()
	if err != nil {
		return err
	}
	opts := writeOptions(flagValidate, flagKeepTime)

	requests := make([]audiotag.Request, len(args))
	for i, path := range args {
		requests[i] = audiotag.Request{Path: path, Fields: fields, Options: opts}
	}

	var bar *progressbar.ProgressBar
	if len(requests) > 1 && !verbose {
		bar = progressbar.Default(int64(len(requests)), "writing")
	}

	outcomes := audiotag.WriteMany(cmd.Context(), requests)

	failed := 0
	for _, outcome := range outcomes {
		if bar != nil {
			bar.Add(1)
		}
		switch {
		case outcome.Err != nil:
			failed++
			log.Error().Str("file", outcome.Path).Err(outcome.Err).Msg("write failed")
		case outcome.Result.Partial():
			log.Warn().Str("file", outcome.Path).
				Strs("unsupported", outcome.Result.Unsupported).
				Msg("applied with unsupported fields skipped")
		case !outcome.Result.Changed():
			log.Debug().Str("file", outcome.Path).Msg("nothing to write")
		default:
			log.Debug().Str("file", outcome.Path).
				Strs("applied", outcome.Result.Applied).
				Int64("moov_delta", outcome.Result.Stats.MoovDelta).
				Bool("padding_absorbed", outcome.Result.Stats.PaddingAbsorbed).
				Int("offsets_patched", outcome.Result.Stats.OffsetsPatched).
				Bool("resized", outcome.Result.Stats.Resized).
				Msg("written")
		}
	}

	if errors.Is(cmd.Context().Err(), context.Canceled) {
		return cmd.Context().Err()
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
	}
	return nil
}
