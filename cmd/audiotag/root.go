package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	audiotag "github.com/Changhuaishui/audio-tagger-sub000"
)

var (
	cfgFile string
	verbose bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "audiotag",
	Short: "Edit audio file metadata in place",
	Long: `audiotag rewrites iTunes-style metadata atoms inside M4A/MP4 files
without remuxing, and ID3 tags in MP3 files. Edits that fit in the
reserved padding never change the file length; larger edits go through
a staged temp file and an atomic rename, so an interrupted write can
never corrupt the original.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initConfig()
		initLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.audiotag.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every pipeline stage")

	rootCmd.PersistentFlags().Int("padding", 32*1024, "free-box capacity reserved in files that have none")
	rootCmd.PersistentFlags().String("backup", "", "keep the original under this suffix (e.g. .bak)")
	rootCmd.PersistentFlags().Bool("clear-blank", false, "blank values clear existing tags instead of being skipped")

	viper.BindPFlag("padding", rootCmd.PersistentFlags().Lookup("padding"))
	viper.BindPFlag("backup_suffix", rootCmd.PersistentFlags().Lookup("backup"))
	viper.BindPFlag("clear_on_blank", rootCmd.PersistentFlags().Lookup("clear-blank"))

	info := audiotag.GetVersionInfo()
	rootCmd.SetVersionTemplate("audiotag {{.Version}}\n")
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s, %s)",
		info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".audiotag")
		}
	}

	viper.SetEnvPrefix("AUDIOTAG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// writeOptions assembles the library options from config and flags.
func writeOptions(validate, preserveModTime bool) []audiotag.WriteOption {
	opts := []audiotag.WriteOption{
		audiotag.WithPadding(viper.GetInt("padding")),
	}
	if suffix := viper.GetString("backup_suffix"); suffix != "" {
		opts = append(opts, audiotag.WithBackup(suffix))
	}
	if viper.GetBool("clear_on_blank") {
		opts = append(opts, audiotag.WithClearOnBlank())
	}
	if validate {
		opts = append(opts, audiotag.WithValidation())
	}
	if preserveModTime {
		opts = append(opts, audiotag.WithPreserveModTime())
	}
	return opts
}
