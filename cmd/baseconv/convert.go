package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/baseconv/internal/convert"
	"github.com/pdiddy/baseconv/internal/history"
	"github.com/pdiddy/baseconv/internal/logging"
	"github.com/pdiddy/baseconv/pkg/types"
)

var hex2decCmd = &cobra.Command{
	Use:   "hex2dec",
	Short: "Convert hexadecimal numbers to decimal",
	Long: `hex2dec reads a count followed by that many hexadecimal numbers and prints
each in decimal. Digits are case-insensitive; a 0x prefix is accepted.

  $ printf '3\nFF\n10\n0\n' | baseconv hex2dec
  255
  16
  0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, types.ModeHexToDec)
	},
}

var dec2hexCmd = &cobra.Command{
	Use:   "dec2hex",
	Short: "Convert decimal numbers to 8-digit hexadecimal",
	Long: `dec2hex reads a count followed by that many decimal numbers and prints
each as exactly 8 uppercase hexadecimal digits.

  $ printf '3\n255\n16\n0\n' | baseconv dec2hex
  000000FF
  00000010
  00000000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, types.ModeDecToHex)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert in the mode given by --mode or the config file",
	Long: `Convert runs hex2dec or dec2hex depending on --mode, the convert.mode
config key, or BASECONV_CONVERT_MODE. The default is hex2dec.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlag("convert.mode", cmd.Flags().Lookup("mode")); err != nil {
			return err
		}
		mode, err := types.ParseMode(viper.GetString("convert.mode"))
		if err != nil {
			return err
		}
		return runConvert(cmd, mode)
	},
}

func init() {
	convertCmd.Flags().String("mode", string(types.ModeHexToDec), "conversion mode: hex2dec or dec2hex")

	for _, cmd := range []*cobra.Command{hex2decCmd, dec2hexCmd, convertCmd} {
		cmd.Flags().String("input", "-", "read input from this file instead of stdin")
		cmd.Flags().Bool("keep-going", false, "report malformed tokens and continue (exit status is still 1)")
		cmd.Flags().Bool("json", false, "print each result as a JSON object")
		cmd.Flags().Bool("record", false, "append conversions to the history database")

		rootCmd.AddCommand(cmd)
	}
}

// bindConvertFlags points the convert.* keys at the running command's flags.
// The three conversion commands share keys, so binding happens per run.
func bindConvertFlags(cmd *cobra.Command) error {
	bindings := []struct{ key, flag string }{
		{"convert.keep_going", "keep-going"},
		{"convert.json", "json"},
		{"convert.record", "record"},
	}
	for _, b := range bindings {
		if err := viper.BindPFlag(b.key, cmd.Flags().Lookup(b.flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", b.flag, err)
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, mode types.Mode) error {
	if err := bindConvertFlags(cmd); err != nil {
		return err
	}
	cfg := types.ConvertConfig{
		Mode:      mode,
		KeepGoing: viper.GetBool("convert.keep_going"),
		JSON:      viper.GetBool("convert.json"),
		Record:    viper.GetBool("convert.record"),
	}

	inputPath, _ := cmd.Flags().GetString("input")
	in, err := openInput(cmd, inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx := logging.CtxAddKvs(cmd.Context(), "mode", mode)
	log := logging.LoggerOf(ctx)

	var recorded []types.Conversion
	opts := convert.Options{
		KeepGoing: cfg.KeepGoing,
		Errors:    cmd.ErrOrStderr(),
		JSON:      cfg.JSON,
		OnConvert: func(c types.Conversion) error {
			log.Debug("converted", zap.String("input", c.Input), zap.String("output", c.Output))
			if cfg.Record {
				recorded = append(recorded, c)
			}
			return nil
		},
	}

	res, runErr := convert.Run(ctx, mode, in, cmd.OutOrStdout(), opts)
	if res.HasFailures() {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%d converted, %d skipped (total: %d)\n",
			res.Converted, res.Failed, res.Total())
	}

	var recErr error
	if cfg.Record {
		recErr = recordHistory(cmd, recorded)
	}

	return errors.Join(runErr, recErr)
}

func recordHistory(cmd *cobra.Command, conversions []types.Conversion) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(cmd.Context(), conversions); err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	logging.L().Debug("recorded history",
		zap.Int("count", len(conversions)), zap.String("db", store.Path()))
	return nil
}

func openHistory() (*history.Store, error) {
	return history.Open(types.HistoryConfig{
		DBPath:     viper.GetString("history.db_path"),
		MaxResults: viper.GetInt("history.max_results"),
	})
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}
