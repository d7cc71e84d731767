package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/baseconv/internal/encode"
	"github.com/pdiddy/baseconv/internal/logging"
	"github.com/pdiddy/baseconv/pkg/types"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode RISC-V assembly into 32-bit instruction words",
	Long: `Encode assembles add, sub, and, or, addi, ld, sd, and beq. It writes an
annotated listing (each source line followed by # 0xXXXXXXXX) and an
executable image with one byte per line, most significant byte first.

Source is read from the named file, or stdin when omitted or "-". Lines that
fail to encode appear in the listing as "Line N: error" and make the exit
status 1; the remaining lines are still written.

  $ echo 'addi sp, sp, -16' | baseconv encode -o -
  addi sp, sp, -16                         # 0xFF010113`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringP("output", "o", "hex_instructions.s", `listing file ("-" for stdout)`)
	encodeCmd.Flags().StringP("executable", "e", "executable.s", "executable image file")

	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	for key, flag := range map[string]string{
		"encode.output":     "output",
		"encode.executable": "executable",
	} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	cfg := types.EncodeConfig{
		Output:     viper.GetString("encode.output"),
		Executable: viper.GetString("encode.executable"),
	}

	src := "-"
	if len(args) == 1 {
		src = args[0]
	}
	in, err := openInput(cmd, src)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx := logging.CtxAddKvs(cmd.Context(), "source", src)
	log := logging.LoggerOf(ctx)

	prog, err := encode.Assemble(ctx, in)
	if err != nil {
		return err
	}
	for _, l := range prog.Lines {
		if l.Err != nil {
			log.Debug("encode failed", zap.Int("line", l.Number), zap.Error(l.Err))
			continue
		}
		log.Debug("encoded", zap.Int("line", l.Number), zap.Uint32("word", l.Word))
	}

	if err := writeTo(cmd, cfg.Output, func(w io.Writer) error {
		return encode.WriteListing(w, prog)
	}); err != nil {
		return err
	}
	if cfg.Output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "listing written to %s\n", cfg.Output)
	}

	if err := writeTo(cmd, cfg.Executable, func(w io.Writer) error {
		return encode.WriteExecutable(w, prog.Words())
	}); err != nil {
		return err
	}
	if cfg.Executable != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "executable written to %s\n", cfg.Executable)
	}

	if n := prog.Failed(); n > 0 {
		for _, l := range prog.Lines {
			if l.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", l.Number, l.Err)
			}
		}
		return fmt.Errorf("%d of %d instructions failed to encode", n, len(prog.Lines))
	}
	return nil
}

// writeTo creates path and runs write on it; "-" means stdout.
func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
