package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dyne/atbash/internal/clip"
	"github.com/dyne/atbash/internal/i18n"
	"github.com/dyne/atbash/internal/textfile"
	"github.com/dyne/atbash/internal/theme"
	"github.com/dyne/atbash/internal/transform"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

func transformCmd(rootOpts *globalOptions) *cobra.Command {
	var inPath string
	var outPath string
	var cipher string
	var copyOut bool
	var nfc bool
	cmd := &cobra.Command{
		Use:     "transform [text...]",
		Aliases: []string{"encrypt", "decrypt"},
		Short:   "Cipher text from arguments, a file or stdin",
		Long: "Cipher text from arguments, --in, or stdin. Atbash is its own inverse,\n" +
			"so the same command encrypts and decrypts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 && inPath != "" {
				return fmt.Errorf("give text either as arguments or with --in, not both")
			}
			input, err := readInput(cmd, s, args, inPath)
			if err != nil {
				return err
			}
			if nfc || s.cfg.Normalize {
				input = norm.NFC.String(input)
			}
			name := cipher
			if name == "" {
				name = s.cfg.CipherName()
			}
			tr, err := transform.ByName(name)
			if err != nil {
				return err
			}
			out, err := tr.Transform(input, transform.RowContext{})
			if err != nil {
				return err
			}
			output, ok := out.(string)
			if !ok {
				return fmt.Errorf("cipher %s returned %T, want string", tr.Name(), out)
			}
			s.logger.Debugf("%s: %d runes", tr.Name(), len([]rune(input)))

			styler := theme.NewStyler(cmd.ErrOrStderr(), s.mode)
			if outPath != "" {
				written, err := textfile.Save(outPath, output)
				if err != nil {
					return s.errorf(i18n.SaveError, err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), styler.Feedback(s.text(i18n.SavedTo)+": "+written))
			} else {
				printed := output
				if len(args) > 0 && !strings.HasSuffix(printed, "\n") {
					printed += "\n"
				}
				if _, err := io.WriteString(cmd.OutOrStdout(), printed); err != nil {
					return err
				}
			}
			if copyOut {
				copied, err := clip.Copy(rootOpts.clipboard, output)
				if err != nil {
					return err
				}
				if copied {
					fmt.Fprintln(cmd.ErrOrStderr(), styler.Feedback(s.text(i18n.CopyFeedback)))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "read text from file")
	cmd.Flags().StringVar(&outPath, "out", "", "write result to file (.txt is appended when missing)")
	cmd.Flags().StringVar(&cipher, "cipher", "", "cipher name ("+strings.Join(transform.Names(), ", ")+")")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the result to the clipboard")
	cmd.Flags().BoolVar(&nfc, "nfc", false, "compose decomposed Hangul jamo into syllables first")
	return cmd
}

func readInput(cmd *cobra.Command, s *settings, args []string, inPath string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case inPath != "":
		text, err := textfile.Load(inPath)
		if err != nil {
			return "", s.errorf(i18n.LoadError, err)
		}
		return text, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
