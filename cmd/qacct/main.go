// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/mdhender/qacct"
	"github.com/mdhender/qacct/config"
	"github.com/spf13/cobra"
)

// errReported is returned after a diagnostic has been printed,
// so main exits without printing it a second time.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			log.Printf("error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().String("config-file", "", "load configuration from file")
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", false, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:           "qacct",
		Short:         "Account range report definition tool",
		Long:          `Parse, check and format report definitions written in the account range language.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "qacct: version %q\n", qacct.Version().Core())
			}

			return nil
		},
	}
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdFmt())
	cmdRoot.AddCommand(cmdCheck())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}
	return cmdRoot
}

func cmdParse() *cobra.Command {
	var explicitStack bool
	var format string
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&explicitStack, "explicit-stack", explicitStack, "parse without recursion")
		cmd.Flags().StringVarP(&format, "format", "f", format, "output format (json or text)")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save parse to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "parse <report-definition-file>",
		Short: "parse a report definition and print the syntax tree",
		Args:  cobra.ExactArgs(1), // require path to the definition file
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("explicit-stack") {
				cfg.Parser.ExplicitStack = explicitStack
			}
			if format != "" {
				cfg.Output.Format = format
			}

			doc, err := parseFile(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch cfg.Output.Format {
			case config.FormatJSON:
				data, err = json.MarshalIndent(doc, "", cfg.Output.Indent)
				if err != nil {
					return fmt.Errorf("json: %w", err)
				}
				data = append(data, '\n')
			case config.FormatText:
				data = []byte(doc.String())
			default:
				return fmt.Errorf("unknown format %q", cfg.Output.Format)
			}

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			} else if err = os.WriteFile(outputFile, data, 0o644); err != nil {
				return err
			}
			if verbose(cmd) {
				log.Printf("%s: wrote %d bytes\n", outputFile, len(data))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdFmt() *cobra.Command {
	var write bool
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVarP(&write, "write", "w", write, "write result to the source file instead of stdout")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "fmt <report-definition-file>",
		Short: "print a report definition in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			doc, err := parseFile(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			var b bytes.Buffer
			if err := qacct.Format(&b, doc); err != nil {
				return err
			}
			if !write {
				_, err = cmd.OutOrStdout().Write(b.Bytes())
				return err
			}
			if err := os.WriteFile(args[0], b.Bytes(), 0o644); err != nil {
				return err
			}
			if verbose(cmd) {
				log.Printf("%s: formatted %d spans\n", args[0], len(doc))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdCheck() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "check <report-definition-file>...",
		Short: "report syntax errors in report definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			failed := 0
			for _, path := range args {
				if _, err := parseFile(cmd, cfg, path); err != nil {
					if !errors.Is(err, errReported) {
						return err
					}
					failed++
					continue
				}
				if !quiet {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				}
			}
			if failed != 0 {
				return errReported
			}
			return nil
		},
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), qacct.Version().String())
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), qacct.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func verbose(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose && !quiet
}

// parseFile parses the file at path. Syntax errors are printed to
// stderr as a diagnostic and errReported is returned.
func parseFile(cmd *cobra.Command, cfg *config.Config, path string) (qacct.Document, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	options := []qacct.Option{qacct.WithExplicitStack(cfg.Parser.ExplicitStack)}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		options = append(options, qacct.WithLogger(newDebugLogger(cmd.ErrOrStderr())))
	}

	doc, err := qacct.Parse(input, options...)
	var perr *qacct.ParseError
	if errors.As(err, &perr) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", path)
		_ = qacct.PrintDiagnostic(cmd.ErrOrStderr(), perr)
		return nil, errReported
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func newDebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
