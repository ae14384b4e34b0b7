package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mirzahilmi/amtrak-trains/internal/common/config"
	"github.com/mirzahilmi/amtrak-trains/internal/cryptojs"
	"github.com/mirzahilmi/amtrak-trains/internal/trains"
	"github.com/mirzahilmi/amtrak-trains/internal/trainsdata"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg config.Config
	run ulid.ULID
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string
	var all bool

	root := &cobra.Command{
		Use:           "amtrak",
		Short:         "Fetch and decrypt Amtrak's real-time train locations",
		Long:          "Fetches the encrypted track-a-train feed once, decrypts it and prints the first train feature.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			run = ulid.Make()
			setupLogger(cmd.ErrOrStderr(), cfg, run)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Feed.Timeout)
			defer cancel()

			a, err := setup(ctx, cfg, run)
			if err != nil {
				return err
			}
			fc, err := a.load(ctx)
			if err != nil {
				return err
			}
			return emitCollection(cmd.OutOrStdout(), fc, all)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "", "zerolog level")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.Flags().BoolVar(&all, "all", false, "print the whole feature collection")
	root.Flags().Bool("archive", false, "upload the decrypted collection to S3")
	_ = v.BindPFlag("archive.enabled", root.Flags().Lookup("archive"))

	root.AddCommand(
		newDecryptCommand(),
		newEncryptCommand(),
		newTrainsCommand(),
	)
	return root
}

func newDecryptCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "decrypt [file]",
		Short: "Decrypt a captured feed response from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Feed.Timeout)
			defer cancel()

			a, err := setup(ctx, cfg, run)
			if err != nil {
				return err
			}
			fc, err := a.decrypter.Decrypt(string(body))
			if err != nil {
				return err
			}
			return emitCollection(cmd.OutOrStdout(), fc, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print the whole feature collection")
	return cmd
}

func newEncryptCommand() *cobra.Command {
	var passphrase, privateKey string
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt stdin the way the feed does",
		Long: "With --key, encrypts stdin with a single passphrase. With --private-key, " +
			"builds a complete feed response around stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Feed.Timeout)
			defer cancel()

			a, err := setup(ctx, cfg, run)
			if err != nil {
				return err
			}

			var out string
			if privateKey != "" {
				stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
				out, err = a.decrypter.Encode(plain, privateKey, stamp)
			} else {
				out, err = cryptojs.Encrypt(string(plain), passphrase, a.decrypter.Params)
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out+"\n")
			return err
		},
	}
	cmd.Flags().StringVar(&passphrase, "key", "", "passphrase to encrypt with")
	cmd.Flags().StringVar(&privateKey, "private-key", "", "private key to build a feed response with")
	cmd.MarkFlagsMutuallyExclusive("key", "private-key")
	cmd.MarkFlagsOneRequired("key", "private-key")
	return cmd
}

func newTrainsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trains",
		Short: "Fetch the feed and print every train as typed JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Feed.Timeout)
			defer cancel()

			a, err := setup(ctx, cfg, run)
			if err != nil {
				return err
			}
			fc, err := a.load(ctx)
			if err != nil {
				return err
			}
			list, err := trains.FromCollection(fc)
			if err != nil {
				log.Warn().Err(err).Int("skipped", len(fc.Features)-len(list)).Msg("some features could not be read")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func emitCollection(w io.Writer, fc *trainsdata.FeatureCollection, all bool) error {
	if all {
		return emit(w, fc.Raw)
	}
	first, err := fc.First()
	if err != nil {
		return err
	}
	return emit(w, first)
}

func emit(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
