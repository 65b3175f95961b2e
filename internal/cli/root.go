package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/linemk/coffee-shop/internal/app"
	"github.com/linemk/coffee-shop/internal/config"
	"github.com/linemk/coffee-shop/internal/lib/logger"
)

var (
	cfgPath string
	verbose bool

	// application is wired once per invocation in rootCmd's PersistentPreRunE
	// and shared by every subcommand.
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "coffeeshop",
	Short: "Storefront and back-office client for the coffee shop backend",
	Long: `coffeeshop talks to the coffee shop backend: browse the menu,
fill a cart and order from the terminal, or manage products,
categories and users with the admin commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		if verbose {
			log = logger.SetupLogger(cfg.Env)
		}

		application, err = app.NewApp(cmd.Context(), log, cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and state changes")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// prompt reads one line from in, trimmed. Callers asking several questions
// share one reader so buffered input is not lost between prompts.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question and treats anything but "y"/"yes" as no.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	answer, err := prompt(in, out, question+" [y/N] ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
