package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/sheller/core"
	"github.com/josephlewis42/sheller/core/config"
	"github.com/josephlewis42/sheller/core/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string

	// exitCode is the status the process exits with after a shell session.
	exitCode int
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadShellConfig is like loadConfig but falls back to the built-in
// configuration if none was initialized.
func loadShellConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sheller",
	Short: "A minimal command shell",
	Long: `A minimal shell that runs every command on a line at once.

Commands are separated with ';' and a double quoted span is passed
to the program as a single argument. Type 'quit' to exit.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadShellConfig()
		if err != nil {
			return err
		}

		var events logger.EventRecorder = logger.NopEventRecorder{}
		if configuration.HasEventLog() {
			fd, err := configuration.OpenEventLog()
			if err != nil {
				return err
			}
			defer fd.Close()
			events = logger.NewJsonLinesLogRecorder(fd).NewSession()
		}

		shell := core.NewShell(configuration, events)
		shell.Stdout = cmd.OutOrStdout()
		shell.Stderr = cmd.ErrOrStderr()

		if cmd.Flags().Changed("command") {
			exitCode = shell.RunCommand(commandLine)
		} else {
			exitCode = shell.RunInteractive()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
}
