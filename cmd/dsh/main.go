// Package main provides the datashell CLI application entry point.
// datashell is an interactive and batch shell for exploring structured data
// loaded from files and URLs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	shellcontext "datashell/internal/context"
	"datashell/internal/execution"
	"datashell/internal/logger"
	"datashell/internal/orchestration"
	"datashell/internal/output"
	"datashell/internal/shell"
	"datashell/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dsh",
	Short: "datashell - a shell for structured data",
	Long: `dsh is a shell for exploring structured data. Enter a JSON, YAML, TOML,
INI, XML, CSV, HCL or .env file (or URL) and it becomes the current context.`,
	Run: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Long:  `Start the interactive datashell.`,
	Run:   runShell,
}

var batchCmd = &cobra.Command{
	Use:   "batch <script.dsh>",
	Short: "Execute a .dsh script file in batch mode",
	Long: `Execute a .dsh script file without entering interactive mode.
Execution stops at the first failing line.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.String("cwd", "", "Directory the root context starts in [default: current directory]")

	for _, name := range []string{"log-level", "log-file", "test-mode", "cwd"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}
	viper.SetEnvPrefix("DSH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(viper.GetString("log-level"), viper.GetString("log-file"), viper.GetBool("test-mode")); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// setupEnvironment moves the root context to --cwd and initializes services.
func setupEnvironment() error {
	if cwd := viper.GetString("cwd"); cwd != "" {
		root, err := resolveRoot(cwd)
		if err != nil {
			return err
		}
		shellcontext.GetGlobalContext().ResetEnvironment(root)
	}
	return shell.InitializeServices(viper.GetBool("test-mode"))
}

func resolveRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid --cwd: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid --cwd: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid --cwd: %s is not a directory", abs)
	}
	return abs, nil
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting datashell", "version", version.Version)

	if err := setupEnvironment(); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}
	logger.Info("Services initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := output.ForTerminal(os.Stdout, viper.GetBool("test-mode"))
	printer.Info(version.GetFormattedVersion())
	printer.Info("Type '\\help' for commands or '\\exit' to quit.")

	sh := ishell.New()
	defer sh.Close()

	shell.Run(ctx, sh, execution.NewStateMachineWithDefaults(), printer)
}

func runBatch(_ *cobra.Command, args []string) {
	scriptPath := args[0]

	logger.Info("Starting datashell batch mode", "version", version.Version, "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		logger.Fatal("Script validation failed", "error", err)
	}

	if err := setupEnvironment(); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	if err := orchestration.ExecuteScript(context.Background(), scriptPath); err != nil {
		var scriptErr *orchestration.ScriptError
		if errors.As(err, &scriptErr) {
			output.ForTerminal(os.Stderr, viper.GetBool("test-mode")).Error(scriptErr.Diagnostic())
			os.Exit(1)
		}
		logger.Fatal("Script execution failed", "error", err)
	}

	logger.Info("Script executed successfully", "script", scriptPath)
}

func validateScriptFile(scriptPath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}

	if ext := filepath.Ext(scriptPath); ext != orchestration.ScriptExtension {
		return fmt.Errorf("script file must have %s extension, got: %s", orchestration.ScriptExtension, ext)
	}

	return nil
}
