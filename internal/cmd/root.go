package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stateful/webnb/internal/config/autoconfig"
	"github.com/stateful/webnb/internal/log"
)

var (
	fChdir       string
	fConfigPath  string
	fLogEnabled  bool
	fLogFilePath string
	fVerbose     bool
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:   "webnb",
		Short: "Convert web notebooks between markdown and cells",
		Long: `webnb reads markdown web notebooks, made of prose and fenced code cells with
addons, and turns them into cells and back without losing a byte.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Flush()
		},
	}

	setDefaultFlags(&cmd)

	setPersistentFlags(cmd.PersistentFlags())

	cmd.AddCommand(checkCmd())
	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(jsonCmd())
	cmd.AddCommand(printCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(serverCmd())
	cmd.AddCommand(watchCmd())

	return &cmd
}

func setPersistentFlags(pflags *pflag.FlagSet) {
	pflags.StringVar(&fChdir, "chdir", getCwd(), "Switch to a different working directory before executing the command.")
	pflags.StringVar(&fConfigPath, "config", "", "Path to a configuration file. Defaults to webnb.yaml in the working directory.")
	pflags.BoolVar(&fLogEnabled, "log", false, "Enable logging to a file.")
	pflags.StringVar(&fLogFilePath, "log-file", filepath.Join(os.TempDir(), "webnb.log"), "Log file path.")
	pflags.BoolVarP(&fVerbose, "verbose", "V", false, "Print debug logs to stderr.")
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func newBuilder() *autoconfig.Builder {
	opts := []autoconfig.BuilderOption{
		autoconfig.WithRoot(fChdir),
	}
	if fConfigPath != "" {
		opts = append(opts, autoconfig.WithConfigPath(fConfigPath))
	}

	logPath := ""
	if fLogEnabled {
		logPath = fLogFilePath
	}
	if logPath != "" || fVerbose {
		opts = append(opts, autoconfig.WithLogOverrides(logPath, fVerbose))
	}

	return autoconfig.NewBuilder(opts...)
}

func setDefaultFlags(cmd *cobra.Command) {
	usage := "Help for "
	if n := cmd.Name(); n != "" {
		usage += n
	} else {
		usage += "this command"
	}
	cmd.Flags().BoolP("help", "h", false, usage)

	// For the root command, set up the --version flag.
	if cmd.Use == "webnb" {
		cmd.Flags().BoolP("version", "v", false, "Version of webnb")
	}
}
