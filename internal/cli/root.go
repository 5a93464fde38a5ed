package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "GETATOMS"

const (
	exitAtomsFound = 0
	exitNoAtoms    = 1
	exitFatal      = 2
)

var errNoAtoms = errbuilder.New().
	WithCode(errbuilder.CodeNotFound).
	WithMsg("no atoms found")

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	viper.Reset()
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		code := exitCodeForError(err)
		if code == exitFatal {
			fmt.Fprintf(stderr, "FATAL ERROR: %s\n", errorMessage(err))
		}
		return code
	}
	return exitAtomsFound
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	_ = viper.BindEnv("api_key", "APIKEY")
	_ = viper.BindEnv("test_file", "TESTFILE")

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("getatoms")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/getatoms")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging sends logs to errOut; stdout carries the atom list.
func setupLogging(level string, errOut io.Writer) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: errOut})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func exitCodeForError(err error) int {
	if err == nil {
		return exitAtomsFound
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeNotFound:
		return exitNoAtoms
	default:
		return exitFatal
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
