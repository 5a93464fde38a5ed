package cli

import (
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"getatoms/internal/adapters"
	"getatoms/internal/app"
	"getatoms/internal/types"
)

const rootLong = `Get atoms from stabilisation and keywording bugs.

This tool requires a Bugzilla API key to operate, read from the envvar APIKEY.
Generate one at ` + adapters.APIKeyURL + `

If the variable TESTFILE is defined, the batch_stabilize-compatible output
will be written to that file as well.`

type getAtomsOptions struct {
	AllBugs       bool
	BugID         int
	Arch          string
	NoDepends     bool
	Security      bool
	Keywordreq    bool
	Stablereq     bool
	NoSanityCheck bool
	BugzillaURL   string
	BugsFile      string
	TimeoutSec    int
}

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	cfg := RootConfig{}
	opts := getAtomsOptions{}
	cmd := &cobra.Command{
		Use:           "getatoms",
		Short:         "Print atoms from Gentoo stabilisation and keywording bugs",
		Long:          rootLong,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"), stderr)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGetAtoms(cmd, opts, stdout, stderr)
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "warn", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.Flags().BoolVar(&opts.AllBugs, "all-bugs", false, "Process all bugs for the active architecture")
	cmd.Flags().IntVarP(&opts.BugID, "bug", "b", 0, "Bug to process")
	cmd.Flags().StringVarP(&opts.Arch, "arch", "a", "", "Target architecture (defaults to portage ARCH)")
	cmd.Flags().BoolVarP(&opts.NoDepends, "no-depends", "n", false, "Exclude bugs that depend on other unresolved bugs")
	cmd.Flags().BoolVarP(&opts.Security, "security", "s", false, "Fetch only security bugs")
	cmd.Flags().BoolVar(&opts.Keywordreq, "keywordreq", false, "Work on keywording bugs")
	cmd.Flags().BoolVar(&opts.Stablereq, "stablereq", false, "Work on stabilisation bugs")
	cmd.Flags().BoolVar(&opts.NoSanityCheck, "no-sanity-check", false, "Include bugs that are not marked as sanity checked")
	cmd.Flags().StringVar(&opts.BugzillaURL, "bugzilla-url", adapters.DefaultBugzillaURL, "Bugzilla base URL")
	cmd.Flags().StringVar(&opts.BugsFile, "bugs-file", "", "Read bugs from a YAML snapshot instead of Bugzilla")
	cmd.Flags().IntVar(&opts.TimeoutSec, "timeout", 0, "HTTP timeout in seconds (0 disables)")

	cmd.MarkFlagsOneRequired("all-bugs", "bug")
	cmd.MarkFlagsMutuallyExclusive("all-bugs", "bug")
	cmd.MarkFlagsMutuallyExclusive("keywordreq", "stablereq")

	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("no_depends", cmd.Flags().Lookup("no-depends"))
	_ = viper.BindPFlag("no_sanity_check", cmd.Flags().Lookup("no-sanity-check"))
	_ = viper.BindPFlag("bugzilla_url", cmd.Flags().Lookup("bugzilla-url"))
	_ = viper.BindPFlag("bugs_file", cmd.Flags().Lookup("bugs-file"))
	_ = viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))

	return cmd
}

func runGetAtoms(cmd *cobra.Command, opts getAtomsOptions, stdout io.Writer, stderr io.Writer) (err error) {
	ctx := log.Logger.WithContext(cmd.Context())
	bugsFile := resolveString(cmd, opts.BugsFile, "bugs_file", "bugs-file")
	apiKey := strings.TrimSpace(viper.GetString("api_key"))
	if apiKey == "" && bugsFile == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("Gentoo Bugzilla API key not defined.\n" +
				"Generate one at " + adapters.APIKeyURL + " and export in envvar APIKEY.")
	}

	report := adapters.NewReportWriter(stdout, stderr, viper.GetString("test_file"))
	defer func() {
		if err != nil {
			report.Discard()
		}
		if closeErr := report.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	service := app.NewService(app.ServiceConfig{
		Arch:        resolveString(cmd, opts.Arch, "arch", "arch"),
		BugzillaURL: resolveString(cmd, opts.BugzillaURL, "bugzilla_url", "bugzilla-url"),
		APIKey:      apiKey,
		TimeoutSec:  resolveInt(cmd, opts.TimeoutSec, "timeout", "timeout"),
		BugsFile:    bugsFile,
	}, report)

	result, err := service.GetAtoms(ctx, app.GetAtomsRequest{
		AllBugs:         opts.AllBugs,
		BugID:           opts.BugID,
		Family:          componentFamily(opts),
		SecurityOnly:    opts.Security,
		NoDepends:       resolveBool(cmd, opts.NoDepends, "no_depends", "no-depends"),
		SkipSanityCheck: resolveBool(cmd, opts.NoSanityCheck, "no_sanity_check", "no-sanity-check"),
	})
	if err != nil {
		return err
	}
	if !result.AtomsEmitted {
		return errNoAtoms
	}
	return nil
}

func componentFamily(opts getAtomsOptions) types.ComponentFamily {
	switch {
	case opts.Keywordreq:
		return types.ComponentFamilyKeywordreq
	case opts.Stablereq:
		return types.ComponentFamilyStablereq
	default:
		return types.ComponentFamilyAny
	}
}
