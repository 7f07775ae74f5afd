package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/fatih/color"
	"github.com/jckuester/vpcsweeper/internal"
	"github.com/jckuester/vpcsweeper/pkg/ec2"
	"github.com/jckuester/vpcsweeper/pkg/resource"
	flag "github.com/spf13/pflag"
)

func main() {
	os.Exit(mainExitCode())
}

func mainExitCode() int {
	flags, cfg := newFlagSet()

	err := flags.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// the Parse function prints already an error + help message, so we don't want to output it here again
		log.WithError(err).Debug("failed to parse command line arguments")
		return 1
	}

	internal.SetupLogging(os.Stderr, cfg.debug)

	fmt.Println()
	defer fmt.Println()

	if cfg.version {
		fmt.Println(internal.BuildVersionString())
		return 0
	}

	err = cfg.resolve(flags.Args())
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("Error: %s\n", err))
		printHelp(flags)

		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	awsCfg, err := ec2.LoadConfig(ctx, cfg.region, cfg.profile)
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("Error: %s\n", err))
		return 1
	}

	identity, err := ec2.VerifyCredentials(ctx, sts.NewFromConfig(awsCfg))
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("Error: %s\n", err))
		return 1
	}

	log.WithFields(log.Fields{
		"account": identity.Account,
		"region":  awsCfg.Region,
	}).Debug("verified credentials")

	client := ec2.NewFromConfig(awsCfg)

	internal.LogTitle(fmt.Sprintf("showing resources of %s that would be deleted (dry run)", cfg.vpcID))

	report, err := resource.NewTeardown(client, append(cfg.options(), resource.WithDryRun(true))...).
		Run(ctx, cfg.vpcID)
	if err != nil {
		printRunError(err)
		return 1
	}

	err = resource.Print(os.Stdout, report, cfg.outputType)
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("Error: %s\n", err))
		return 1
	}

	internal.LogTitle(fmt.Sprintf("total number of resources that would be deleted: %d", numToDelete(report)))

	if cfg.dryRun {
		return 0
	}

	if !cfg.force && !internal.IsTerminal(os.Stdin) {
		fmt.Fprint(os.Stderr, color.RedString("Error: cannot ask for confirmation, stdin is not a terminal (use --force)\n"))
		return 1
	}

	if !internal.UserConfirmedDeletion(os.Stdin, cfg.force) {
		return 0
	}

	internal.LogTitle(fmt.Sprintf("starting to delete %s", cfg.vpcID))

	report, err = resource.NewTeardown(client, cfg.options()...).Run(ctx, cfg.vpcID)
	if err != nil {
		printRunError(err)
		return 1
	}

	err = resource.Print(os.Stdout, report, cfg.outputType)
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("Error: %s\n", err))
		return 1
	}

	internal.LogTitle("summary")
	internal.LogCount("deleted", report.Count(resource.Deleted))
	internal.LogCount("already gone", report.Count(resource.AlreadyGone))
	internal.LogCount("skipped", report.Count(resource.Skipped))
	internal.LogCount("failed", report.Count(resource.Failed))

	switch {
	case report.Cancelled:
		log.Warn("run was cancelled before all resources were deleted, run again to continue")
	case !report.Complete():
		log.Warn("VPC could not be deleted completely, run again to retry")
	default:
		internal.LogTitle(fmt.Sprintf("%s deleted", cfg.vpcID))
	}

	return 0
}

// numToDelete counts the resources a real run would attempt to delete, including the VPC.
func numToDelete(r *resource.Report) int {
	n := 0
	for _, e := range r.All() {
		if !e.Ref.IsDefault {
			n++
		}
	}
	return n
}

func printRunError(err error) {
	switch {
	case errors.Is(err, resource.ErrNetworkNotFound):
		fmt.Fprint(os.Stderr, color.RedString("Error: %s (already deleted?)\n", err))
	default:
		fmt.Fprint(os.Stderr, color.RedString("Error: %s\n", err))
	}
}

type config struct {
	vpcID        string
	region       string
	profile      string
	dryRun       bool
	force        bool
	debug        bool
	version      bool
	outputType   string
	parallel     int
	timeout      time.Duration
	waitTimeout  time.Duration
	pollInterval time.Duration
	maxRetries   uint64
}

func newFlagSet() (*flag.FlagSet, *config) {
	cfg := &config{}

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	flags.Usage = func() {
		printHelp(flags)
	}

	flags.StringVarP(&cfg.vpcID, "vpc-id", "v", "", "The ID of the VPC to delete")
	flags.StringVarP(&cfg.region, "region", "r", "", "The region of the VPC")
	flags.StringVar(&cfg.profile, "profile", "", "The AWS named profile to use as credential")
	flags.StringVar(&cfg.outputType, "output", "string", "The type of output result (String, JSON or YAML)")
	flags.BoolVar(&cfg.dryRun, "dry-run", false, "Don't delete anything, just show what would be deleted")
	flags.BoolVar(&cfg.force, "force", false, "Delete without asking for confirmation")
	flags.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&cfg.version, "version", false, "Show application version")
	flags.IntVar(&cfg.parallel, "parallel", resource.DefaultParallel,
		"Limit the number of concurrent delete operations per resource type")
	flags.DurationVar(&cfg.timeout, "timeout", 0, "Cancel the whole run after this amount of time (0 means no limit)")
	flags.DurationVar(&cfg.waitTimeout, "wait-timeout", resource.DefaultWaitTimeout,
		"Amount of time to wait for a NAT gateway or instance to be deleted")
	flags.DurationVar(&cfg.pollInterval, "poll-interval", resource.DefaultPollInterval,
		"Interval in which the state of a NAT gateway or instance is checked while waiting")
	flags.Uint64Var(&cfg.maxRetries, "max-retries", resource.DefaultMaxRetries,
		"The maximum number of retries of a throttled AWS API request")

	return flags, cfg
}

// resolve takes the VPC ID from the positional argument, if not set as flag,
// and validates the combination of flags.
func (c *config) resolve(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("only one VPC ID expected, got: %s", strings.Join(args, " "))
	}

	if len(args) == 1 {
		if c.vpcID != "" && c.vpcID != args[0] {
			return fmt.Errorf("VPC ID given twice: %s and %s", c.vpcID, args[0])
		}
		c.vpcID = args[0]
	}

	if c.vpcID == "" {
		return errors.New("VPC ID expected")
	}

	if !strings.HasPrefix(c.vpcID, "vpc-") {
		return fmt.Errorf("invalid VPC ID: %s", c.vpcID)
	}

	if c.force && c.dryRun {
		return errors.New("--force and --dry-run flag cannot be used together")
	}

	switch strings.ToLower(c.outputType) {
	case "string", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output type: %s", c.outputType)
	}

	if c.parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1, got: %d", c.parallel)
	}

	if c.pollInterval <= 0 {
		return fmt.Errorf("--poll-interval must be positive, got: %s", c.pollInterval)
	}

	return nil
}

func (c *config) options() []resource.Option {
	return []resource.Option{
		resource.WithParallel(c.parallel),
		resource.WithWaitTimeout(c.waitTimeout),
		resource.WithPollInterval(c.pollInterval),
		resource.WithMaxRetries(c.maxRetries),
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Fprint(os.Stderr, "\n"+strings.TrimSpace(help)+"\n")
	fs.PrintDefaults()
	fmt.Println()
}

const help = `
Delete an AWS VPC and all resources in it.

USAGE:
  $ vpcsweeper [flags] <vpc-id>

FLAGS:
`
