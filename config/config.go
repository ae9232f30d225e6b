package config

import (
	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
)

var (
	// VERSION gets set during build
	VERSION = "0.0.0"
)

type Config struct {
	CLI *CLI
}

type CLI struct {
	Path   string `kong:"arg,help='Path to the gzip file',type='existingfile'"`
	Output string `kong:"help='Write decompressed data to this file instead of stdout',type='path',short='o'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Quiet   bool             `kong:"help='Only log errors',short='q'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v"`

	// Internal bits
	Ctx *kong.Context `kong:"-"`
}

func NewConfig(args []string) (*Config, error) {
	cli, err := readCLIArgs(args)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	return &Config{
		CLI: cli,
	}, nil
}

func readCLIArgs(args []string) (*CLI, error) {
	cli := &CLI{}

	parser, err := kong.New(cli,
		kong.Name("gunzip"),
		kong.Description("Decompress gzip files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
		})
	if err != nil {
		return nil, errors.Wrap(err, "unable to build parser")
	}

	cli.Ctx, err = parser.Parse(args)
	if err != nil {
		return nil, err
	}

	if err := validateCLIArgs(cli); err != nil {
		return nil, errors.Wrap(err, "error validating args")
	}

	return cli, nil
}

func validateCLIArgs(cli *CLI) error {
	if cli.Debug && cli.Quiet {
		return errors.New("--debug and --quiet cannot be used together")
	}

	if cli.Output != "" && cli.Output == cli.Path {
		return errors.New("output cannot overwrite the input file")
	}

	return nil
}
