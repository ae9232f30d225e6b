package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/32bitkid/inflate"
	"github.com/32bitkid/inflate/config"
	"github.com/32bitkid/inflate/decompression"
)

func main() {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}

	if cfg.CLI.Debug {
		logrus.Info("debug mode enabled")
		logrus.SetLevel(logrus.DebugLevel)
	}

	if cfg.CLI.Quiet {
		logrus.SetLevel(logrus.ErrorLevel)
	}

	// Keep stdout for the decompressed data
	logrus.SetOutput(os.Stderr)

	if err := run(cfg); err != nil {
		logrus.Errorf("unable to decompress: %s", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	var out io.Writer = os.Stdout
	if cfg.CLI.Output != "" {
		f, err := os.Create(cfg.CLI.Output)
		if err != nil {
			return errors.Wrap(err, "unable to create output file")
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)

	file := inflate.Open(cfg.CLI.Path)
	file.OnBlock = func(member int, info decompression.BlockInfo) {
		fields := logrus.Fields{
			"member": member,
			"type":   info.Type,
			"final":  info.Final,
			"offset": info.InputOffset,
			"input":  info.InputSize,
			"output": info.Size,
		}
		if info.Type == decompression.BlockDynamic {
			fields["hlit"] = info.Dynamic.Literals
			fields["hdist"] = info.Dynamic.Distances
			fields["hclen"] = info.Dynamic.CodeLengths
		}
		logrus.WithFields(fields).Debug("block")
	}

	start := time.Now()
	summary, err := file.Decompress(w)
	if err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "unable to flush output")
	}

	for i, member := range summary.Members {
		logrus.WithFields(logrus.Fields{
			"member": i,
			"name":   member.Name,
			"mtime":  member.ModTime,
			"os":     member.OS,
		}).Debug("member")
	}

	ratio := 0.0
	if summary.Size > 0 {
		ratio = float64(summary.CompressedSize) / float64(summary.Size)
	}

	logrus.Infof("%s: %d members, %d -> %d bytes (%.1f%%) in %s",
		cfg.CLI.Path, len(summary.Members), summary.CompressedSize, summary.Size, ratio*100, time.Since(start))

	return nil
}
