// Command profilecmp extracts profiles of scalar fields along a line
// through scattered simulation results and plots them side by side.
//
// Usage:
//
//	profilecmp resolution [-data dir]
//	profilecmp sampling [-data dir] prefix n_nipce n_few n_mid n_many title
//	profilecmp legacy [-data dir] prefix n_few n_mid n_many n_nipce title
//	profilecmp run -config file.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sgostarter/i/l"

	"github.com/vdobler/profile/config"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: profilecmp resolution [-data dir]")
	fmt.Fprintln(os.Stderr, "       profilecmp sampling [-data dir] prefix n_nipce n_few n_mid n_many title")
	fmt.Fprintln(os.Stderr, "       profilecmp legacy [-data dir] prefix n_few n_mid n_many n_nipce title")
	fmt.Fprintln(os.Stderr, "       profilecmp run -config file.yaml|file.toml")
	fmt.Fprintln(os.Stderr, "       profilecmp run -name file.yaml   (searched in ./, ./config/, ../ ...)")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cfg, verbose, err := parse(os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(2)
	}

	logger := l.NewConsoleLoggerWrapper()
	if verbose {
		logger.GetLogger().SetLevel(l.LevelDebug)
	} else {
		logger.GetLogger().SetLevel(l.LevelInfo)
	}

	written, err := config.Run(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profilecmp: %v\n", err)
		os.Exit(1)
	}
	for _, p := range written {
		fmt.Println(p)
	}
}

// parse builds the run configuration of the sub-command cmd.
func parse(cmd string, args []string) (*config.Config, bool, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	dir := fs.String("data", "data", "directory holding the datasets")
	verbose := fs.Bool("v", false, "log every dataset and profile")
	workers := fs.Int("workers", 1, "number of series interpolated concurrently")
	strict := fs.Bool("strict", false, "reject datasets which do not cover the sampling line")
	var cfgFile, cfgName string
	if cmd == "run" {
		fs.StringVar(&cfgFile, "config", "", "configuration file (.yaml, .yml or .toml)")
		fs.StringVar(&cfgName, "name", "", "configuration file name searched in the default places")
	}
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	rest := fs.Args()

	var cfg *config.Config
	var err error
	switch cmd {
	case "resolution":
		if len(rest) != 0 {
			return nil, false, fmt.Errorf("resolution takes no arguments")
		}
		cfg = config.Resolution(*dir)
	case "sampling":
		if len(rest) != 6 {
			return nil, false, fmt.Errorf("sampling needs prefix, four sample counts and a title")
		}
		var n [4]int
		for i := range n {
			if n[i], err = strconv.Atoi(rest[1+i]); err != nil {
				return nil, false, fmt.Errorf("sample count %q: %w", rest[1+i], err)
			}
		}
		cfg = config.Sampling(*dir, rest[0], n, rest[5])
	case "legacy":
		if len(rest) != 6 {
			return nil, false, fmt.Errorf("legacy needs prefix, four sample counts and a title")
		}
		// The counts come in the order of the curves: few, mid, many, niPCE.
		n := [4]string{rest[4], rest[1], rest[2], rest[3]}
		cfg = config.LegacySampling(*dir, rest[0], n, rest[5])
	case "run":
		switch {
		case cfgFile != "":
			cfg, err = config.LoadFile(cfgFile)
		case cfgName != "":
			cfg, err = config.Load(cfgName)
		default:
			return nil, false, fmt.Errorf("run needs -config or -name")
		}
		if err != nil {
			return nil, false, err
		}
	default:
		return nil, false, fmt.Errorf("unknown command %q", cmd)
	}
	if *workers > 1 {
		cfg.Workers = *workers
	}
	if *strict {
		cfg.Strict = true
	}
	return cfg, *verbose, nil
}
