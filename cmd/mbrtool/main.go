package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

var (
	defaultLogFormatter = &log.TextFormatter{}

	// Config is the global tool configuration
	Config = defaultConfig()
)

// infoFormatter overrides the default format for Info() log events to
// provide an easier to read output
type infoFormatter struct {
}

func (f *infoFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return defaultLogFormatter.Format(entry)
}

func usage() {
	invoked := filepath.Base(os.Args[0])
	fmt.Printf("USAGE: %s [options] COMMAND\n\n", invoked)
	fmt.Printf("Commands:\n")
	fmt.Printf("  show        Print the partition table of a disk or image\n")
	fmt.Printf("  dump        Hex dump the partition table sector\n")
	fmt.Printf("  apply       Write a partition table described in a YAML file\n")
	fmt.Printf("  bootable    Mark a single partition as bootable\n")
	fmt.Printf("  version     Print version information\n")
	fmt.Printf("  help        Print this message\n")
	fmt.Printf("\n")
	fmt.Printf("Run '%s COMMAND --help' for more information on the command\n", invoked)
	fmt.Printf("\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flagQuiet := flag.Bool("q", false, "Quiet execution")
	flagVerbose := flag.Bool("v", false, "Verbose execution")
	flagConfig := flag.String("config", defaultConfigPath(), "Path to the tool configuration file")

	// Set up logging
	log.SetFormatter(new(infoFormatter))
	log.SetLevel(log.InfoLevel)
	flag.Parse()
	if *flagQuiet && *flagVerbose {
		fmt.Printf("Can't set quiet and verbose flag at the same time\n")
		os.Exit(1)
	}
	if *flagQuiet {
		log.SetLevel(log.ErrorLevel)
	}
	if *flagVerbose {
		// Switch back to the standard formatter
		log.SetFormatter(defaultLogFormatter)
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := readConfig(*flagConfig)
	if err != nil {
		log.Fatalf("%v", err)
	}
	Config = cfg

	args := flag.Args()
	if len(args) < 1 {
		fmt.Printf("Please specify a command.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "show":
		err = show(args[1:])
	case "dump":
		err = dump(args[1:])
	case "apply":
		err = apply(args[1:])
	case "bootable":
		err = bootable(args[1:])
	case "version":
		printVersion()
	case "help":
		flag.Usage()
	default:
		fmt.Printf("%q is not valid command.\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
