package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/eringen/flatpress"
	"github.com/eringen/flatpress/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: flatpress new <directory>")
			os.Exit(1)
		}
		err = runNew(os.Args[2])
	case "version":
		fmt.Printf("flatpress %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (flatpress.SiteConfig, error) {
	path := fs.String("config", "", "read settings from a yaml, json, toml or .env file")
	if err := fs.Parse(args); err != nil {
		return flatpress.SiteConfig{}, err
	}
	if *path != "" {
		return flatpress.LoadConfigFile(*path)
	}
	return flatpress.LoadConfig()
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flatpress serve [-config file]")
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, flatpress.ConfigUsage())
	}
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	app, err := flatpress.New(cfg, flatpress.DefaultViews())
	if err != nil {
		return err
	}
	return app.Start()
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = "blogs"
	}
	store, err := content.Open(cfg.ContentDir)
	if err != nil {
		return err
	}
	posts, err := store.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSLUG\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date, p.Slug, p.Title)
	}
	return w.Flush()
}

func printUsage() {
	fmt.Println(`flatpress - a personal blog served from a directory of JSON files

Usage:
  flatpress <command> [arguments]

Commands:
  serve [-config file]   Start the web server
  list [-config file]    Print every post, newest first
  new <directory>        Create a new site with a welcome post
  version                Print the flatpress version
  help                   Show this help message

Settings are read from the environment (see 'flatpress serve -h').`)
}
