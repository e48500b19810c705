// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements word completion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordServe answers weighted prefix queries: given a prefix it returns the
heaviest dictionary words starting with it. The dictionary is loaded once at
startup into one of three interchangeable backends and never changes after.
It can operate as a MessagePack IPC server for integration with text editors,
or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	wordserve

Use a custom dictionary, the binary search backend and debug logs:

	wordserve -data /path/to/words.txt -backend binary -d

Run in CLI mode for interactive testing:

	wordserve -c -limit 10 -prmin 2

Convert a text dictionary into the compact binary format and exit:

	wordserve -data words.txt -save-bin words.bin

# Dictionaries

A text dictionary holds one "<weight><TAB><word>" entry per line, optionally
preceded by a line holding only the entry count. Lines starting with '#' are
comments. The binary format stores a little-endian int32 count followed by
length-prefixed words and uint32 weights. The format is picked from the file
extension unless [dict] format says otherwise.

# Backends

	trie      byte trie with a subtree max weight per node, best-first search
	binary    sorted array, binary search for the prefix range
	patricia  go-patricia tree, full subtree scan

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, dictionary settings, and CLI defaults:

	[server]
	max_limit = 64
	default_limit = 10
	min_prefix = 1
	max_prefix = 60

	[dict]
	path = "data/words.txt"
	format = "auto"
	backend = "trie"

	[cli]
	default_limit = 24
	default_min_len = 1
	default_max_len = 24
	default_no_filter = false

The config file is automatically created with defaults if it doesn't exist.
Flags given on the command line win over the file.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See package
server for the message shapes.

	{"id": "req1", "p": "hel", "l": 20}
	{"id": "req1", "s": [{"w": "hello", "r": 1, "f": 812}, {"w": "help", "r": 2, "f": 640}], "c": 2, "t": 14}

# Command Line Flags

	-data string
	    Dictionary file (default from config)
	-backend string
	    trie, binary or patricia (default from config)
	-config string
	    Path to a config.toml
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions in CLI mode
	-prmax int
	    Maximum prefix length for suggestions in CLI mode
	-no-filter
	    Disable input filtering for debugging
	-save-bin string
	    Write the loaded dictionary in binary format and exit
	-rebuild-config
	    Overwrite the default config file with defaults and exit
	-version
	    Show version information

The application resolves relative dictionary paths against the working
directory, the executable location and the config directory, in that order.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bastiangx/wordserve/internal/cli"
	"github.com/bastiangx/wordserve/internal/logger"
	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/dictionary"
	"github.com/bastiangx/wordserve/pkg/server"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.9.0-beta"
	AppName = "wordserve"
	gh      = "https://github.com/bastiangx/wordserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Dictionary file (.txt or .bin), overrides [dict] path")
	backendName := flag.String("backend", "", "Completion backend: trie, binary or patricia")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - shows all raw dictionary entries (numbers, symbols, etc)")
	saveBin := flag.String("save-bin", "", "Write the loaded dictionary to this path in binary format and exit")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		return
	}

	appConfig, usedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfigPath))

	// Explicit flags win over the config file.
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *dataPath != "" {
		appConfig.Dict.Path = *dataPath
	}
	if *backendName != "" {
		appConfig.Dict.Backend = *backendName
	}
	if _, err := suggest.ParseBackend(appConfig.Dict.Backend); err != nil {
		log.Fatalf("Invalid backend: %v", err)
	}

	completer, resolvedPath, corpus := buildCompleter(appConfig, usedConfigPath)

	if *saveBin != "" {
		if err := dictionary.SaveBinary(*saveBin, corpus); err != nil {
			log.Fatalf("Failed to write binary dictionary: %v", err)
		}
		log.Printf("Wrote %s words to %s", utils.FormatWithCommas(corpus.Len()), *saveBin)
		return
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		cliCfg := appConfig.CLI
		if explicit["limit"] {
			cliCfg.DefaultLimit = *limit
		}
		if explicit["prmin"] {
			cliCfg.DefaultMinLen = *minPrefix
		}
		if explicit["prmax"] {
			cliCfg.DefaultMaxLen = *maxPrefix
		}
		if explicit["no-filter"] {
			cliCfg.DefaultNoFilter = *noFilter
		}
		log.Debug("Input info:",
			"minPrefix", cliCfg.DefaultMinLen,
			"maxPrefix", cliCfg.DefaultMaxLen,
			"limit", cliCfg.DefaultLimit,
			"noFilter", cliCfg.DefaultNoFilter)

		inputHandler := cli.NewInputHandler(completer,
			cliCfg.DefaultMinLen, cliCfg.DefaultMaxLen, cliCfg.DefaultLimit, cliCfg.DefaultNoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig.Server, os.Stdin, os.Stdout)
	showStartupInfo(resolvedPath, appConfig.Dict.Backend, completer.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// buildCompleter loads the dictionary named by the config and builds the backend once.
func buildCompleter(cfg *config.Config, usedConfigPath string) (suggest.Autocompleter, string, *dictionary.Corpus) {
	dictLog := logger.New("dict")

	configDir := ""
	if usedConfigPath != "" {
		configDir = filepath.Dir(usedConfigPath)
	}
	pathResolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolved, err := pathResolver.ResolveDataFile(cfg.Dict.Path)
	if err != nil {
		log.Fatalf("Failed to find dictionary: %v", err)
	}

	format, err := dictionary.ParseFormat(cfg.Dict.Format)
	if err != nil {
		log.Fatalf("Invalid dictionary format: %v", err)
	}

	start := time.Now()
	corpus, err := dictionary.Load(resolved, format)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	dictLog.Debugf("Loaded %s entries from %s in %v", utils.FormatWithCommas(corpus.Len()), resolved, time.Since(start))

	start = time.Now()
	completer, err := suggest.New(cfg.Backend(), corpus.Words, corpus.Weights)
	if err != nil {
		log.Fatalf("Failed to build %s backend: %v", cfg.Dict.Backend, err)
	}
	dictLog.Debugf("Built %s backend with %s words in %v", cfg.Backend(), utils.FormatWithCommas(completer.Len()), time.Since(start))
	return completer, resolved, corpus
}

func printVersion() {
	versionLogger := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	versionLogger.SetStyles(styles)

	versionLogger.Print("")
	versionLogger.Print("[ WordServe ] Serves really Fast word completions!")
	versionLogger.Print("", "version", Version)
	versionLogger.Print("")
	versionLogger.Print("use -h or --help to see available options")
	versionLogger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dictPath, backend string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " WordServe ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("backend: %s, words: %s", backend, utils.FormatWithCommas(words))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
