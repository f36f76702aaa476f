// Package main provides the entry point for the domainHunter application.
//
// domainHunter finds unregistered domain names. It provides three commands:
//
// 1. hunt - Generates candidate names from several strategies and checks each
//    one, falling back from a registrar status lookup to RDAP and finally DNS.
//    Progress is saved so an interrupted hunt resumes where it stopped.
//
// 2. check - Checks the domains given on the command line.
//
// 3. found - Lists the domains found so far, best first.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/internal/check"
	"github.com/uberswe/DomainHunter/internal/found"
	"github.com/uberswe/DomainHunter/internal/hunt"
	"github.com/uberswe/DomainHunter/pkg/api"
	"github.com/uberswe/DomainHunter/pkg/checkpoint"
	"github.com/uberswe/DomainHunter/pkg/config"
	"github.com/uberswe/DomainHunter/pkg/domain"
	"github.com/uberswe/DomainHunter/pkg/generator"
	"github.com/uberswe/DomainHunter/pkg/report"
	"github.com/uberswe/DomainHunter/pkg/resolver"
)

func main() {
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05.000000"

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.StampMicro,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Remove the command from os.Args to make flag parsing work
	os.Args = append(os.Args[:1], os.Args[2:]...)

	configFile := flag.String("config", config.DefaultConfigFileName, "Path to configuration file (.json or .yaml)")
	noColor := flag.Bool("no-color", false, "Disable colored output")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go releaseOnStop(ctx, stop)

	switch command {
	case "hunt":
		keepAwake := flag.Bool("keep-awake", false, "Keep computer awake by moving mouse")
		quiet := flag.Bool("quiet", false, "Only print available and inconclusive domains")
		flag.Parse()

		cfg := loadConfig(*configFile)
		if *keepAwake {
			cfg.KeepAwake = true
		}
		runHunt(ctx, cfg, report.NewConsole(os.Stdout, !*noColor, *quiet))

	case "check":
		flag.Parse()
		if flag.NArg() == 0 {
			fmt.Println("Usage: domainHunter check [options] <domain> [domain ...]")
			os.Exit(1)
		}

		cfg := loadConfig(*configFile)
		res, _ := buildResolver(cfg)
		delay := time.Duration(cfg.RequestDelayMs) * time.Millisecond
		check.Run(ctx, flag.Args(), res, report.NewConsole(os.Stdout, !*noColor, false), delay)

	case "found":
		limit := flag.Int("limit", 100, "Maximum number of domains to list (0 for all)")
		flag.Parse()

		cfg := loadConfig(*configFile)
		store := checkpoint.New(cfg.ResultsFile)
		if err := store.Load(); err != nil {
			log.Fatal().Err(err).Msg("Failed to load results")
		}
		found.Print(os.Stdout, found.Rank(store.Found(), cfg.Keywords), *limit)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: domainHunter <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  hunt    Generate candidate domains and check them until stopped")
	fmt.Println("  check   Check the domains given as arguments")
	fmt.Println("  found   List available domains found so far, best first")
	fmt.Println("Run 'domainHunter <command> -h' for command-specific help")
}

// releaseOnStop restores default signal handling once the first signal has
// cancelled ctx, so a second Ctrl+C kills the process while the last check
// finishes.
func releaseOnStop(ctx context.Context, release context.CancelFunc) {
	<-ctx.Done()
	release()
	log.Warn().Msg("Stopping after the current check, press Ctrl+C again to quit immediately")
}

func loadConfig(file string) *domain.Config {
	cfg, err := config.Load(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to load configuration")
	}
	return cfg
}

func runHunt(ctx context.Context, cfg *domain.Config, console *report.Console) {
	console.Banner(cfg)

	store := checkpoint.New(cfg.ResultsFile)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load results")
	}
	console.Resuming(store.Stats())

	words, err := generator.LoadWords(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("Failed to load word list")
	}
	engine, err := generator.NewEngine(generator.Params{
		Words:         words,
		Keywords:      cfg.Keywords,
		PersonalNames: cfg.PersonalNames,
		TLDs:          cfg.TLDs,
		Strategies:    cfg.Strategies,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up generator")
	}

	res, dir := buildResolver(cfg)

	log.Info().Msg("Loading RDAP bootstrap")
	n := dir.Warmup()
	log.Info().Int("tlds", n).Bool("seed", dir.FromSeed()).Msg("RDAP bootstrap ready")

	h := hunt.New(hunt.OptionsFrom(cfg), engine, res, store, console)
	if err := h.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Hunt ended with unsaved results")
	}
}

// buildResolver wires the three stages from the configuration
func buildResolver(cfg *domain.Config) (*resolver.Resolver, *resolver.Directory) {
	var authoritative resolver.Checker
	switch cfg.Authoritative {
	case config.AuthoritativeLoopia:
		client, err := api.NewClient(api.LoopiaEndpoint, cfg.Username, cfg.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Loopia client")
		}
		authoritative = resolver.NewLoopiaChecker(client)
	default:
		authoritative = resolver.NewStatusChecker(resolver.StatusEndpoint, http.DefaultClient)
	}

	dir := resolver.NewDirectory(resolver.BootstrapURL, http.DefaultClient)
	nameserver := resolver.NewNSChecker(cfg.DNSServer)

	log.Debug().
		Str("authoritative", cfg.Authoritative).
		Str("dns", cfg.DNSServer).
		Msg("Resolver configured")

	return resolver.New(authoritative, resolver.NewRDAPChecker(dir, http.DefaultClient), nameserver), dir
}
