package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	originFlag         string
	hostFlag           string
	checkFlag          bool
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.IntVar(&portFlag, "port", 0, "Port to listen on (overrides config, default 8080)")
	flag.StringVar(&originFlag, "origin", "", "Origin URL to proxy to (overrides config)")
	flag.StringVar(&hostFlag, "host", "", "Hostname of origin")
	flag.BoolVar(&checkFlag, "check", false, "encode: parse the generated header and print the directives")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s [flags]\n  %s [-check] encode [pattern] [directive[=value]...]\n\nFlags:\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "encode" {
		os.Exit(runEncode(os.Stdout, os.Stderr, flag.Args()[1:], checkFlag))
	}

	config, err := getConfig(configFilenameFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	applyFlags(&config.Server)

	setupLogging(config.Server.LogFile)

	handler, err := newHandler(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create handler")
	}

	if config.Server.Origin != "" {
		log.Info().Msgf("Proxying port %v to %s (with hostname '%s')", config.Server.Port, config.Server.Origin, config.Server.OriginHost)
	} else {
		log.Info().Msgf("Serving on port %v", config.Server.Port)
	}
	err = http.ListenAndServe(fmt.Sprintf(":%d", config.Server.Port), handler)

	if err != nil {
		panic(err)
	}
}

// applyFlags overrides the configuration with flags given on the command line.
func applyFlags(server *ServerConfig) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			server.Port = portFlag
		case "origin":
			server.Origin = originFlag
		case "host":
			server.OriginHost = hostFlag
		case "log-file":
			server.LogFile = logFilenameFlag
		}
	})
}

func setupLogging(logFilename string) {
	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if logFilename != "" {
		if logFileOutput, err := os.OpenFile(logFilename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()
}
