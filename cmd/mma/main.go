package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"github.com/marklogic-community/mlmanager/pkg/cli"
	"github.com/marklogic-community/mlmanager/pkg/config"
)

func main() {
	var logger log.Logger
	{
		logger = log.NewJSONLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	profilePath, err := config.DefaultPath()
	if err != nil {
		level.Error(logger).Log("err", err, "msg", "Could not locate the profile file")
		os.Exit(1)
	}
	profiles, err := config.LoadProfiles(profilePath)
	if err != nil {
		level.Error(logger).Log("err", err, "msg", "Could not read the profile file")
		os.Exit(1)
	}

	err, cfg := config.NewConfig("mma", profiles)
	if err != nil {
		level.Error(logger).Log("err", err, "msg", "Could not read environment configuration values")
		os.Exit(1)
	}

	jcfg, err := jaegercfg.FromEnv()
	if err != nil {
		level.Error(logger).Log("err", err, "msg", "Could not load Jaeger configuration values from environment")
		os.Exit(1)
	}
	if jcfg.ServiceName == "" {
		jcfg.ServiceName = "mma"
	}
	tracer, closer, err := jcfg.NewTracer()
	if err != nil {
		level.Error(logger).Log("err", err, "msg", "Could not start Jaeger tracer")
		os.Exit(1)
	}
	opentracing.SetGlobalTracer(tracer)

	m := cli.New(cfg, profiles, logger)

	// Deferred calls never run past os.Exit, so flush the tracer first.
	code := m.Main(os.Args[1:])
	closer.Close()
	os.Exit(code)
}
