// Copyright © 2018 One Concern

// Package tracing sets up a jaeger tracer for the registry API.
package tracing

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	jaeger "github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-client-go/rpcmetrics"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
	"go.uber.org/zap"
)

// Init creates a jaeger tracer reporting to the agent at hostPort.
//
// An empty hostPort disables tracing: a noop tracer is returned.
// Tracer metrics are registered on the given registerer, when not nil.
func Init(serviceName, hostPort string, registerer prometheus.Registerer, logger *zap.Logger) (opentracing.Tracer, io.Closer, error) {
	if hostPort == "" {
		return opentracing.NoopTracer{}, ioutil.NopCloser(nil), nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := config.Configuration{
		ServiceName: serviceName,
		Sampler: &config.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LocalAgentHostPort: hostPort,
		},
	}

	opts := []config.Option{
		config.Logger(jaegerLoggerAdapter{logger: logger}),
	}
	if registerer != nil {
		factory := jprom.New(jprom.WithRegisterer(registerer))
		opts = append(opts,
			config.Metrics(factory),
			config.Observer(rpcmetrics.NewObserver(factory, rpcmetrics.DefaultNameNormalizer)),
		)
	}

	tracer, closer, err := cfg.NewTracer(opts...)
	if err != nil {
		return nil, nil, err
	}
	return tracer, closer, nil
}

type jaegerLoggerAdapter struct {
	logger *zap.Logger
}

func (l jaegerLoggerAdapter) Error(msg string) {
	l.logger.Error(msg)
}

func (l jaegerLoggerAdapter) Infof(msg string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(msg, args...))
}
