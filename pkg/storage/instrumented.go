// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
)

// Instrument decorates a store with tracing spans and debug logs for every call
func Instrument(tr opentracing.Tracer, logger *zap.Logger, store Store) Store {
	if tr == nil {
		tr = opentracing.NoopTracer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedStore{
		tr:     tr,
		store:  store,
		logger: logger.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store  Store
	tr     opentracing.Tracer
	logger *zap.Logger
}

func (i *instrumentedStore) opName(name string) string {
	return strings.Join([]string{"storage", i.String(), name}, ".")
}

func (i *instrumentedStore) spanFromContext(ctx context.Context, name string) opentracing.Span {
	parent := opentracing.SpanFromContext(ctx)
	var span opentracing.Span
	if parent != nil {
		span = i.tr.StartSpan(name, opentracing.ChildOf(parent.Context()))
	} else {
		span = i.tr.StartSpan(name)
	}
	return span
}

func finish(span opentracing.Span, err error) {
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("error", err.Error())
	}
	span.Finish()
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (bool, error) {
	span := i.spanFromContext(ctx, i.opName("Has"))
	i.logger.Debug("storage has", zap.String("key", key))

	has, err := i.store.Has(ctx, key)
	finish(span, err)
	return has, err
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	span := i.spanFromContext(ctx, i.opName("Get"))
	i.logger.Debug("storage get", zap.String("key", key))

	rdr, err := i.store.Get(ctx, key)
	finish(span, err)
	return rdr, err
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader, exclusive bool) error {
	span := i.spanFromContext(ctx, i.opName("Put"))
	i.logger.Debug("storage put", zap.String("key", key), zap.Bool("exclusive", exclusive))

	err := i.store.Put(ctx, key, rdr, exclusive)
	finish(span, err)
	return err
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}
