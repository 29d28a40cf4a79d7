package repository

import (
	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
)

type options struct {
	log  logger.Logger
	seed []model.ContentItem
}

// Option applies a configuration option to a store.
type Option func(*options)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSeed loads items into the store when it is opened.
func WithSeed(items []model.ContentItem) Option {
	return func(o *options) {
		o.seed = append(o.seed, items...)
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
