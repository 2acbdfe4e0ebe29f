package client

import (
	"errors"

	"go.uber.org/zap"

	"github.com/osprey-dcs/dp-sdk-go/pkg/config"
	"github.com/osprey-dcs/dp-sdk-go/pkg/rpc"
)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// ErrMissingConfiguration reports that the mandatory ingestion service has
// neither an explicit channel nor a configuration to derive one from.
var ErrMissingConfiguration = errors.New("missing configuration for ingestion service")

type options struct {
	ingestionChannel  *rpc.Channel
	queryChannel      *rpc.Channel
	annotationChannel *rpc.Channel
	config            *config.Config
	configFile        string
}

func (o options) hasChannel() bool {
	return o.ingestionChannel != nil || o.queryChannel != nil || o.annotationChannel != nil
}

// Option customizes New.
type Option func(*options)

// WithIngestionChannel supplies an explicit channel for the ingestion
// service. The caller keeps ownership; Close will not touch it.
func WithIngestionChannel(ch *rpc.Channel) Option {
	return func(o *options) { o.ingestionChannel = ch }
}

// WithQueryChannel supplies an explicit channel for the query service.
func WithQueryChannel(ch *rpc.Channel) Option {
	return func(o *options) { o.queryChannel = ch }
}

// WithAnnotationChannel supplies an explicit channel for the annotation
// service.
func WithAnnotationChannel(ch *rpc.Channel) Option {
	return func(o *options) { o.annotationChannel = ch }
}

// WithConfig supplies explicit endpoint configuration. Environment overrides
// still apply on top of it.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithConfigFile names a configuration file to load. A missing file fails
// construction with config.ErrConfigFileNotFound.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// Client is the user-facing Data Platform client. It owns one typed client
// per service family.
type Client struct {
	// Ingestion is always present on a successfully constructed client.
	Ingestion *IngestionClient
	// Query and Annotation are nil when no channel was supplied and no
	// configuration was resolved for them. Only ingestion is mandatory for
	// now; the asymmetry mirrors the current service rollout and may be
	// revisited once the query and annotation surfaces stabilize.
	Query      *QueryClient
	Annotation *AnnotationClient

	owned []*rpc.Channel
}

// New constructs a Client. Per service family an explicitly supplied channel
// wins; otherwise a channel is derived from the resolved configuration when
// one is available. Configuration is resolved when WithConfig or
// WithConfigFile is given, or when no options are passed at all (full
// discovery over file and environment sources, falling back to defaults).
//
// Construction may read the file system (config discovery) and sets up
// network channels; connections are lazy, not eagerly established.
// Construction fails hard on configuration problems: a missing explicit file,
// a malformed file, or a missing ingestion channel with no configuration to
// derive one from (ErrMissingConfiguration).
func New(opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg *config.Config
	var err error
	switch {
	case o.config != nil:
		cfg, err = config.Load(config.WithConfig(o.config))
	case o.configFile != "":
		cfg, err = config.Load(config.WithFile(o.configFile))
	case !o.hasChannel():
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	c := &Client{}

	ingestionChannel := o.ingestionChannel
	if ingestionChannel == nil {
		if cfg == nil {
			return nil, ErrMissingConfiguration
		}
		ingestionChannel, err = cfg.NewIngestionChannel()
		if err != nil {
			return nil, err
		}
		c.owned = append(c.owned, ingestionChannel)
	}
	c.Ingestion = NewIngestionClient(ingestionChannel)

	queryChannel := o.queryChannel
	if queryChannel == nil && cfg != nil {
		queryChannel, err = cfg.NewQueryChannel()
		if err != nil {
			c.Close()
			return nil, err
		}
		c.owned = append(c.owned, queryChannel)
	}
	if queryChannel != nil {
		c.Query = NewQueryClient(queryChannel)
	}

	annotationChannel := o.annotationChannel
	if annotationChannel == nil && cfg != nil {
		annotationChannel, err = cfg.NewAnnotationChannel()
		if err != nil {
			c.Close()
			return nil, err
		}
		c.owned = append(c.owned, annotationChannel)
	}
	if annotationChannel != nil {
		c.Annotation = NewAnnotationClient(annotationChannel)
	}

	return c, nil
}

// Close releases the channels the client created itself. Channels supplied
// by the caller stay open.
func (c *Client) Close() {
	for _, ch := range c.owned {
		if err := ch.Close(); err != nil {
			zap.L().Warn("closing channel", zap.Error(err))
		}
	}
	c.owned = nil
}
