package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/chrisdamba/custgen/internal/factories"
	"github.com/chrisdamba/custgen/internal/logger"
	"github.com/chrisdamba/custgen/internal/models"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

type Generator struct {
	Config  *models.Config
	RunID   string
	Sampler factories.Sampler
	output  OutputDestination
	log     *logger.Logger
}

type Option func(*Generator)

// WithSampler replaces the seeded faker sampler.
func WithSampler(sampler factories.Sampler) Option {
	return func(g *Generator) {
		g.Sampler = sampler
	}
}

// WithOutput bypasses destination selection from the config.
func WithOutput(output OutputDestination) Option {
	return func(g *Generator) {
		g.output = output
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

func NewGenerator(config *models.Config, opts ...Option) *Generator {
	g := &Generator{
		Config: config,
		RunID:  cuid.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Sampler == nil {
		g.Sampler = factories.NewSampler(config.Seed)
	}
	if g.log == nil {
		g.log = logger.Nop()
	}
	return g
}

// Generate builds config.CustomerNum customers with sequential ids starting at 1.
// Each customer consumes three draws from sampler: class, arrival, service.
func Generate(config *models.Config, sampler factories.Sampler) ([]models.Customer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	customerFactory := &factories.CustomerFactory{Sampler: sampler}
	customers := make([]models.Customer, 0, config.CustomerNum)
	for i := 1; i <= config.CustomerNum; i++ {
		customers = append(customers, customerFactory.CreateCustomer(config, i))
	}
	return customers, nil
}

// Run generates the batch and writes it to the output destination. Nothing is
// opened when the config is invalid. The destination is always closed once opened.
func (g *Generator) Run(ctx context.Context) (err error) {
	customers, err := Generate(g.Config, g.Sampler)
	if err != nil {
		return err
	}
	g.log.Info().
		Str("run_id", g.RunID).
		Int("customers", len(customers)).
		Int("classes", g.Config.ClassNum).
		Msg("Generated customers")

	output := g.output
	if output == nil {
		output, err = g.determineOutputDestination(ctx)
		if err != nil {
			return err
		}
	}
	defer func() {
		if closeErr := output.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", closeErr)
		}
	}()

	var bar *progressbar.ProgressBar
	if g.Config.Progress {
		bar = progressbar.NewOptions64(int64(len(customers)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("writing customers"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}

	for _, customer := range customers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := output.WriteCustomer(customer); err != nil {
			return fmt.Errorf("failed to write customer %d: %w", customer.ID, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	g.log.Debug().Str("run_id", g.RunID).Msg("All customers written")
	return nil
}
