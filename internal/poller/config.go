package poller

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mcuadros/go-defaults"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/model"
)

var validate = validator.New()

// Config parameterises one Poll Session.
type Config struct {
	View      string           `validate:"required"`
	Endpoints []model.Endpoint `validate:"required,min=1,dive"`
	Interval  time.Duration    `validate:"gt=0"`
	// Timeout bounds every single endpoint request.
	Timeout time.Duration `default:"5s" validate:"gt=0"`
	// MaxConcurrent caps in-flight requests per cycle; 0 means unlimited.
	MaxConcurrent int            `validate:"gte=0"`
	Fetcher       client.Fetcher `validate:"required"`
	Deriver       Deriver        `validate:"required"`
}

// normalize fills defaults and validates the config.
func (c *Config) normalize() error {
	defaults.SetDefaults(c)
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid poller config for view %q: %w", c.View, err)
	}
	seen := make(map[string]struct{}, len(c.Endpoints))
	for _, ep := range c.Endpoints {
		if _, dup := seen[ep.Label]; dup {
			return fmt.Errorf("invalid poller config for view %q: duplicate endpoint label %q", c.View, ep.Label)
		}
		seen[ep.Label] = struct{}{}
	}
	return nil
}

// Input is what a Deriver sees for one completed cycle.
type Input struct {
	Seq      uint64
	Outcomes model.Outcomes
	At       time.Time
}

// Deriver turns the settled outcomes of a cycle into a view summary.
// Implementations must be pure: same Input, same Summary. When no source
// succeeded they must still return placeholder values.
type Deriver interface {
	Derive(in Input) (model.Summary, error)
}

// DeriverFunc adapts a function to the Deriver interface.
type DeriverFunc func(in Input) (model.Summary, error)

// Derive implements Deriver.
func (f DeriverFunc) Derive(in Input) (model.Summary, error) {
	return f(in)
}
