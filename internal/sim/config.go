package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"weasel/internal/evo"
)

// ErrConfiguration wraps every rejected run parameter.
var ErrConfiguration = errors.New("invalid configuration")

const (
	DefaultSwapFrameInterval = 5
	// ColumnMargin is added to the target length to get a display column's
	// width; two of it go to the focus marker.
	ColumnMargin = 8
)

// Config holds the run parameters plus the headless knobs.
type Config struct {
	Target              string  `validate:"required"`
	PopulationSize      int     `validate:"gt=0"`
	SurvivorsKept       int     `validate:"gt=0,ltfield=PopulationSize"`
	DisplayColumns      int     `validate:"gt=0"`
	MutationProbability float64 `validate:"gte=0,lte=1"`

	// Alphabet defaults to evo.DefaultAlphabet.
	Alphabet evo.Alphabet
	// SwapFrameInterval draws a frame every n-th swap while ranking.
	SwapFrameInterval int `validate:"gte=0"`
	// MaxIterations aborts the run with ErrIterationLimit once that many
	// generations have been ranked without a perfect match. Zero disables.
	MaxIterations int `validate:"gte=0"`
}

var configValidate = validator.New()

// WithDefaults fills the optional knobs.
func (c Config) WithDefaults() Config {
	if c.Alphabet == "" {
		c.Alphabet = evo.DefaultAlphabet
	}
	if c.SwapFrameInterval == 0 {
		c.SwapFrameInterval = DefaultSwapFrameInterval
	}
	return c
}

func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", ErrConfiguration, describeFieldErrors(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	alphabet := c.Alphabet
	if alphabet == "" {
		alphabet = evo.DefaultAlphabet
	}
	if err := alphabet.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if symbol, ok := alphabet.Covers(c.Target); !ok {
		return fmt.Errorf("%w: target symbol %q is not in the alphabet", ErrConfiguration, symbol)
	}
	return nil
}

// ColumnWidth is the padded width of one display column.
func (c Config) ColumnWidth() int {
	return len([]rune(c.Target)) + ColumnMargin
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "ltfield":
			parts = append(parts, fmt.Sprintf("%s must be < %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return strings.Join(parts, "; ")
}
