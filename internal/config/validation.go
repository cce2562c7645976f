package config

import (
	"go/token"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")

	// ErrInvalidOption is returned when an option value is invalid.
	ErrInvalidOption = errors.New("invalid option value")
)

// Validator validates option semantics.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the options and describes every failure.
func (v *Validator) Validate(opts *Options) error {
	if opts == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var validationErrors []error

	if opts.OutDir == "" {
		validationErrors = append(validationErrors, errors.Wrap(ErrEmptyValue, "out_dir"))
	}

	if !token.IsIdentifier(opts.Package) {
		validationErrors = append(validationErrors,
			errors.Wrapf(ErrInvalidOption, "package %q is not a Go identifier", opts.Package))
	}

	if !opts.Mode.Valid() {
		validationErrors = append(validationErrors,
			errors.Wrapf(ErrInvalidOption, "mode %q must be %q or %q", opts.Mode, ModeDynamic, ModeStatic))
	}

	if !opts.LogLevel.IsALevel() {
		validationErrors = append(validationErrors,
			errors.Wrapf(ErrInvalidOption, "log_level %d", int(opts.LogLevel)))
	}

	if len(opts.Manifests) == 0 {
		validationErrors = append(validationErrors, errors.Wrap(ErrEmptyValue, "manifests"))
	}

	for _, pattern := range opts.Manifests {
		if !doublestar.ValidatePattern(pattern) {
			validationErrors = append(validationErrors,
				errors.Wrapf(ErrInvalidOption, "manifests: bad pattern %q", pattern))
		}
	}

	if len(validationErrors) > 0 {
		return errors.WithSecondaryError(
			errors.Wrapf(
				ErrInvalidConfig,
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			combineErrors(validationErrors),
		)
	}

	return nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
