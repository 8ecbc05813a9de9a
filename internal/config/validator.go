package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path, e.g. "buffers.input"
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateShell()...)
	errors = append(errors, c.validateBuffers()...)
	errors = append(errors, c.validateUI()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateItems()...)
	return errors
}

func (c *Config) validateShell() []ValidationError {
	var errors []ValidationError
	if c.Shell.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "shell.path",
			Value:   c.Shell.Path,
			Message: "must not be empty",
		})
	}
	if len(c.Shell.CommandTerminator) > 1 {
		errors = append(errors, ValidationError{
			Field:   "shell.command_terminator",
			Value:   c.Shell.CommandTerminator,
			Message: "must be at most one character",
		})
	}
	for _, kv := range c.Shell.Env {
		if !strings.Contains(kv, "=") {
			errors = append(errors, ValidationError{
				Field:   "shell.env",
				Value:   kv,
				Message: "must have the form KEY=VALUE",
			})
		}
	}
	return errors
}

func (c *Config) validateBuffers() []ValidationError {
	var errors []ValidationError
	for _, b := range []struct {
		field string
		value int
	}{
		{"buffers.input", c.Buffers.Input},
		{"buffers.output", c.Buffers.Output},
		{"buffers.error", c.Buffers.Error},
		{"buffers.max_line_bytes", c.Buffers.MaxLineBytes},
	} {
		if b.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   b.field,
				Value:   b.value,
				Message: "must be positive",
			})
		}
	}
	if c.Buffers.StallWarningMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "buffers.stall_warning_ms",
			Value:   c.Buffers.StallWarningMs,
			Message: "must be non-negative",
		})
	}
	return errors
}

func (c *Config) validateUI() []ValidationError {
	var errors []ValidationError
	// Below this the UI spends its time redrawing.
	const minPollIntervalMs = 10
	if c.UI.PollIntervalMs < minPollIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "ui.poll_interval_ms",
			Value:   c.UI.PollIntervalMs,
			Message: fmt.Sprintf("must be at least %d", minPollIntervalMs),
		})
	}
	if c.UI.MaxOutputLines <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ui.max_output_lines",
			Value:   c.UI.MaxOutputLines,
			Message: "must be positive",
		})
	}
	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	return errors
}

func (c *Config) validateItems() []ValidationError {
	var errors []ValidationError
	seen := make(map[string]bool)
	for i, it := range c.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.Name) == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   it.Name,
				Message: "must not be empty",
			})
		} else if seen[it.Name] {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   it.Name,
				Message: "must be unique",
			})
		}
		seen[it.Name] = true
		if len(it.Statements) == 0 {
			errors = append(errors, ValidationError{
				Field:   field + ".statements",
				Value:   it.Statements,
				Message: "must have at least one statement",
			})
		}
	}
	return errors
}
