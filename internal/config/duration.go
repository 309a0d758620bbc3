package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Duration is a time.Duration that also understands a "d" (days) unit,
// either alone ("7d") or as a leading component ("1d12h").
type Duration struct {
	time.Duration
}

// ParseDuration parses s/m/h durations with an optional leading day count
func ParseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty duration")
	}

	idx := strings.IndexByte(v, 'd')
	if idx < 0 {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %w", err)
		}
		return d, nil
	}

	days, err := strconv.Atoi(v[:idx])
	if err != nil || days < 0 {
		return 0, fmt.Errorf("invalid days value %q", v[:idx])
	}

	total := time.Duration(days) * day
	if rest := v[idx+1:]; rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %w", err)
		}
		if d < 0 {
			return 0, fmt.Errorf("invalid duration %q", v)
		}
		total += d
	}

	return total, nil
}

// EnvDecode implements envconfig.Decoder
func (d *Duration) EnvDecode(ctx context.Context, v string) error {
	if v == "" {
		return nil
	}

	parsed, err := ParseDuration(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	return d.EnvDecode(context.Background(), string(text))
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d Duration) String() string {
	return d.Duration.String()
}
