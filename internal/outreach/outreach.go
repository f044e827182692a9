package outreach

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// DefaultCountryPrefix restricts phone channels to Kenyan numbers.
const DefaultCountryPrefix = "+254"

// Report counts the outcome of a bulk run.
type Report struct {
	Sent    int
	Failed  int
	Skipped int
}

func (r Report) String() string {
	return fmt.Sprintf("sent=%d failed=%d skipped=%d", r.Sent, r.Failed, r.Skipped)
}

// Options are shared by every bulk run.
type Options struct {
	Out    io.Writer
	Log    *zap.Logger
	Prefix string // country prefix a phone number must start with
	DryRun bool
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Prefix == "" {
		o.Prefix = DefaultCountryPrefix
	}
	return o
}

func (o Options) eligible(phone string) bool {
	return phone != "" && strings.HasPrefix(phone, o.Prefix)
}

func (o Options) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.Out, format, args...)
}

// cancelled reports a context error so loops can stop between rows.
func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
