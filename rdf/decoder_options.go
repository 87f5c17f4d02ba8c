package rdf

import "context"

const (
	DefaultMaxStatementBytes = 4 << 20
	DefaultMaxDepth          = 64
)

// DecodeOptions configures parser behavior and limits.
// Zero values use defaults. Use negative values to disable specific limits.
type DecodeOptions struct {
	// MaxStatementBytes bounds the size of a single statement, directives included.
	MaxStatementBytes int
	// MaxDepth bounds the nesting of blank property lists and collections.
	MaxDepth int
	// NormalizeNFC rewrites the document to Unicode NFC before parsing, so
	// identifiers that differ only in composition compare equal.
	NormalizeNFC bool
	// Context provides cancellation for decoding work.
	Context context.Context
}

// DefaultDecodeOptions returns safe defaults for parser limits.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxStatementBytes: DefaultMaxStatementBytes,
		MaxDepth:          DefaultMaxDepth,
	}
}

func normalizeDecodeOptions(opts DecodeOptions) DecodeOptions {
	if opts.MaxStatementBytes == 0 {
		opts.MaxStatementBytes = DefaultMaxStatementBytes
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return opts
}

func checkDecodeContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
