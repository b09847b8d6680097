// Package drafting turns free-text notes about a piece of porcelain into a
// draft product listing using a generative text service.
package drafting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"porcelain/internal/domain"
	applog "porcelain/internal/log"
	"porcelain/internal/ratelimit"
)

// ErrUnavailable is returned by generators that are not configured.
var ErrUnavailable = errors.New("drafting service unavailable")

// Generator sends a prompt to a text model and returns its raw reply.
// Replies are expected to be a JSON object with the listing fields.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gateway is the boundary to the drafting service. Draft never returns an
// error: every failure is logged and reported as a nil listing.
type Gateway struct {
	gen     Generator
	limiter *ratelimit.KeyedRateLimiter
	timeout time.Duration
}

// New builds a gateway. A nil generator yields a gateway that is never available.
func New(gen Generator, limiter *ratelimit.KeyedRateLimiter, timeout time.Duration) *Gateway {
	return &Gateway{gen: gen, limiter: limiter, timeout: timeout}
}

func (g *Gateway) Available() bool { return g != nil && g.gen != nil }

// Draft asks for a listing for notes in category. key identifies the caller
// for rate limiting. Notes must already be validated as non-empty.
func (g *Gateway) Draft(ctx context.Context, key, notes string, category domain.Category) *domain.DraftListing {
	fields := map[string]any{"session": key, "category": category.Slug()}
	if !g.Available() {
		applog.Warn(nil, "draft.generate.fail", ErrUnavailable, fields)
		return nil
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx, key); err != nil {
			applog.Warn(nil, "draft.generate.fail", fmt.Errorf("rate limit wait: %w", err), fields)
			return nil
		}
	}

	start := time.Now()
	text, err := g.gen.Generate(ctx, Prompt(notes, category))
	if err != nil {
		applog.Error(nil, "draft.generate.fail", err, fields)
		return nil
	}
	listing, err := ParseListing(text)
	if err != nil {
		fields["reply_bytes"] = len(text)
		applog.Error(nil, "draft.generate.fail", err, fields)
		return nil
	}
	fields["latency_ms"] = time.Since(start).Milliseconds()
	applog.Info(nil, "draft.generate.ok", fields)
	return listing
}

// Prompt renders the instruction sent to the model. Notes are quoted as data.
func Prompt(notes string, category domain.Category) string {
	var b strings.Builder
	b.WriteString("Jsi odborník na starožitný porcelán a píšeš nabídky pro e-shop.\n")
	fmt.Fprintf(&b, "Kategorie produktu: %q.\n", category.Label())
	fmt.Fprintf(&b, "Poznámky prodejce: %q.\n\n", notes)
	b.WriteString("Vrať JSON objekt s poli:\n")
	b.WriteString("- title: prodejní titulek česky,\n")
	b.WriteString("- description: 2-3 věty česky o historii a kráse kusu,\n")
	b.WriteString("- estimatedYear: odhad roku nebo dekády výroby,\n")
	b.WriteString("- suggestedPrice: doporučená cena v CZK jako číslo,\n")
	b.WriteString("- conditionEval: krátké zhodnocení stavu.\n")
	return b.String()
}
