package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"cinematch/internal/catalog"
	"cinematch/internal/logging"
	"cinematch/internal/presenter"
	"cinematch/internal/services"
)

// Formatter turns ranked entries into display records.
type Formatter interface {
	FormatAll(ctx context.Context, entries []catalog.Entry) []presenter.Record
}

// Request is one query against the engine.
type Request struct {
	Query string
	K     int
	Mode  Mode
	// TitlesOnly skips record formatting and poster lookups.
	TitlesOnly bool
}

// Result is the outcome of a request.
type Result struct {
	RequestID   string             `json:"request_id"`
	Query       string             `json:"query"`
	Kind        Kind               `json:"kind"`
	Message     string             `json:"message"`
	Anchor      string             `json:"anchor,omitempty"`
	Titles      []string           `json:"titles"`
	Records     []presenter.Record `json:"records,omitempty"`
	Suggestions []string           `json:"suggestions"`
}

// Engine runs resolve, rank and format for a request.
type Engine struct {
	catalog   Catalog
	resolver  *Resolver
	ranker    *Ranker
	formatter Formatter
	logger    *slog.Logger
}

// NewEngine wires an engine. formatter may be nil for titles-only use.
func NewEngine(c Catalog, scores Scores, formatter Formatter, logger *slog.Logger) *Engine {
	return &Engine{
		catalog:   c,
		resolver:  NewResolver(c, logger),
		ranker:    NewRanker(c, scores, logger),
		formatter: formatter,
		logger:    logging.NewComponentLogger(logger, "engine"),
	}
}

// Search resolves req.Query and returns ranked movies, suggestions, or an
// unresolved outcome. Only a blank query or non-positive k is an error.
func (e *Engine) Search(ctx context.Context, req Request) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "recommend", "search", "please enter a search term", nil)
	}
	if req.K <= 0 {
		return nil, services.Wrap(services.ErrValidation, "recommend", "search", fmt.Sprintf("k must be positive, got %d", req.K), nil)
	}
	mode := req.Mode
	if mode == "" {
		mode = ModeAuto
	}

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	ctx = services.WithQuery(ctx, query)
	logger := logging.WithContext(ctx, e.logger)

	res := e.resolver.ResolveAs(query, mode)
	logger.Debug("query resolved",
		logging.String("mode", string(mode)),
		logging.String("kind", res.Kind.String()),
		logging.Int("candidates", len(res.Titles)))

	result := &Result{
		RequestID:   requestID,
		Query:       query,
		Kind:        res.Kind,
		Titles:      []string{},
		Suggestions: []string{},
	}

	var positions []int
	switch res.Kind {
	case KindMovie:
		anchor, err := e.catalog.TitleAt(res.Position)
		if err != nil {
			logging.WarnWithContext(logger, "anchor title unavailable", "anchor_title_missing",
				logging.Int("position", res.Position),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "catalog indexes are inconsistent; reload the data files"),
				logging.String(logging.FieldImpact, "no recommendations for this title"))
			result.Kind = KindUnresolved
			result.Message = notFoundMessage(mode, query)
			break
		}
		result.Anchor = anchor
		result.Message = fmt.Sprintf("Movies similar to %s", anchor)
		ranked, err := e.ranker.Similar(res.Position, req.K)
		if err != nil {
			logging.WarnWithContext(logger, "similarity row unavailable", "similarity_row_missing",
				logging.Int("position", res.Position),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "similarity artifact does not match the catalog"),
				logging.String(logging.FieldImpact, "no recommendations for this title"))
		}
		positions = ranked
	case KindActor, KindDirector:
		positions = e.ranker.FromTitles(res.Titles, req.K)
		if len(positions) == 0 {
			result.Kind = KindUnresolved
			result.Message = notFoundMessage(mode, query)
			break
		}
		if res.Kind == KindActor {
			result.Message = fmt.Sprintf("Movies featuring %s", query)
		} else {
			result.Message = fmt.Sprintf("Movies directed by %s", query)
		}
	case KindSuggestions:
		result.Suggestions = res.Titles
		result.Message = fmt.Sprintf("Title not found: '%s'. Did you mean:", query)
	default:
		result.Message = notFoundMessage(mode, query)
	}

	entries := make([]catalog.Entry, 0, len(positions))
	for _, pos := range positions {
		entry, err := e.catalog.EntryAt(pos)
		if err != nil {
			logger.Debug("ranked position skipped", logging.Int("position", pos), logging.Error(err))
			continue
		}
		entries = append(entries, entry)
		result.Titles = append(result.Titles, entry.Title)
	}
	if !req.TitlesOnly && e.formatter != nil && len(entries) > 0 {
		result.Records = e.formatter.FormatAll(ctx, entries)
	}

	logger.Debug("search completed",
		logging.String("kind", result.Kind.String()),
		logging.Int("results", len(result.Titles)),
		logging.Int("suggestions", len(result.Suggestions)))
	return result, nil
}

func notFoundMessage(mode Mode, query string) string {
	switch mode {
	case ModeActor:
		return fmt.Sprintf("Actor \"%s\" not found in our database. Please try another actor name.", query)
	case ModeDirector:
		return fmt.Sprintf("Director \"%s\" not found in our database. Please try another director name.", query)
	default:
		return fmt.Sprintf("Movie \"%s\" not found in our database. Please try another title.", query)
	}
}
