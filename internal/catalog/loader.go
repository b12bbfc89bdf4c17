package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/progress"
)

// Source names one remote catalog feed.
type Source struct {
	Name string
	URL  string
}

// Loader performs the one-shot startup load of the reference index.
type Loader struct {
	client   *http.Client
	log      *zap.Logger
	reporter *progress.LoadReporter
}

// NewLoader creates a catalog loader. reporter may be nil for a silent load.
func NewLoader(log *zap.Logger, reporter *progress.LoadReporter) *Loader {
	return &Loader{
		client:   &http.Client{Timeout: 60 * time.Second},
		log:      log,
		reporter: reporter,
	}
}

// Load fetches every source in order and merges the results into a fresh
// index. It never fails outright: a source that cannot be fetched or parsed
// contributes zero entries and is logged, so later sources still load.
// Sources sharing an item id overwrite earlier ones.
func (l *Loader) Load(ctx context.Context, sources []Source) *Index {
	index := NewIndex(l.log)

	l.reporter.Begin(len(sources))
	for _, src := range sources {
		entries, err := l.fetchSource(ctx, src)
		l.reporter.SourceDone(src.Name, err != nil)
		if err != nil {
			l.log.Warn("catalog source failed, skipping",
				zap.String("source", src.Name), zap.Error(err))
			continue
		}
		for _, item := range entries {
			index.Insert(item)
		}
		l.log.Info("catalog source loaded",
			zap.String("source", src.Name), zap.Int("entries", len(entries)))
	}
	l.reporter.End()

	l.log.Info("catalog load complete", zap.Int("total_items", index.Len()))
	return index
}

func (l *Loader) fetchSource(ctx context.Context, src Source) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", src.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return l.normalize(src.Name, body)
}

// normalize converts a feed payload into an ordered sequence of items. A
// keyed mapping is used as-is (the key is the item id); an ordered list is
// converted using each element's id field, dropping elements without one.
func (l *Loader) normalize(sourceName string, body []byte) ([]Item, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	switch trimmed[0] {
	case '{':
		return l.normalizeKeyed(trimmed)
	case '[':
		return l.normalizeList(sourceName, trimmed)
	default:
		return nil, fmt.Errorf("payload is neither a mapping nor a list")
	}
}

// normalizeKeyed walks the object token by token so that entries come out in
// document order; decoding into a map would lose it.
func (l *Loader) normalizeKeyed(body []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("decoding mapping: %w", err)
	}

	var entries []Item
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding mapping key: %w", err)
		}
		key := keyTok.(string)

		var attrs map[string]any
		if err := dec.Decode(&attrs); err != nil {
			return nil, fmt.Errorf("decoding entry %q: %w", key, err)
		}

		entries = append(entries, Item{
			ID:    key,
			Name:  stringAttr(attrs, "name"),
			Attrs: attrs,
		})
	}
	return entries, nil
}

func (l *Loader) normalizeList(sourceName string, body []byte) ([]Item, error) {
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding list: %w", err)
	}

	var entries []Item
	for _, attrs := range raw {
		id := idAttr(attrs)
		if id == "" {
			l.log.Warn("list entry has no id, dropping",
				zap.String("source", sourceName), zap.String("name", stringAttr(attrs, "name")))
			continue
		}
		entries = append(entries, Item{
			ID:    id,
			Name:  stringAttr(attrs, "name"),
			Attrs: attrs,
		})
	}
	return entries, nil
}

func stringAttr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}

// idAttr extracts the id field, tolerating feeds that encode it as a number.
func idAttr(attrs map[string]any) string {
	switch v := attrs["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
