package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"TickerWatch/internal/logger"
	"TickerWatch/internal/model"
)

// ErrNoNews is returned when the feed has no entries.
var ErrNoNews = errors.New("no news found")

const googleNewsRSS = "https://news.google.com/rss/search"

// Feed reads headlines from a Google News RSS search.
type Feed struct {
	BaseURL  string
	Query    string
	MaxItems int
	Timeout  time.Duration
	Proxy    string
}

// NewFeed creates a Feed for query returning at most maxItems headlines.
func NewFeed(query string, maxItems int, proxy string) *Feed {
	return &Feed{
		BaseURL:  googleNewsRSS,
		Query:    query,
		MaxItems: maxItems,
		Timeout:  15 * time.Second,
		Proxy:    proxy,
	}
}

func (f *Feed) searchURL() string {
	q := url.Values{}
	q.Set("q", f.Query)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	return f.BaseURL + "?" + q.Encode()
}

// Latest returns the most recent headlines in feed order.
func (f *Feed) Latest(ctx context.Context) ([]model.NewsItem, error) {
	op := logger.StartOperation(ctx, "news.latest", "query", f.Query)

	items := []model.NewsItem{}
	c := colly.NewCollector(colly.MaxDepth(1), colly.Async(false))
	c.SetRequestTimeout(f.Timeout)
	if f.Proxy != "" {
		if err := c.SetProxy(f.Proxy); err != nil {
			logger.Warn(ctx, "invalid news proxy, fetching directly", "error", err)
		}
	}

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnXML("//item", func(e *colly.XMLElement) {
		if len(items) >= f.MaxItems {
			return
		}
		title := strings.TrimSpace(e.ChildText("title"))
		link := strings.TrimSpace(e.ChildText("link"))
		if title == "" || link == "" {
			return
		}
		items = append(items, model.NewsItem{Title: title, Link: link})
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("news feed status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(f.searchURL()); err != nil {
		op.EndWithError(err)
		return nil, fmt.Errorf("visit news feed: %w", err)
	}
	c.Wait()

	if scrapeErr != nil {
		op.EndWithError(scrapeErr)
		return nil, scrapeErr
	}
	if len(items) == 0 {
		op.EndWithError(ErrNoNews)
		return nil, ErrNoNews
	}
	op.End("items", len(items))
	return items, nil
}
