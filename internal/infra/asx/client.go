package asx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"go.uber.org/zap"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxErrorBody   = 512
	tickerTemplate = "{ticker}"
)

type Options struct {
	AnnouncementsURL        string
	CompanyAnnouncementsURL string
	ScrapflyAPIKey          string
	ScrapflyEndpoint        string
	Timeout                 time.Duration
}

// Client reads ASX pages, through Scrapfly when an API key is configured.
type Client struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	return &Client{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}
}

func (c *Client) DailyAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	content, err := c.fetchPage(ctx, c.opts.AnnouncementsURL)
	if err != nil {
		return nil, err
	}

	table, err := ParseTable(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(c.opts.AnnouncementsURL)
	if err != nil {
		return nil, fmt.Errorf("parse announcements url: %w", err)
	}
	anns, err := table.Announcements(base)
	if err != nil {
		return nil, err
	}

	c.logger.Info("daily announcements parsed", zap.Int("rows", len(anns)), zap.Strings("columns", table.Headers))
	return anns, nil
}

func (c *Client) CompanyAnnouncements(ctx context.Context, ticker string) ([]domain.CompanyAnnouncement, error) {
	endpoint := strings.ReplaceAll(c.opts.CompanyAnnouncementsURL, tickerTemplate, url.PathEscape(ticker))
	content, err := c.fetchPage(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload companyAnnouncementsResponse
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("decode announcements for %s: %w", ticker, err)
	}

	anns := make([]domain.CompanyAnnouncement, 0, len(payload.Data))
	for _, item := range payload.Data {
		anns = append(anns, domain.CompanyAnnouncement{
			ID:                  string(item.ID),
			DocumentReleaseDate: item.DocumentReleaseDate.Time,
			DocumentDate:        item.DocumentDate.Time,
			URL:                 item.URL,
			RelativeURL:         item.RelativeURL,
			Header:              item.Header,
			MarketSensitive:     item.MarketSensitive,
			NumberOfPages:       int(item.NumberOfPages),
			Size:                item.Size,
			LegacyAnnouncement:  item.LegacyAnnouncement,
			IssuerCode:          item.IssuerCode,
			IssuerShortName:     item.IssuerShortName,
			IssuerFullName:      item.IssuerFullName,
		})
	}
	return anns, nil
}

// FetchDocument downloads a document directly from its URL.
func (c *Client) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	return c.get(ctx, documentURL, documentURL)
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if c.opts.ScrapflyAPIKey == "" {
		return c.get(ctx, pageURL, pageURL)
	}

	params := url.Values{}
	params.Set("key", c.opts.ScrapflyAPIKey)
	params.Set("url", pageURL)
	endpoint := c.opts.ScrapflyEndpoint + "?" + params.Encode()

	body, err := c.get(ctx, endpoint, pageURL)
	if err != nil {
		return nil, fmt.Errorf("scrapfly: %w", err)
	}

	var payload scrapflyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode scrapfly response: %w", err)
	}
	return []byte(payload.Result.Content), nil
}

// get performs a GET; label is what gets logged so API keys stay out of logs.
func (c *Client) get(ctx context.Context, endpoint, label string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", userAgent)

	start := time.Now()
	c.logger.Info("asx request start", zap.String("url", label))
	response, err := c.client.Do(request)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = fmt.Errorf("get %s: %w", label, urlErr.Err)
		}
		c.logger.Error("asx request failed", zap.String("url", label), zap.Error(err))
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Info(
		"asx request complete",
		zap.String("url", label),
		zap.Int("status", response.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("failed to fetch the page: status %d: %s", response.StatusCode, snippet)
	}
	return body, nil
}
