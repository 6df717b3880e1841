package asx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type scrapflyResponse struct {
	Result struct {
		Content    string `json:"content"`
		StatusCode int    `json:"status_code"`
	} `json:"result"`
}

type companyAnnouncementsResponse struct {
	Data []companyAnnouncement `json:"data"`
}

type companyAnnouncement struct {
	ID                  FlexString `json:"id"`
	DocumentReleaseDate FlexTime   `json:"document_release_date"`
	DocumentDate        FlexTime   `json:"document_date"`
	URL                 string     `json:"url"`
	RelativeURL         string     `json:"relative_url"`
	Header              string     `json:"header"`
	MarketSensitive     bool       `json:"market_sensitive"`
	NumberOfPages       FlexInt    `json:"number_of_pages"`
	Size                string     `json:"size"`
	LegacyAnnouncement  bool       `json:"legacy_announcement"`
	IssuerCode          string     `json:"issuer_code"`
	IssuerShortName     string     `json:"issuer_short_name"`
	IssuerFullName      string     `json:"issuer_full_name"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FlexTime accepts the timestamp shapes the ASX feed has used.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		f.Valid = false
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		f.Valid = false
		return nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return err
	}
	f.Time = t
	f.Valid = true
	return nil
}

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unexpected id format: %s", trimmed)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(data)), "\"")
	if trimmed == "null" || trimmed == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fmt.Errorf("unexpected integer format: %s", trimmed)
	}
	*f = FlexInt(n)
	return nil
}
