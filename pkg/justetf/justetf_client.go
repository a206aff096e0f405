package justetf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultBaseURL   = "https://www.justetf.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	holdingsTableTestID   = "etf-holdings_top-holdings_table"
	holdingsPercentTestID = "tl_etf-holdings_top-holdings_value_percentage"
	stockProfilePath      = "/stock-profiles/"
)

var (
	ErrNotFound   = errors.New("etf profile not found")
	ErrNoHoldings = errors.New("etf profile does not provide holdings information")

	weightCleanPattern = regexp.MustCompile(`[^\d.]`)
)

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("justetf responded with status code %d", e.StatusCode)
}

type Client struct {
	HttpClient *http.Client
	BaseURL    string
	UserAgent  string
}

func NewClient(httpClient *http.Client, baseURL string) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Client{
		HttpClient: httpClient,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserAgent:  DefaultUserAgent,
	}
}

type EtfHolding struct {
	// Isin is the stock's ISIN, or its name when the row has no profile link
	Isin string
	Name string
	// WeightText is the percentage cell stripped to digits and dots
	WeightText string
}

type EtfProfile struct {
	Isin     string
	Name     string
	Holdings []EtfHolding
}

func (c Client) GetEtfProfile(ctx context.Context, isin string) (*EtfProfile, error) {
	u := fmt.Sprintf("%s/en/etf-profile.html?isin=%s&tab=analyses", c.BaseURL, url.QueryEscape(isin))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", isin, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	} else if response.StatusCode != http.StatusOK {
		io.Copy(io.Discard, response.Body)
		return nil, &StatusError{StatusCode: response.StatusCode}
	}

	return ParseEtfProfile(isin, response.Body)
}

// ParseEtfProfile extracts the fund name and top holdings table from an
// etf-profile page
func ParseEtfProfile(isin string, r io.Reader) (*EtfProfile, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile page for %s: %w", isin, err)
	}

	name := doc.Find("h1.etf-profile__name").First()
	if name.Length() == 0 {
		name = doc.Find("h1").First()
	}
	if name.Length() == 0 {
		return nil, ErrNotFound
	}

	table := doc.Find(fmt.Sprintf("table[data-testid=%q]", holdingsTableTestID)).First()
	if table.Length() == 0 {
		return nil, ErrNoHoldings
	}
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	holdings := []EtfHolding{}
	rows.Each(func(_ int, row *goquery.Selection) {
		cols := row.ChildrenFiltered("td")
		if cols.Length() < 2 {
			return
		}
		holdings = append(holdings, parseHoldingRow(cols.Eq(0), cols.Eq(1)))
	})

	return &EtfProfile{
		Isin:     isin,
		Name:     cleanText(name),
		Holdings: holdings,
	}, nil
}

func parseHoldingRow(nameCol, weightCol *goquery.Selection) EtfHolding {
	stockIsin := ""
	if href, ok := nameCol.Find(fmt.Sprintf("a[href*=%q]", stockProfilePath)).First().Attr("href"); ok {
		if i := strings.IndexAny(href, "?#"); i >= 0 {
			href = href[:i]
		}
		parts := strings.Split(strings.TrimRight(href, "/"), "/")
		stockIsin = parts[len(parts)-1]
	}

	stockName := cleanText(nameCol)
	if span := nameCol.Find("span").First(); span.Length() > 0 {
		stockName = cleanText(span)
	}

	weight := weightCol
	if span := weightCol.Find(fmt.Sprintf("span[data-testid=%q]", holdingsPercentTestID)).First(); span.Length() > 0 {
		weight = span
	}

	if stockIsin == "" {
		stockIsin = stockName
	}

	return EtfHolding{
		Isin:       stockIsin,
		Name:       stockName,
		WeightText: weightCleanPattern.ReplaceAllString(weight.Text(), ""),
	}
}

// cleanText collapses runs of whitespace in the selection's text
func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
