package justetf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const profilePage = `<!DOCTYPE html>
<html><body>
<h1 class="h1 etf-profile__name">iShares Core MSCI World UCITS ETF USD (Acc)</h1>
<table class="table" data-testid="etf-holdings_top-holdings_table">
  <thead><tr><th>Name</th><th>Weight</th></tr></thead>
  <tbody>
    <tr>
      <td><a href="/en/stock-profiles/US0378331005"><span>Apple Inc.</span></a></td>
      <td><span data-testid="tl_etf-holdings_top-holdings_value_percentage">4.72%</span></td>
    </tr>
    <tr>
      <td><a href="/en/stock-profiles/US5949181045?foo=bar"><span>Microsoft Corp.</span></a></td>
      <td><span data-testid="tl_etf-holdings_top-holdings_value_percentage">4.13%</span></td>
    </tr>
    <tr>
      <td>Some Private Holding</td>
      <td>0.50 %</td>
    </tr>
    <tr><td colspan="2">Show more</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseEtfProfile(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		profile, err := ParseEtfProfile("IE00B4L5Y983", strings.NewReader(profilePage))
		require.NoError(t, err)

		require.Equal(t, "iShares Core MSCI World UCITS ETF USD (Acc)", profile.Name)
		require.Equal(t, []EtfHolding{
			{Isin: "US0378331005", Name: "Apple Inc.", WeightText: "4.72"},
			{Isin: "US5949181045", Name: "Microsoft Corp.", WeightText: "4.13"},
			{Isin: "Some Private Holding", Name: "Some Private Holding", WeightText: "0.50"},
		}, profile.Holdings)
	})

	t.Run("falls back to first h1", func(t *testing.T) {
		page := `<html><body><h1>Plain Name</h1><table data-testid="etf-holdings_top-holdings_table"></table></body></html>`
		profile, err := ParseEtfProfile("IE00B4L5Y983", strings.NewReader(page))
		require.NoError(t, err)
		require.Equal(t, "Plain Name", profile.Name)
		require.Equal(t, 0, len(profile.Holdings))
	})

	t.Run("collapses whitespace in nested markup", func(t *testing.T) {
		page := `<html><body>
<h1 class="etf-profile__name">
  Vanguard   FTSE <small>All-World</small>
</h1>
<table data-testid="etf-holdings_top-holdings_table">
  <tr>
    <td><a href="/en/stock-profiles/US67066G1040/"><span> NVIDIA
      Corp. </span></a></td>
    <td> 3.9 % </td>
  </tr>
</table>
</body></html>`
		profile, err := ParseEtfProfile("IE00BK5BQT80", strings.NewReader(page))
		require.NoError(t, err)
		require.Equal(t, "Vanguard FTSE All-World", profile.Name)
		require.Equal(t, []EtfHolding{
			{Isin: "US67066G1040", Name: "NVIDIA Corp.", WeightText: "3.9"},
		}, profile.Holdings)
	})

	t.Run("no holdings table", func(t *testing.T) {
		page := `<html><body><h1 class="etf-profile__name">Bond ETF</h1></body></html>`
		_, err := ParseEtfProfile("IE00B4L5Y983", strings.NewReader(page))
		require.ErrorIs(t, err, ErrNoHoldings)
	})

	t.Run("no name", func(t *testing.T) {
		_, err := ParseEtfProfile("IE00B4L5Y983", strings.NewReader(`<html><body><p>nothing</p></body></html>`))
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClient_GetEtfProfile(t *testing.T) {
	t.Run("sends isin and headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/en/etf-profile.html", r.URL.Path)
			require.Equal(t, "IE00B4L5Y983", r.URL.Query().Get("isin"))
			require.Equal(t, "analyses", r.URL.Query().Get("tab"))
			require.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			w.Write([]byte(profilePage))
		}))
		defer server.Close()

		client := NewClient(server.Client(), server.URL+"/")
		profile, err := client.GetEtfProfile(context.Background(), "IE00B4L5Y983")
		require.NoError(t, err)
		require.Equal(t, 3, len(profile.Holdings))
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL).GetEtfProfile(context.Background(), "IE00B4L5Y983")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unexpected status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL).GetEtfProfile(context.Background(), "IE00B4L5Y983")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	})
}
