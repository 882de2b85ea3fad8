package etherscan

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transporthttp "github.com/gabapcia/sharkguard/internal/pkg/transport/http"
)

const testAddress = "0xaabb000000000000000000000000000000000001"

// noRetryClient keeps failing-path tests fast.
func noRetryClient() Option {
	return WithHTTPClient(transporthttp.NewClient(transporthttp.WithRetryMax(0)))
}

func TestFetchTransactions(t *testing.T) {
	t.Run("should decode a successful response", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"module":  r.URL.Query().Get("module"),
				"action":  r.URL.Query().Get("action"),
				"address": r.URL.Query().Get("address"),
				"sort":    r.URL.Query().Get("sort"),
				"apikey":  r.URL.Query().Get("apikey"),
			}
			w.Write([]byte(`{
				"status": "1",
				"message": "OK",
				"result": [
					{
						"hash": "0xabc",
						"from": "0xaabb000000000000000000000000000000000001",
						"to": "0x00000000000000000000000000000000000000ff",
						"value": "1000000000000000000",
						"nonce": "4",
						"timeStamp": "1700000000",
						"gas": "21000",
						"gasPrice": "20000000000"
					}
				]
			}`))
		}))
		defer server.Close()

		c := NewClient("test-key", WithBaseURL(server.URL), noRetryClient())

		txs, err := c.FetchTransactions(t.Context(), testAddress)
		require.NoError(t, err)
		require.Len(t, txs, 1)

		assert.Equal(t, "0xabc", txs[0].Hash)
		assert.Equal(t, "1000000000000000000", txs[0].Value)
		assert.Equal(t, "1700000000", txs[0].TimeStamp)

		assert.Equal(t, "account", gotQuery["module"])
		assert.Equal(t, "txlist", gotQuery["action"])
		assert.Equal(t, testAddress, gotQuery["address"])
		assert.Equal(t, "asc", gotQuery["sort"])
		assert.Equal(t, "test-key", gotQuery["apikey"])
	})

	t.Run("should treat an empty history as a successful empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "0", "message": "No transactions found", "result": []}`))
		}))
		defer server.Close()

		c := NewClient("test-key", WithBaseURL(server.URL), noRetryClient())

		txs, err := c.FetchTransactions(t.Context(), testAddress)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("should surface an application-level api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "0", "message": "NOTOK", "result": "Invalid API Key"}`))
		}))
		defer server.Close()

		c := NewClient("bad-key", WithBaseURL(server.URL), noRetryClient())

		_, err := c.FetchTransactions(t.Context(), testAddress)
		assert.ErrorIs(t, err, ErrAPIFailure)
	})

	t.Run("should surface a non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		c := NewClient("test-key", WithBaseURL(server.URL), noRetryClient())

		_, err := c.FetchTransactions(t.Context(), testAddress)
		assert.ErrorIs(t, err, ErrUnexpectedStatusCode)
	})

	t.Run("should surface a malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		c := NewClient("test-key", WithBaseURL(server.URL), noRetryClient())

		_, err := c.FetchTransactions(t.Context(), testAddress)
		assert.ErrorContains(t, err, "decoding explorer response")
	})

	t.Run("should apply a custom block range", func(t *testing.T) {
		var start, end string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start = r.URL.Query().Get("startblock")
			end = r.URL.Query().Get("endblock")
			w.Write([]byte(`{"status": "1", "message": "OK", "result": []}`))
		}))
		defer server.Close()

		c := NewClient("test-key", WithBaseURL(server.URL), WithBlockRange(100, 200), noRetryClient())

		_, err := c.FetchTransactions(t.Context(), testAddress)
		require.NoError(t, err)
		assert.Equal(t, "100", start)
		assert.Equal(t, "200", end)
	})
}
