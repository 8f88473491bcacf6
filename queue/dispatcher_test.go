package queue_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/alert-relay/queue"
	"github.com/marcelsud/alert-relay/queue/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDispatcher(t *testing.T) {
	t.Run("posts payload with content type", func(t *testing.T) {
		var gotBody string
		var gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			gotContentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("delivered"))
		}))
		defer server.Close()

		dispatcher := queue.NewHTTPDispatcher(5 * time.Second)
		d := queue.Delivery{
			ID:          "d-1",
			Payload:     []byte(`{"text":"hello"}`),
			ContentType: "application/json",
			Integration: queue.IntegrationRef{WebhookURL: server.URL},
		}

		result, err := dispatcher.Dispatch(context.Background(), d)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, "delivered", result.Body)
		assert.Equal(t, `{"text":"hello"}`, gotBody)
		assert.Equal(t, "application/json", gotContentType)
	})

	t.Run("non-2xx is an error carrying the response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("try later"))
		}))
		defer server.Close()

		dispatcher := queue.NewHTTPDispatcher(5 * time.Second)
		d := queue.Delivery{
			ID:          "d-1",
			Payload:     []byte("{}"),
			ContentType: "application/json",
			Integration: queue.IntegrationRef{WebhookURL: server.URL},
		}

		result, err := dispatcher.Dispatch(context.Background(), d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 503")
		assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)
		assert.Equal(t, "try later", result.Body)
	})

	t.Run("unreachable target is an error", func(t *testing.T) {
		dispatcher := queue.NewHTTPDispatcher(500 * time.Millisecond)
		d := queue.Delivery{
			ID:          "d-1",
			Payload:     []byte("{}"),
			ContentType: "application/json",
			Integration: queue.IntegrationRef{WebhookURL: "http://127.0.0.1:1/hook"},
		}

		_, err := dispatcher.Dispatch(context.Background(), d)
		assert.Error(t, err)
	})

	t.Run("signs the request when the integration carries a secret", func(t *testing.T) {
		secret, err := signature.GenerateSecret(32)
		require.NoError(t, err)

		var gotID, gotTimestamp, gotSignature string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = r.Header.Get(signature.HeaderID)
			gotTimestamp = r.Header.Get(signature.HeaderTimestamp)
			gotSignature = r.Header.Get(signature.HeaderSignature)
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		dispatcher := queue.NewHTTPDispatcher(5 * time.Second)
		d := queue.Delivery{
			ID:          "d-42",
			Payload:     []byte(`{"text":"signed"}`),
			ContentType: "application/json",
			Integration: queue.IntegrationRef{
				WebhookURL:    server.URL,
				SigningSecret: secret.String(),
			},
		}

		_, err = dispatcher.Dispatch(context.Background(), d)
		require.NoError(t, err)

		assert.Equal(t, "d-42", gotID)
		assert.True(t, strings.HasPrefix(gotSignature, signature.SignatureVersion+","))

		unix, err := strconv.ParseInt(gotTimestamp, 10, 64)
		require.NoError(t, err)
		assert.True(t, signature.Verify(secret, gotID, time.Unix(unix, 0), gotBody, gotSignature))
	})

	t.Run("invalid secret fails before any request", func(t *testing.T) {
		dispatcher := queue.NewHTTPDispatcher(5 * time.Second)
		d := queue.Delivery{
			ID:          "d-1",
			Payload:     []byte("{}"),
			ContentType: "application/json",
			Integration: queue.IntegrationRef{
				WebhookURL:    "https://hooks.example.com/x",
				SigningSecret: "not-a-secret",
			},
		}

		_, err := dispatcher.Dispatch(context.Background(), d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whsec_")
	})
}
