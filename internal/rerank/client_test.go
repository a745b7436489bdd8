// internal/rerank/client_test.go
package rerank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelance-match/internal/common/logger"
	"freelance-match/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidates() []models.Candidate {
	rating := 4.8
	return []models.Candidate{
		{Freelancer: models.Freelancer{ID: "f1", Name: "Asha", Skills: "react,nextjs", Rating: &rating}, Score: 0.9},
		{Freelancer: models.Freelancer{ID: "f2", Name: "Marco", Skills: "python,ml"}, Score: 0.3},
	}
}

// chatReply wraps content the way a chat-completions endpoint does.
func chatReply(content string) string {
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func newTestClient(baseURL, apiKey string) *Client {
	return NewClient(Config{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       "gpt-4o-mini",
		Temperature: 0.2,
		Timeout:     5 * time.Second,
	}, logger.NewNopLogger())
}

// ==========================
// Availability Tests
// ==========================

func TestClient_Unavailable(t *testing.T) {
	c := newTestClient("http://localhost:0", "")

	assert.False(t, c.Available())

	judgments, err := c.Rerank(context.Background(), "anything", testCandidates())
	assert.Nil(t, judgments)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_WhitespaceKeyUnavailable(t *testing.T) {
	c := newTestClient("http://localhost:0", "   ")
	assert.False(t, c.Available())
}

// ==========================
// Request/Response Tests
// ==========================

func TestClient_Rerank_Success(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(`[
			{"id":"f1","score":0.95,"rationale":"Strong frontend match."},
			{"id":"f2","score":0.2,"rationale":"Skills do not line up."}
		]`)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "test-key")
	judgments, err := c.Rerank(context.Background(), "Build a Next.js app", testCandidates())

	require.NoError(t, err)
	require.Len(t, judgments, 2)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "id:f1")
	assert.Contains(t, gotReq.Messages[1].Content, "rating:4.8")
	assert.Contains(t, gotReq.Messages[1].Content, "rating:n/a")
	assert.InDelta(t, 0.95, judgments["f1"].Score, 1e-9)
	assert.Equal(t, "Strong frontend match.", judgments["f1"].Rationale)
}

func TestClient_Rerank_SubsetReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(`[{"id":"f1","score":0.9,"rationale":"Good fit."}]`)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "test-key")
	judgments, err := c.Rerank(context.Background(), "desc long enough", testCandidates())

	require.NoError(t, err)
	require.Len(t, judgments, 1)
	_, ok := judgments["f2"]
	assert.False(t, ok)
}

func TestClient_Rerank_FencedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("```json\n[{\"id\":\"f1\",\"score\":0.5,\"rationale\":\"ok\"}]\n```")))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "test-key")
	judgments, err := c.Rerank(context.Background(), "desc", testCandidates())

	require.NoError(t, err)
	assert.Len(t, judgments, 1)
}

func TestClient_Rerank_EmptyCandidates(t *testing.T) {
	c := newTestClient("http://localhost:0", "test-key")
	judgments, err := c.Rerank(context.Background(), "desc", nil)
	require.NoError(t, err)
	assert.Empty(t, judgments)
}

// ==========================
// Failure Tests
// ==========================

func TestClient_Rerank_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "body is not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json at all"))
			},
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			name: "content is prose not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply("Here are my thoughts on these freelancers...")))
			},
		},
		{
			name: "content violates schema",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply(`[{"id":"f1","score":"high","rationale":"bad types"}]`)))
			},
		},
		{
			name: "score out of range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply(`[{"id":"f1","score":42,"rationale":"confused judge"}]`)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newTestClient(srv.URL, "test-key")
			judgments, err := c.Rerank(context.Background(), "desc", testCandidates())

			assert.Nil(t, judgments)
			assert.ErrorIs(t, err, ErrFailed)
		})
	}
}

func TestClient_Rerank_ConnectionRefused(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "test-key")
	_, err := c.Rerank(context.Background(), "desc", testCandidates())
	assert.ErrorIs(t, err, ErrFailed)
}
