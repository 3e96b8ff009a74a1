package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedRotates(t *testing.T) {
	a := NewScripted("one", "two")

	r1, err := a.Reply(context.Background(), nil)
	require.NoError(t, err)
	r2, _ := a.Reply(context.Background(), nil)
	r3, _ := a.Reply(context.Background(), nil)

	assert.Equal(t, "one", r1)
	assert.Equal(t, "two", r2)
	assert.Equal(t, "one", r3)
}

func TestScriptedDefaultReply(t *testing.T) {
	a := NewScripted()
	r, err := a.Reply(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.NotEmpty(t, r)
}

func TestOpenAIAssistantAgainstFakeEndpoint(t *testing.T) {
	var gotMessages []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if msgs, ok := req["messages"].([]any); ok {
			for _, m := range msgs {
				gotMessages = append(gotMessages, m.(map[string]any))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "The Compass seats five."}}]
		}`))
	}))
	defer srv.Close()

	a := NewOpenAIAssistant(OpenAIOptions{BaseURL: srv.URL, APIKey: "test", Model: "test-model"})

	reply, err := a.Reply(context.Background(), []Message{
		{Role: RoleUser, Content: "How many seats does the Compass have?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "The Compass seats five.", reply)

	// System prompt travels first, then the conversation.
	require.GreaterOrEqual(t, len(gotMessages), 2)
	assert.Equal(t, "system", gotMessages[0]["role"])
	assert.Equal(t, "user", gotMessages[1]["role"])
}

func TestOpenAIAssistantReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewOpenAIAssistant(OpenAIOptions{BaseURL: srv.URL, APIKey: "test"})

	_, err := a.Reply(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.Error(t, err)
}
