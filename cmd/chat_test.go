package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/spaces/3/documents", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"space_name": "Biology 101",
			"documents":  []string{"notes.pdf"},
		})
	})
	mux.HandleFunc("/podcast/3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{}")
	})
	mux.HandleFunc("/query/3", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "An answer."})
	})
	mux.HandleFunc("/ingestion/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestNewChatCommand verifies the chat command structure.
func TestNewChatCommand(t *testing.T) {
	cmd := NewChatCommand(DefaultDeps())

	assert.Equal(t, "chat", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
	require.NotNil(t, cmd.Flags().Lookup("space"))
}

func TestChat_QuestionAndQuit(t *testing.T) {
	server := chatTestServer(t)

	cmd := NewChatCommand(testDeps(server.URL))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader("What is mitosis?\n/quit\n"))
	cmd.SetArgs([]string{"--space", "3"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Biology 101")
	assert.Contains(t, out.String(), "An answer.")
}

func TestChat_DocsAndIngestCommands(t *testing.T) {
	server := chatTestServer(t)

	cmd := NewChatCommand(testDeps(server.URL))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader("/docs\n/ingest\n/quit\n"))
	cmd.SetArgs([]string{"--space", "3"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "notes.pdf")
	assert.Contains(t, out.String(), "Ingestion started")
}

func TestChat_EOFEndsSession(t *testing.T) {
	server := chatTestServer(t)

	cmd := NewChatCommand(testDeps(server.URL))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"--space", "3"})

	require.NoError(t, cmd.Execute())
}

func TestChat_UnknownCommand(t *testing.T) {
	server := chatTestServer(t)

	cmd := NewChatCommand(testDeps(server.URL))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader("/bogus\n/quit\n"))
	cmd.SetArgs([]string{"--space", "3"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "unknown command /bogus")
}
