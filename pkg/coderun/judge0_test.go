package coderun

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func judge0Server(t *testing.T, status int, result judge0Result, capture *judge0Submission) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submissions", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("base64_encoded"))
		require.Equal(t, "true", r.URL.Query().Get("wait"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(result))
	}))
}

func TestJudge0Accepted(t *testing.T) {
	var captured judge0Submission
	result := judge0Result{Stdout: "42\n"}
	result.Status.ID = judge0StatusAccepted

	server := judge0Server(t, http.StatusCreated, result, &captured)
	defer server.Close()

	client, err := NewJudge0Client(Judge0Config{BaseURL: server.URL, Timeout: time.Second})
	require.NoError(t, err)

	run, err := client.Run(context.Background(), RunRequest{Language: "python", Source: "print(42)"})
	require.NoError(t, err)
	require.True(t, run.Succeeded())
	require.Equal(t, "42\n", run.Stdout)
	require.Zero(t, run.ExitCode)

	require.Equal(t, "print(42)", captured.SourceCode)
	require.Equal(t, 71, captured.LanguageID)
}

func TestJudge0Verdicts(t *testing.T) {
	cases := []struct {
		name     string
		statusID int
		body     judge0Result
		timedOut bool
	}{
		{name: "wrong answer", statusID: 4, body: judge0Result{Stdout: "41\n"}},
		{name: "time limit", statusID: judge0StatusTimeLimit, timedOut: true},
		{name: "compile error", statusID: judge0StatusCompilationErr, body: judge0Result{CompileOutput: "syntax error"}},
		{name: "runtime error", statusID: 11, body: judge0Result{Stderr: "Traceback"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.body
			result.Status.ID = tc.statusID

			server := judge0Server(t, http.StatusCreated, result, nil)
			defer server.Close()

			client, err := NewJudge0Client(Judge0Config{BaseURL: server.URL, Timeout: time.Second})
			require.NoError(t, err)

			run, err := client.Run(context.Background(), RunRequest{Language: "go", Source: "package main"})
			require.NoError(t, err)
			require.False(t, run.Succeeded())
			require.Equal(t, 1, run.ExitCode)
			require.Equal(t, tc.timedOut, run.TimedOut)
		})
	}
}

func TestJudge0UnsupportedLanguage(t *testing.T) {
	client, err := NewJudge0Client(Judge0Config{BaseURL: "http://judge0.invalid"})
	require.NoError(t, err)

	_, err = client.Run(context.Background(), RunRequest{Language: "brainfuck", Source: "+"})
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestJudge0APIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(judge0Result{})
	}))
	defer server.Close()

	client, err := NewJudge0Client(Judge0Config{BaseURL: server.URL, APIKey: "secret-token", Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Run(context.Background(), RunRequest{Language: "python", Source: "x"})
	require.NoError(t, err)
}

func TestJudge0ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewJudge0Client(Judge0Config{BaseURL: server.URL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Run(context.Background(), RunRequest{Language: "python", Source: "x"})
	require.Error(t, err)
}
