package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickyInspector struct {
	namePanics bool
	listPanics bool
	names      []string
}

func (p *panickyInspector) DatabaseName() string {
	if p.namePanics {
		panic("name lookup exploded")
	}
	return "goldshop"
}

func (p *panickyInspector) ListCollectionNames(context.Context) ([]string, error) {
	if p.listPanics {
		panic("listing exploded")
	}
	return p.names, nil
}

func noEnv(string) (string, bool) { return "", false }

func TestDiagnostics_Healthy(t *testing.T) {
	store := newMemStore()
	g := newTestGateway(store)
	g.lookupEnv = func(key string) (string, bool) {
		if key == "DATABASE_URL" {
			return "mongodb://db", true
		}
		return "", false
	}

	w := do(t, g, http.MethodPost, "/api/gold", oneOunceBar)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, g, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[DiagnosticReport](t, w)
	assert.Equal(t, statusRunning, report.Backend)
	assert.Equal(t, statusWorking, report.Database)
	assert.Equal(t, statusConnected, report.ConnectionStatus)
	assert.Equal(t, statusSet, report.DatabaseURL)
	assert.Equal(t, statusNotSet, report.DatabaseName)
	require.NotNil(t, report.ActiveDatabase)
	assert.Equal(t, "goldshop", *report.ActiveDatabase)
	assert.Equal(t, []string{"golditem"}, report.Collections)
}

func TestDiagnostics_NoHandle(t *testing.T) {
	g := newTestGateway(nil)

	w := do(t, g, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[DiagnosticReport](t, w)
	assert.Equal(t, statusRunning, report.Backend)
	assert.Equal(t, statusNotInitialized, report.Database)
	assert.Equal(t, statusNotConnected, report.ConnectionStatus)
	assert.Nil(t, report.ActiveDatabase)
	assert.NotNil(t, report.Collections)
	assert.Empty(t, report.Collections)
	assert.Contains(t, w.Body.String(), `"collections":[]`)
}

func TestDiagnostics_Unreachable(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("server selection error: context deadline exceeded, current topology: { Type: Unknown }")
	g := newTestGateway(store)

	w := do(t, g, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[DiagnosticReport](t, w)
	assert.True(t, strings.HasPrefix(report.Database, prefixConnectedError))
	assert.Equal(t, prefixConnectedError+store.listErr.Error()[:maxErrorLength], report.Database)
	assert.Empty(t, report.Collections)
	assert.Equal(t, statusConnected, report.ConnectionStatus)
}

func TestDiagnostics_IsolatesPanics(t *testing.T) {
	report := runDiagnostics(context.Background(), &panickyInspector{namePanics: true, names: []string{"order"}}, noEnv, time.Second)
	require.NotNil(t, report.ActiveDatabase)
	assert.Equal(t, prefixError+"name lookup exploded", *report.ActiveDatabase)
	assert.Equal(t, statusWorking, report.Database)
	assert.Equal(t, []string{"order"}, report.Collections)

	report = runDiagnostics(context.Background(), &panickyInspector{listPanics: true}, noEnv, time.Second)
	assert.Equal(t, prefixConnectedError+"listing exploded", report.Database)
	assert.Equal(t, "goldshop", *report.ActiveDatabase)
	assert.Empty(t, report.Collections)

	report = runDiagnostics(context.Background(), nil, func(string) (string, bool) { panic("env unavailable") }, time.Second)
	assert.Equal(t, prefixError+"env unavailable", report.DatabaseURL)
	assert.Equal(t, prefixError+"env unavailable", report.DatabaseName)
	assert.Equal(t, statusNotInitialized, report.Database)
}

func TestDiagnostics_CollectionLimit(t *testing.T) {
	names := make([]string, 15)
	for i := range names {
		names[i] = fmt.Sprintf("c%02d", i)
	}

	report := runDiagnostics(context.Background(), &panickyInspector{names: names}, noEnv, 0)
	assert.Equal(t, names[:maxListedCollections], report.Collections)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, strings.Repeat("x", 50), truncate(strings.Repeat("x", 80), 50))
	assert.Equal(t, "äö", truncate("äöü", 2))
}
