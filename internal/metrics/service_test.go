package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchesRecorded()
	s.IncMatchesRecorded()
	s.IncPlayersRegistered()
	s.IncRejected("add_player", "duplicate_name")
	s.SetPlayers(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.MatchesRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.PlayersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Rejected.WithLabelValues("add_player", "duplicate_name")))
	assert.Equal(t, 7.0, testutil.ToFloat64(s.Players))
}

func TestMetricsHandler_ExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncMatchesRecorded()

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	NewMetricsHandler(reg).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ladder_matches_recorded_total 1")
}
