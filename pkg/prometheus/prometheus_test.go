package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	common.PromCounters[common.DiscordRequestTotal].
		WithLabelValues(http.MethodGet, "/guilds/:id/channels", "200").Inc()

	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), common.DiscordRequestTotal)
	require.Contains(t, string(body), `route="/guilds/:id/channels"`)
}

func TestNewRegistry(t *testing.T) {
	common.PromCounters[common.DiscordCachePopulationFailures].WithLabelValues("channels").Inc()

	families, err := NewRegistry().Gather()
	require.NoError(t, err)

	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}
	require.Contains(t, names, common.DiscordCachePopulationFailures)
	require.Contains(t, names, "go_goroutines")
}
