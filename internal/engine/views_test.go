package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/model"
)

func TestViews_DefaultCatalogue(t *testing.T) {
	views := Views(nil)
	require.Len(t, views, 6)
	assert.Equal(t, []string{
		model.ViewDashboard, model.ViewHeader, model.ViewMonitoring, model.ViewLinkerd, model.ViewIstio, model.ViewCilium,
	}, Names())

	dash := views[0]
	assert.Equal(t, "Dashboard", dash.Title)
	require.Len(t, dash.Endpoints, 3)
	assert.Equal(t, model.Endpoint{Label: LabelWorkloads, URL: client.PathWorkloads}, dash.Endpoints[0])
	for _, v := range views {
		assert.NotNil(t, v.Deriver, v.Name)
		assert.NotEmpty(t, v.Endpoints, v.Name)
	}
}

func TestViews_PathOverride(t *testing.T) {
	views := Views(Paths{
		model.ViewIstio: {LabelStatus: "http://istio.local/status"},
	})
	istio, err := Lookup(views, model.ViewIstio)
	require.NoError(t, err)
	assert.Equal(t, "http://istio.local/status", istio.Endpoints[0].URL)
	assert.Equal(t, client.PathAdapters, istio.Endpoints[1].URL)

	linkerd, err := Lookup(views, model.ViewLinkerd)
	require.NoError(t, err)
	assert.Equal(t, client.PathLinkerdStatus, linkerd.Endpoints[0].URL)
}

func TestLookup(t *testing.T) {
	views := Views(nil)
	v, err := Lookup(views, "Linkerd")
	require.NoError(t, err)
	assert.Equal(t, model.ViewLinkerd, v.Name)

	_, err = Lookup(views, "cilium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
}
