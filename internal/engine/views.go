package engine

import (
	"fmt"
	"strings"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// View couples a page with the endpoints it polls and its derivation.
type View struct {
	Name      string
	Title     string
	Endpoints []model.Endpoint
	Deriver   poller.Deriver
}

// Paths overrides endpoint URLs, keyed by view name then endpoint label.
type Paths map[string]map[string]string

type viewDef struct {
	name    string
	title   string
	sources [][2]string // label, default path
	derive  poller.DeriverFunc
}

// catalogue lists the views in display order.
var catalogue = []viewDef{
	{
		name:  model.ViewDashboard,
		title: "Dashboard",
		sources: [][2]string{
			{LabelWorkloads, client.PathWorkloads},
			{LabelCluster, client.PathCluster},
			{LabelAdapters, client.PathAdapters},
		},
		derive: DeriveDashboard,
	},
	{
		name:    model.ViewHeader,
		title:   "Clusters",
		sources: [][2]string{{LabelCluster, client.PathCluster}},
		derive:  DeriveHeader,
	},
	{
		name:  model.ViewMonitoring,
		title: "Prometheus & Grafana",
		sources: [][2]string{
			{LabelHealth, client.PathMonitoringHealth},
			{LabelStats, client.PathMonitoringStats},
		},
		derive: DeriveMonitoring,
	},
	{
		name:    model.ViewLinkerd,
		title:   "Linkerd",
		sources: [][2]string{{LabelStatus, client.PathLinkerdStatus}},
		derive:  DeriveLinkerd,
	},
	{
		name:  model.ViewIstio,
		title: "Istio",
		sources: [][2]string{
			{LabelStatus, client.PathIstioStatus},
			{LabelAdapters, client.PathAdapters},
		},
		derive: DeriveIstio,
	},
	{
		name:  model.ViewCilium,
		title: "Cilium",
		sources: [][2]string{
			{LabelWorkloads, client.PathWorkloads},
			{LabelAdapters, client.PathAdapters},
		},
		derive: DeriveCilium,
	},
}

// Views returns every view in display order with paths overridden from p.
// p may be nil.
func Views(p Paths) []View {
	out := make([]View, 0, len(catalogue))
	for _, def := range catalogue {
		v := View{Name: def.name, Title: def.title, Deriver: def.derive}
		for _, src := range def.sources {
			label, path := src[0], src[1]
			if override := p[def.name][label]; override != "" {
				path = override
			}
			v.Endpoints = append(v.Endpoints, model.Endpoint{Label: label, URL: path})
		}
		out = append(out, v)
	}
	return out
}

// Names returns the view names in display order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for _, def := range catalogue {
		names = append(names, def.name)
	}
	return names
}

// Lookup returns the named view from views.
func Lookup(views []View, name string) (View, error) {
	for _, v := range views {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("unknown view %q (available: %s)", name, strings.Join(Names(), ", "))
}
