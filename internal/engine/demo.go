package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/dm/meshify/internal/model"
)

// Ranges of the synthetic values shown while no source is reachable.
const (
	demoHealthMin, demoHealthMax           = 75.0, 95.0
	demoUtilizationMin, demoUtilizationMax = 40.0, 70.0
	demoServicesMin, demoServicesMax       = 8, 13
	demoNodesMin, demoNodesMax             = 3, 5
	demoAdaptersMin, demoAdaptersMax       = 2, 5
)

// demoStream is seeded by the cycle sequence number and a per-view salt so
// that demo values are reproducible for a given Input.
type demoStream struct {
	r *rand.Rand
}

func newDemoStream(seq uint64, view string) demoStream {
	var salt uint64
	for _, c := range view {
		salt = salt*31 + uint64(c)
	}
	return demoStream{r: rand.New(rand.NewPCG(seq, salt))}
}

// intn returns an int in [lo, hi].
func (d demoStream) intn(lo, hi int) int {
	return lo + d.r.IntN(hi-lo+1)
}

// float returns a float in [lo, hi] rounded to one decimal.
func (d demoStream) float(lo, hi float64) float64 {
	return round1(lo + d.r.Float64()*(hi-lo))
}

var demoAdapterCatalogue = []model.AdapterInfo{
	{Key: "istio", Name: "Istio", Version: "1.20.0", Status: "demo"},
	{Key: "linkerd", Name: "Linkerd", Version: "2.14.0", Status: "demo"},
	{Key: "consul", Name: "Consul", Version: "1.17.0", Status: "demo"},
	{Key: "cilium", Name: "Cilium", Version: "1.14.0", Status: "demo"},
	{Key: "kuma", Name: "Kuma", Version: "2.5.0", Status: "demo"},
}

func demoDashboard(seq uint64) model.DashboardSummary {
	d := newDemoStream(seq, model.ViewDashboard)
	services := d.intn(demoServicesMin, demoServicesMax)
	nodes := d.intn(demoNodesMin, demoNodesMax)
	adapters := d.intn(demoAdaptersMin, demoAdaptersMax)

	names := make([]string, services)
	for i := range names {
		names[i] = fmt.Sprintf("demo-service-%d", i+1)
	}
	return model.DashboardSummary{
		Workloads: model.WorkloadCounts{
			Nodes:       nodes,
			Services:    services,
			Deployments: services,
			Pods:        services * 2,
			DaemonSets:  nodes,
		},
		ServiceNames:        names,
		Clusters:            []model.ClusterInfo{{Name: "demo-cluster", Active: true}},
		NumClusters:         1,
		ConnectionStatus:    StatusDemo,
		ClusterHealth:       d.float(demoHealthMin, demoHealthMax),
		ResourceUtilization: d.float(demoUtilizationMin, demoUtilizationMax),
		ServiceCount:        services,
		NodeCount:           nodes,
		AdapterCount:        adapters,
		Adapters:            append([]model.AdapterInfo(nil), demoAdapterCatalogue[:adapters]...),
	}
}

func demoHeader(seq uint64) model.HeaderSummary {
	d := newDemoStream(seq, model.ViewHeader)
	return model.HeaderSummary{
		NumClusters:      d.intn(1, 3),
		ConnectionStatus: StatusDemo,
		Message:          "backend unreachable",
	}
}

func demoMonitoring(seq uint64) model.MonitoringSummary {
	d := newDemoStream(seq, model.ViewMonitoring)
	targets := d.intn(20, 40)
	healthy := targets - d.intn(0, 3)
	return model.MonitoringSummary{
		Services: []model.MonitoringService{
			{Name: "prometheus", Status: StatusInactive, Namespace: "monitoring", Port: 9090},
			{Name: "grafana", Status: StatusInactive, Namespace: "monitoring", Port: 3000},
		},
		Stats: model.MonitoringStats{
			ActiveMetrics:    d.intn(800, 1500),
			ActiveAlerts:     d.intn(0, 5),
			CustomDashboards: d.intn(3, 10),
			DataRetention:    "15d",
			ScrapeTargets:    targets,
			HealthyTargets:   healthy,
		},
		TargetHealth: percent(healthy, targets),
	}
}

func demoComponents(namespace string, names ...string) []model.ComponentStatus {
	out := make([]model.ComponentStatus, 0, len(names))
	for _, n := range names {
		out = append(out, model.ComponentStatus{Name: n, Namespace: namespace, Status: "Running", Ready: "1/1"})
	}
	return out
}

func demoLinkerd(seq uint64) model.LinkerdSummary {
	d := newDemoStream(seq, model.ViewLinkerd)
	comps := demoComponents("linkerd", "linkerd-destination", "linkerd-identity", "linkerd-proxy-injector")
	total := d.intn(demoServicesMin, demoServicesMax)
	healthy := total - d.intn(0, 2)
	return model.LinkerdSummary{
		Version:            "demo",
		ControlPlaneStatus: StatusNotInstalled,
		ProxiesTotal:       total,
		ProxiesHealthy:     healthy,
		ProxyCoverage:      percent(healthy, total),
		Components:         comps,
		ComponentsReady:    len(comps),
	}
}

func demoIstio(seq uint64) model.IstioSummary {
	d := newDemoStream(seq, model.ViewIstio)
	comps := demoComponents("istio-system", "istiod", "istio-ingressgateway", "istio-egressgateway")
	adapters := d.intn(demoAdaptersMin, demoAdaptersMax)
	return model.IstioSummary{
		Version:         "demo",
		Components:      comps,
		ComponentsReady: len(comps),
		Namespaces:      []string{"default"},
		Services:        d.intn(demoServicesMin, demoServicesMax),
		VirtualServices: d.intn(1, 4),
		Gateways:        d.intn(1, 2),
		Adapters:        append([]model.AdapterInfo(nil), demoAdapterCatalogue[:adapters]...),
	}
}

func demoCilium(seq uint64) model.CiliumSummary {
	d := newDemoStream(seq, model.ViewCilium)
	nodes := d.intn(demoNodesMin, demoNodesMax)
	services := d.intn(demoServicesMin, demoServicesMax)
	adapters := append([]model.AdapterInfo(nil), demoAdapterCatalogue...)
	var cilium *model.AdapterInfo
	for i := range adapters {
		if adapters[i].Key == ciliumAdapterKey {
			cilium = &adapters[i]
		}
	}
	return model.CiliumSummary{
		Status: StatusInactive,
		Workloads: model.WorkloadCounts{
			Nodes:      nodes,
			DaemonSets: nodes,
			Services:   services,
			Pods:       services * 2,
		},
		Adapter:  cilium,
		Adapters: adapters,
	}
}
