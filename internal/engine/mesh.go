package engine

import (
	"sort"
	"strings"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// DeriveMonitoring builds the Prometheus/Grafana page.
func DeriveMonitoring(in poller.Input) (model.Summary, error) {
	if in.Outcomes.Succeeded() == 0 {
		return demoMonitoring(in.Seq), nil
	}

	s := model.MonitoringSummary{Services: []model.MonitoringService{}}

	entries, _, err := decode[[]client.MonitoringServiceEntry](in.Outcomes, LabelHealth)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		svc := model.MonitoringService(e)
		s.Services = append(s.Services, svc)
		active := serviceActive(svc)
		name := strings.ToLower(svc.Name)
		switch {
		case strings.Contains(name, "prometheus"):
			s.PrometheusActive = s.PrometheusActive || active
		case strings.Contains(name, "grafana"):
			s.GrafanaActive = s.GrafanaActive || active
		}
	}

	stats, ok, err := decode[client.MonitoringStatsResponse](in.Outcomes, LabelStats)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Stats = model.MonitoringStats(stats)
		s.TargetHealth = percent(stats.HealthyTargets, stats.ScrapeTargets)
	}
	return s, nil
}

func serviceActive(s model.MonitoringService) bool {
	switch strings.ToLower(s.Status) {
	case StatusActive, "running", "up", "healthy":
		return true
	}
	return strings.EqualFold(s.Health, "healthy")
}

func componentStatuses(entries []client.ComponentEntry) (out []model.ComponentStatus, ready int) {
	out = make([]model.ComponentStatus, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.ComponentStatus{Name: e.Name, Namespace: e.Namespace, Status: e.Status, Ready: e.Ready})
		if componentReady(e.Ready, e.Status) {
			ready++
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, ready
}

// DeriveLinkerd builds the Linkerd page.
func DeriveLinkerd(in poller.Input) (model.Summary, error) {
	if in.Outcomes.Succeeded() == 0 {
		return demoLinkerd(in.Seq), nil
	}

	st, ok, err := decode[client.LinkerdStatusResponse](in.Outcomes, LabelStatus)
	if err != nil {
		return nil, err
	}
	s := model.LinkerdSummary{ControlPlaneStatus: StatusUnknown, Components: []model.ComponentStatus{}}
	if !ok {
		return s, nil
	}

	s.Installed = st.IsInstalled
	s.Version = st.ControlPlane.Version
	if s.Version == "" {
		s.Version = st.Version
	}
	s.ControlPlaneStatus = st.ControlPlane.Status
	if !st.IsInstalled {
		s.ControlPlaneStatus = StatusNotInstalled
	}
	s.ControlPlaneHealthy = st.ControlPlane.Healthy
	s.ProxiesTotal = st.DataPlane.ProxiesTotal
	s.ProxiesHealthy = st.DataPlane.ProxiesHealthy
	s.ProxyCoverage = percent(st.DataPlane.ProxiesHealthy, st.DataPlane.ProxiesTotal)
	s.Components, s.ComponentsReady = componentStatuses(st.Components)
	for _, svc := range st.Services {
		if svc.Injected {
			s.InjectedServices++
		}
	}
	s.TrafficSplits = len(st.TrafficSplits)
	s.ServiceProfiles = len(st.ServiceProfiles)
	return s, nil
}

// DeriveIstio builds the Istio page from the status and adapters sources.
func DeriveIstio(in poller.Input) (model.Summary, error) {
	if in.Outcomes.Succeeded() == 0 {
		return demoIstio(in.Seq), nil
	}

	s := model.IstioSummary{Components: []model.ComponentStatus{}, Namespaces: []string{}}

	st, ok, err := decode[client.IstioStatusResponse](in.Outcomes, LabelStatus)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Installed = st.IsInstalled
		s.Version = st.Version
		s.Components, s.ComponentsReady = componentStatuses(st.Components)
		s.Namespaces = append(s.Namespaces, st.Namespaces...)
		sort.Strings(s.Namespaces)
		s.Services = len(st.Services)
		s.VirtualServices = len(st.VirtualServices)
		s.Gateways = len(st.Gateways)
	}

	adapters, _, err := decode[map[string]client.AdapterEntry](in.Outcomes, LabelAdapters)
	if err != nil {
		return nil, err
	}
	s.Adapters = adapterInfos(adapters)
	return s, nil
}

// ciliumAdapterKey is the key of Cilium in the adapters document.
const ciliumAdapterKey = "cilium"

// DeriveCilium builds the Cilium page from the workloads and adapters sources.
func DeriveCilium(in poller.Input) (model.Summary, error) {
	if in.Outcomes.Succeeded() == 0 {
		return demoCilium(in.Seq), nil
	}

	s := model.CiliumSummary{Status: StatusInactive}

	w, ok, err := decode[client.WorkloadsResponse](in.Outcomes, LabelWorkloads)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Status = StatusActive
		s.Workloads = workloadCounts(w)
	}

	adapters, _, err := decode[map[string]client.AdapterEntry](in.Outcomes, LabelAdapters)
	if err != nil {
		return nil, err
	}
	s.Adapters = adapterInfos(adapters)
	for _, a := range s.Adapters {
		if strings.EqualFold(a.Key, ciliumAdapterKey) {
			s.Adapter = &a
		}
	}
	return s, nil
}
