package engine

import (
	"fmt"
	"sort"

	"github.com/dm/meshify/internal/model"
)

// Thresholds for advisories.
const (
	healthWarnPercent     = 80.0
	healthCriticalPercent = 50.0
	coverageWarnPercent   = 80.0
	targetWarnPercent     = 90.0
)

// CalcAdvisories generates operator-facing notes for a snapshot, most
// severe first. Returns an empty (non-nil) slice when there is nothing to say.
func CalcAdvisories(snap model.Snapshot) []model.Advisory {
	result := []model.Advisory{}

	if snap.UsingFallback {
		result = append(result, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Showing demo data",
			Detail:   fmt.Sprintf("No data source responded in cycle %d. Values are synthetic until the backend is reachable.", snap.Seq),
		})
	} else {
		for _, label := range snap.Outcomes.Labels() {
			if oc := snap.Outcomes[label]; !oc.OK() {
				result = append(result, model.Advisory{
					Severity: model.SeverityWarning,
					Title:    fmt.Sprintf("Source %s unavailable", label),
					Detail:   oc.Err,
				})
			}
		}
	}

	// Demo summaries carry synthetic numbers; don't alarm on them.
	if !snap.UsingFallback {
		switch s := snap.Summary.(type) {
		case model.DashboardSummary:
			result = append(result, dashboardAdvisories(s)...)
		case model.HeaderSummary:
			result = append(result, connectionAdvisories(s.ConnectionStatus)...)
		case model.MonitoringSummary:
			result = append(result, monitoringAdvisories(s)...)
		case model.LinkerdSummary:
			result = append(result, linkerdAdvisories(s)...)
		case model.IstioSummary:
			result = append(result, istioAdvisories(s)...)
		case model.CiliumSummary:
			result = append(result, ciliumAdvisories(s)...)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Severity > result[j].Severity
	})
	return result
}

func connectionAdvisories(status string) []model.Advisory {
	if status != StatusDisconnected {
		return nil
	}
	return []model.Advisory{{
		Severity: model.SeverityCritical,
		Title:    "Cluster disconnected",
		Detail:   "The backend reports no active cluster connection.",
	}}
}

func dashboardAdvisories(s model.DashboardSummary) []model.Advisory {
	recs := connectionAdvisories(s.ConnectionStatus)
	if len(s.Clusters) > 0 {
		switch {
		case s.ClusterHealth < healthCriticalPercent:
			recs = append(recs, model.Advisory{
				Severity: model.SeverityCritical,
				Title:    "Cluster health critical",
				Detail:   fmt.Sprintf("Only %.0f%% of %d clusters are active.", s.ClusterHealth, len(s.Clusters)),
			})
		case s.ClusterHealth < healthWarnPercent:
			recs = append(recs, model.Advisory{
				Severity: model.SeverityWarning,
				Title:    "Cluster health degraded",
				Detail:   fmt.Sprintf("%.0f%% of %d clusters are active.", s.ClusterHealth, len(s.Clusters)),
			})
		}
	}
	if s.ResourceUtilization >= maxUtilization {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Resource utilisation at ceiling",
			Detail:   fmt.Sprintf("%d pods, %d services and %d deployments put the estimate at its %.0f%% cap.", s.Workloads.Pods, s.Workloads.Services, s.Workloads.Deployments, maxUtilization),
		})
	}
	if s.AdapterCount == 0 {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityNormal,
			Title:    "No mesh adapters",
			Detail:   "The backend reports no service-mesh adapters.",
		})
	}
	return recs
}

func monitoringAdvisories(s model.MonitoringSummary) []model.Advisory {
	var recs []model.Advisory
	if !s.PrometheusActive {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Prometheus inactive",
			Detail:   "Metrics are not being scraped.",
		})
	}
	if !s.GrafanaActive {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Grafana inactive",
			Detail:   "Dashboards are unavailable.",
		})
	}
	if s.Stats.CriticalAlerts > 0 {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityCritical,
			Title:    "Critical alerts firing",
			Detail:   fmt.Sprintf("%d critical alert(s) active.", s.Stats.CriticalAlerts),
		})
	}
	if s.Stats.ScrapeTargets > 0 && s.TargetHealth < targetWarnPercent {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Unhealthy scrape targets",
			Detail:   fmt.Sprintf("%d of %d targets healthy (%.1f%%).", s.Stats.HealthyTargets, s.Stats.ScrapeTargets, s.TargetHealth),
		})
	}
	return recs
}

func componentAdvisory(mesh string, total, ready int) []model.Advisory {
	if ready >= total {
		return nil
	}
	return []model.Advisory{{
		Severity: model.SeverityWarning,
		Title:    mesh + " components not ready",
		Detail:   fmt.Sprintf("%d of %d control-plane components ready.", ready, total),
	}}
}

func linkerdAdvisories(s model.LinkerdSummary) []model.Advisory {
	if !s.Installed {
		return []model.Advisory{{Severity: model.SeverityNormal, Title: "Linkerd not installed"}}
	}
	var recs []model.Advisory
	if !s.ControlPlaneHealthy {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityCritical,
			Title:    "Linkerd control plane unhealthy",
			Detail:   fmt.Sprintf("Control plane status: %s.", s.ControlPlaneStatus),
		})
	}
	if s.ProxiesTotal > 0 && s.ProxyCoverage < coverageWarnPercent {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Low proxy coverage",
			Detail:   fmt.Sprintf("%d of %d proxies healthy (%.1f%%).", s.ProxiesHealthy, s.ProxiesTotal, s.ProxyCoverage),
		})
	}
	return append(recs, componentAdvisory("Linkerd", len(s.Components), s.ComponentsReady)...)
}

func istioAdvisories(s model.IstioSummary) []model.Advisory {
	if !s.Installed {
		return []model.Advisory{{Severity: model.SeverityNormal, Title: "Istio not installed"}}
	}
	return componentAdvisory("Istio", len(s.Components), s.ComponentsReady)
}

func ciliumAdvisories(s model.CiliumSummary) []model.Advisory {
	var recs []model.Advisory
	if s.Status != StatusActive {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Title:    "Cilium status unknown",
			Detail:   "The workloads source did not answer; Cilium pods cannot be checked.",
		})
	}
	if s.Adapter == nil {
		recs = append(recs, model.Advisory{Severity: model.SeverityNormal, Title: "Cilium adapter not offered by the backend"})
	}
	return recs
}
