package model

// View names.
const (
	ViewDashboard  = "dashboard"
	ViewHeader     = "header"
	ViewMonitoring = "monitoring"
	ViewLinkerd    = "linkerd"
	ViewIstio      = "istio"
	ViewCilium     = "cilium"
)

// WorkloadCounts holds the Kubernetes object counts reported by the backend.
type WorkloadCounts struct {
	DaemonSets             int `json:"daemon_sets"`
	Deployments            int `json:"deployments"`
	Nodes                  int `json:"nodes"`
	PodTemplates           int `json:"pod_templates"`
	ReplicationControllers int `json:"replication_controllers"`
	Pods                   int `json:"pods"`
	Services               int `json:"services"`
}

// ClusterInfo is one entry of the connection status list.
type ClusterInfo struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// AdapterInfo describes one service-mesh adapter offered by the backend.
type AdapterInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// ComponentStatus is a control-plane component of a mesh.
type ComponentStatus struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Ready     string `json:"ready"`
}

// DashboardSummary is derived from the workloads, cluster and adapters sources.
// ClusterHealth and ResourceUtilization are percentages in [0, 100].
type DashboardSummary struct {
	Workloads           WorkloadCounts `json:"workloads"`
	ServiceNames        []string       `json:"service_names"`
	Clusters            []ClusterInfo  `json:"clusters"`
	NumClusters         int            `json:"num_clusters"`
	ConnectionStatus    string         `json:"connection_status"`
	ClusterHealth       float64        `json:"cluster_health"`
	ResourceUtilization float64        `json:"resource_utilization"`
	ServiceCount        int            `json:"service_count"`
	NodeCount           int            `json:"node_count"`
	AdapterCount        int            `json:"adapter_count"`
	Adapters            []AdapterInfo  `json:"adapters"`
}

func (DashboardSummary) ViewName() string { return ViewDashboard }

// Point converts the summary into a time-series sample.
func (s DashboardSummary) Point() SeriesPoint {
	return SeriesPoint{
		ClusterHealth:       s.ClusterHealth,
		ResourceUtilization: s.ResourceUtilization,
		ServiceCount:        float64(s.ServiceCount),
		NodeCount:           float64(s.NodeCount),
		AdapterCount:        float64(s.AdapterCount),
	}
}

// HeaderSummary backs the header badge: cluster count and connection state.
type HeaderSummary struct {
	NumClusters      int    `json:"num_clusters"`
	ConnectionStatus string `json:"connection_status"`
	Message          string `json:"message,omitempty"`
}

func (HeaderSummary) ViewName() string { return ViewHeader }

// MonitoringService is the health record of Prometheus or Grafana.
type MonitoringService struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Address   string `json:"address"`
	Port      int    `json:"port"`
	Namespace string `json:"namespace"`
	Health    string `json:"health"`
	Version   string `json:"version"`
}

// MonitoringStats mirrors the backend's monitoring statistics document.
type MonitoringStats struct {
	ActiveMetrics    int    `json:"active_metrics"`
	ActiveAlerts     int    `json:"active_alerts"`
	WarningAlerts    int    `json:"warning_alerts"`
	CriticalAlerts   int    `json:"critical_alerts"`
	CustomDashboards int    `json:"custom_dashboards"`
	DataRetention    string `json:"data_retention"`
	ScrapeTargets    int    `json:"scrape_targets"`
	HealthyTargets   int    `json:"healthy_targets"`
}

// MonitoringSummary is derived from the Prometheus/Grafana health sources.
type MonitoringSummary struct {
	Services         []MonitoringService `json:"services"`
	PrometheusActive bool                `json:"prometheus_active"`
	GrafanaActive    bool                `json:"grafana_active"`
	Stats            MonitoringStats     `json:"stats"`
	TargetHealth     float64             `json:"target_health"`
}

func (MonitoringSummary) ViewName() string { return ViewMonitoring }

// LinkerdSummary is derived from the Linkerd status source.
type LinkerdSummary struct {
	Installed           bool              `json:"installed"`
	Version             string            `json:"version"`
	ControlPlaneStatus  string            `json:"control_plane_status"`
	ControlPlaneHealthy bool              `json:"control_plane_healthy"`
	ProxiesTotal        int               `json:"proxies_total"`
	ProxiesHealthy      int               `json:"proxies_healthy"`
	ProxyCoverage       float64           `json:"proxy_coverage"`
	Components          []ComponentStatus `json:"components"`
	ComponentsReady     int               `json:"components_ready"`
	InjectedServices    int               `json:"injected_services"`
	TrafficSplits       int               `json:"traffic_splits"`
	ServiceProfiles     int               `json:"service_profiles"`
}

func (LinkerdSummary) ViewName() string { return ViewLinkerd }

// IstioSummary is derived from the Istio status and adapters sources.
type IstioSummary struct {
	Installed       bool              `json:"installed"`
	Version         string            `json:"version"`
	Components      []ComponentStatus `json:"components"`
	ComponentsReady int               `json:"components_ready"`
	Namespaces      []string          `json:"namespaces"`
	Services        int               `json:"services"`
	VirtualServices int               `json:"virtual_services"`
	Gateways        int               `json:"gateways"`
	Adapters        []AdapterInfo     `json:"adapters"`
}

func (IstioSummary) ViewName() string { return ViewIstio }

// CiliumSummary is derived from the workloads and adapters sources. Status
// is active while the workloads source answers. Adapter is the backend's
// Cilium adapter entry, nil when it offers none.
type CiliumSummary struct {
	Status    string         `json:"status"`
	Workloads WorkloadCounts `json:"workloads"`
	Adapter   *AdapterInfo   `json:"adapter,omitempty"`
	Adapters  []AdapterInfo  `json:"adapters"`
}

func (CiliumSummary) ViewName() string { return ViewCilium }
