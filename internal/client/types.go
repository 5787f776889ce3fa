package client

import (
	"encoding/json"
	"strings"
)

// FlexBool decodes either a JSON boolean or a string such as "true".
// The backend reports cluster activity as the string "true".
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = FlexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
	return nil
}

// WorkloadsResponse represents the response from /api/kube/workloads.
type WorkloadsResponse struct {
	NumDaemonSets             int      `json:"numDaemonSets"`
	NumDeployments            int      `json:"numDeployments"`
	NumNodes                  int      `json:"numNodes"`
	NumPodTemplates           int      `json:"numPodTemplates"`
	NumReplicationControllers int      `json:"numReplicationControllers"`
	NumPods                   int      `json:"numPods"`
	NumServices               int      `json:"numServices"`
	ServiceNames              []string `json:"serviceNames"`
}

// ClusterResponse represents the response from /api/kube/cluster.
// Older backends send a cluster list; newer ones only a status string.
type ClusterResponse struct {
	NumClusters *int           `json:"numClusters"`
	Clusters    []ClusterEntry `json:"clusters"`
	Status      string         `json:"status"`
	Message     string         `json:"message"`
}

// ClusterEntry is a single cluster in ClusterResponse.
type ClusterEntry struct {
	Name     string   `json:"name"`
	IsActive FlexBool `json:"isactive"`
}

// AdapterEntry is one value of the /api/adapters map.
type AdapterEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MonitoringServiceEntry is one element of /api/prometheusgrafana/health/status.
type MonitoringServiceEntry struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Address   string `json:"address"`
	Port      int    `json:"port"`
	Namespace string `json:"namespace"`
	Health    string `json:"health"`
	Version   string `json:"version"`
}

// MonitoringStatsResponse represents the response from /api/monitoring/stats.
type MonitoringStatsResponse struct {
	ActiveMetrics    int    `json:"active_metrics"`
	ActiveAlerts     int    `json:"active_alerts"`
	WarningAlerts    int    `json:"warning_alerts"`
	CriticalAlerts   int    `json:"critical_alerts"`
	CustomDashboards int    `json:"custom_dashboards"`
	DataRetention    string `json:"data_retention"`
	ScrapeTargets    int    `json:"scrape_targets"`
	HealthyTargets   int    `json:"healthy_targets"`
}

// ComponentEntry is a mesh control-plane workload.
type ComponentEntry struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Ready     string `json:"ready"`
	Age       string `json:"age"`
	Image     string `json:"image"`
}

// ServiceEntry is a Kubernetes service as reported by the mesh endpoints.
type ServiceEntry struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Type      string `json:"type"`
	Injected  bool   `json:"injected"`
}

// NamedEntry is any named mesh resource whose details are not displayed.
type NamedEntry struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// LinkerdStatusResponse represents the response from /api/linkerd/status.
type LinkerdStatusResponse struct {
	IsInstalled  bool   `json:"is_installed"`
	Version      string `json:"version"`
	Error        string `json:"error"`
	ControlPlane struct {
		Status    string `json:"status"`
		Version   string `json:"version"`
		Namespace string `json:"namespace"`
		Healthy   bool   `json:"healthy"`
	} `json:"control_plane"`
	DataPlane struct {
		ProxiesTotal   int    `json:"proxies_total"`
		ProxiesHealthy int    `json:"proxies_healthy"`
		Coverage       string `json:"coverage"`
	} `json:"data_plane"`
	Components      []ComponentEntry `json:"components"`
	Services        []ServiceEntry   `json:"services"`
	TrafficSplits   []NamedEntry     `json:"traffic_splits"`
	ServiceProfiles []NamedEntry     `json:"service_profiles"`
}

// IstioStatusResponse represents the response from /api/istio/status.
type IstioStatusResponse struct {
	IsInstalled     bool             `json:"is_installed"`
	Version         string           `json:"version"`
	Components      []ComponentEntry `json:"components"`
	Namespaces      []string         `json:"namespaces"`
	Services        []ServiceEntry   `json:"services"`
	VirtualServices []NamedEntry     `json:"virtual_services"`
	Gateways        []NamedEntry     `json:"gateways"`
}
