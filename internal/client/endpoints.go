package client

// Default backend paths, one per data source of the dashboard pages.
const (
	PathWorkloads        = "/api/kube/workloads"
	PathCluster          = "/api/kube/cluster"
	PathAdapters         = "/api/adapters"
	PathMonitoringHealth = "/api/prometheusgrafana/health/status"
	PathMonitoringStats  = "/api/monitoring/stats"
	PathLinkerdStatus    = "/api/linkerd/status"
	PathIstioStatus      = "/api/istio/status"
)
