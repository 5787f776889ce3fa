package engine

import (
	"sort"
	"strings"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/model"
	"github.com/dm/meshify/internal/poller"
)

// Endpoint labels shared by the views.
const (
	LabelWorkloads = "workloads"
	LabelCluster   = "cluster"
	LabelAdapters  = "adapters"
	LabelHealth    = "health"
	LabelStats     = "stats"
	LabelStatus    = "status"
)

// Status strings shown to the operator.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusUnknown      = "unknown"
	StatusDemo         = "demo"
	StatusActive       = "active"
	StatusInactive     = "inactive"
	StatusNotInstalled = "not installed"
)

// DeriveDashboard builds the overview page from the workloads, cluster and
// adapters sources. Sources that failed leave their fields at zero values.
func DeriveDashboard(in poller.Input) (model.Summary, error) {
	if in.Outcomes.Succeeded() == 0 {
		return demoDashboard(in.Seq), nil
	}

	s := model.DashboardSummary{ServiceNames: []string{}, Clusters: []model.ClusterInfo{}}

	w, ok, err := decode[client.WorkloadsResponse](in.Outcomes, LabelWorkloads)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Workloads = workloadCounts(w)
		s.ServiceNames = append([]string{}, w.ServiceNames...)
		s.ResourceUtilization = CalcResourceUtilization(s.Workloads)
	}
	s.ServiceCount = s.Workloads.Services
	s.NodeCount = s.Workloads.Nodes

	c, ok, err := decode[client.ClusterResponse](in.Outcomes, LabelCluster)
	if err != nil {
		return nil, err
	}
	s.ConnectionStatus = StatusUnknown
	if ok {
		s.Clusters, s.NumClusters, s.ConnectionStatus = clusterState(c)
		s.ClusterHealth = clusterHealth(c, s.Clusters)
	}

	adapters, _, err := decode[map[string]client.AdapterEntry](in.Outcomes, LabelAdapters)
	if err != nil {
		return nil, err
	}
	s.Adapters = adapterInfos(adapters)
	s.AdapterCount = len(s.Adapters)

	return s, nil
}

func workloadCounts(w client.WorkloadsResponse) model.WorkloadCounts {
	return model.WorkloadCounts{
		DaemonSets:             w.NumDaemonSets,
		Deployments:            w.NumDeployments,
		Nodes:                  w.NumNodes,
		PodTemplates:           w.NumPodTemplates,
		ReplicationControllers: w.NumReplicationControllers,
		Pods:                   w.NumPods,
		Services:               w.NumServices,
	}
}

// clusterState normalises both shapes of the cluster document: a list of
// clusters with activity flags, or a bare count plus status string.
func clusterState(c client.ClusterResponse) (clusters []model.ClusterInfo, count int, status string) {
	clusters = make([]model.ClusterInfo, 0, len(c.Clusters))
	anyActive := false
	for _, e := range c.Clusters {
		clusters = append(clusters, model.ClusterInfo{Name: e.Name, Active: bool(e.IsActive)})
		anyActive = anyActive || bool(e.IsActive)
	}

	count = len(clusters)
	if c.NumClusters != nil {
		count = *c.NumClusters
	}

	switch {
	case c.Status != "":
		status = strings.ToLower(c.Status)
	case len(clusters) == 0:
		status = StatusUnknown
	case anyActive:
		status = StatusConnected
	default:
		status = StatusDisconnected
	}
	return clusters, count, status
}

func clusterHealth(c client.ClusterResponse, clusters []model.ClusterInfo) float64 {
	if len(clusters) > 0 {
		return CalcClusterHealth(clusters)
	}
	if strings.EqualFold(c.Status, StatusConnected) {
		return 100
	}
	return 0
}

// adapterInfos flattens the adapters map into a slice ordered by key.
func adapterInfos(m map[string]client.AdapterEntry) []model.AdapterInfo {
	out := make([]model.AdapterInfo, 0, len(m))
	for key, a := range m {
		name := a.Name
		if name == "" {
			name = key
		}
		out = append(out, model.AdapterInfo{
			Key:         key,
			Name:        name,
			Version:     a.Version,
			Status:      a.Status,
			Description: a.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DeriveHeader builds the header badge from the cluster source alone.
func DeriveHeader(in poller.Input) (model.Summary, error) {
	if in.Outcomes.Succeeded() == 0 {
		return demoHeader(in.Seq), nil
	}
	c, ok, err := decode[client.ClusterResponse](in.Outcomes, LabelCluster)
	if err != nil {
		return nil, err
	}
	s := model.HeaderSummary{ConnectionStatus: StatusUnknown}
	if ok {
		_, s.NumClusters, s.ConnectionStatus = clusterState(c)
		s.Message = c.Message
	}
	return s, nil
}
