package tui

import (
	"strconv"

	"github.com/dm/meshify/internal/model"
)

// newViewTable returns the table shown below the cards of a view. Views
// without tabular data get a table with no columns, which renders nothing.
func newViewTable(view string) tableModel {
	switch view {
	case model.ViewDashboard, model.ViewIstio, model.ViewCilium:
		return newTableModel("Mesh Adapters", []columnDef{
			{Title: "Key"}, {Title: "Name"}, {Title: "Version"}, {Title: "Status"},
		})
	case model.ViewMonitoring:
		return newTableModel("Monitoring Services", []columnDef{
			{Title: "Name"}, {Title: "Namespace"}, {Title: "Status"}, {Title: "Health"},
			{Title: "Port", Numeric: true}, {Title: "Version"},
		})
	case model.ViewLinkerd:
		return newTableModel("Control Plane", []columnDef{
			{Title: "Name"}, {Title: "Namespace"}, {Title: "Status"}, {Title: "Ready", Numeric: true},
		})
	default:
		return newTableModel("", nil)
	}
}

// tableRows converts the tabular part of a summary into rows matching
// newViewTable's columns.
func tableRows(s model.Summary) [][]string {
	var rows [][]string
	switch s := s.(type) {
	case model.DashboardSummary:
		rows = adapterRows(s.Adapters)
	case model.IstioSummary:
		rows = adapterRows(s.Adapters)
	case model.CiliumSummary:
		rows = adapterRows(s.Adapters)
	case model.MonitoringSummary:
		for _, svc := range s.Services {
			rows = append(rows, []string{svc.Name, svc.Namespace, svc.Status, svc.Health, strconv.Itoa(svc.Port), svc.Version})
		}
	case model.LinkerdSummary:
		for _, c := range s.Components {
			rows = append(rows, []string{c.Name, c.Namespace, c.Status, c.Ready})
		}
	}
	return rows
}

func adapterRows(adapters []model.AdapterInfo) [][]string {
	rows := make([][]string, 0, len(adapters))
	for _, a := range adapters {
		rows = append(rows, []string{a.Key, a.Name, a.Version, a.Status})
	}
	return rows
}
