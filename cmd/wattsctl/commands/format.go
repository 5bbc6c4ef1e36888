package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/dabloons/wattsd/pkg/client"
)

// LightTableData returns the table data for a light, with bold ID and value
func LightTableData(l client.Light) pterm.TableData {
	data := pterm.TableData{
		[]string{pterm.Bold.Sprint("ID"), pterm.Bold.Sprint(l.ID)},
		[]string{"Name", l.Name},
		[]string{"Integration", l.Integration},
		[]string{"Vendor ID", l.VendorID},
		[]string{"On", fmt.Sprintf("%v", l.State.On)},
		[]string{"Brightness", formatPercent(l.State.Brightness)},
		[]string{"Hue", formatDegrees(l.State.Hue)},
		[]string{"Saturation", formatOptionalPercent(l.State.Saturation)},
	}
	if l.Address != "" {
		data = append(data, []string{"Address", l.Address})
	}
	return data
}

// RoomTableData returns the table data for a room
func RoomTableData(r client.Room) pterm.TableData {
	data := pterm.TableData{
		[]string{pterm.Bold.Sprint("ID"), pterm.Bold.Sprint(r.ID)},
		[]string{"Name", r.Name},
		[]string{"Lights", strings.Join(r.LightIDs, ", ")},
	}
	for _, integration := range sortedKeys(r.IntegrationIDs) {
		data = append(data, []string{
			fmt.Sprintf("Group (%s)", integration),
			r.IntegrationIDs[integration],
		})
	}
	return data
}

// LightParseable returns the parseable key=value string for a light
func LightParseable(l client.Light) string {
	return fmt.Sprintf(
		"id=%q name=%q integration=%q vendor_id=%q address=%q on=%v brightness=%.2f hue=%s saturation=%s",
		l.ID, l.Name, l.Integration, l.VendorID, l.Address,
		l.State.On, l.State.Brightness,
		parseableFloat(l.State.Hue), parseableFloat(l.State.Saturation),
	)
}

// RoomParseable returns the parseable key=value string for a room
func RoomParseable(r client.Room) string {
	groups := make([]string, 0, len(r.IntegrationIDs))
	for _, integration := range sortedKeys(r.IntegrationIDs) {
		groups = append(groups, integration+":"+r.IntegrationIDs[integration])
	}
	return fmt.Sprintf(
		"id=%q name=%q lights=%q groups=%q",
		r.ID, r.Name, strings.Join(r.LightIDs, ","), strings.Join(groups, ","),
	)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatOptionalPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatPercent(*v)
}

func formatDegrees(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f°", *v)
}

func parseableFloat(v *float64) string {
	if v == nil {
		return "\"\""
	}
	return fmt.Sprintf("%.2f", *v)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
