package components

import "fmt"

// Field is one labelled line of a unit description for the selection panel.
type Field struct {
	Label string
	Value string
}

// Describe returns the display fields for a selected unit.
func Describe(u UnitView) []Field {
	role := u.Type.String()
	if u.IsWorker {
		role += ", worker"
	}
	spouse := u.SpouseID
	if spouse == "" {
		spouse = "-"
	}
	fields := []Field{
		{Label: "ID", Value: u.ID},
		{Label: "Country", Value: u.CountryID},
		{Label: "Role", Value: role},
		{Label: "Gender", Value: u.Gender.String()},
		{Label: "Age", Value: fmt.Sprintf("%.1f", u.Age)},
		{Label: "Health", Value: fmt.Sprintf("%.0f", u.Health)},
		{Label: "Energy", Value: fmt.Sprintf("%.1f", u.Energy)},
		{Label: "Resources", Value: fmt.Sprintf("%.1f", u.Resources)},
		{Label: "Children", Value: fmt.Sprintf("%d", u.Children)},
		{Label: "Spouse", Value: spouse},
		{Label: "Fitness", Value: fmt.Sprintf("%.2f", u.Fitness)},
	}
	if u.Pregnant {
		fields = append(fields, Field{Label: "Pregnant", Value: fmt.Sprintf("since %.1f", u.LastRepro)})
	}
	return fields
}
