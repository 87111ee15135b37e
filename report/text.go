package report

import (
	"fmt"
	"strings"
)

// RenderText formats a grouped summary as the plain-text body of the
// emailed report: a header per employee with their rate, one line per
// entry, and a grand total footer.
func RenderText(g *GroupedSummary) string {
	var b strings.Builder

	b.WriteString("Approved timesheet report\n")
	b.WriteString("=========================\n\n")

	for _, group := range g.Groups {
		fmt.Fprintf(&b, "%s (rate %.2f/h)\n", group.Employee.DisplayName(), group.Rate)
		for _, e := range group.Entries {
			fmt.Fprintf(&b, "  %s  %-30s  %6.2f h  %10.2f\n",
				e.Date.Format("02.01.2006"), e.Task.Name, e.Hours, e.TotalSalary())
		}
		fmt.Fprintf(&b, "  subtotal: %.2f\n\n", group.Subtotal)
	}

	fmt.Fprintf(&b, "TOTAL HOURS: %.2f\nTOTAL SALARY: %.2f\n", g.TotalHours, g.TotalSalary)
	return b.String()
}
