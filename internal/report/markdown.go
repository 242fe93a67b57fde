// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// renderMarkdown produces the report body. Section order and line formats
// are stable so reports diff cleanly between runs.
func renderMarkdown(generatedAt time.Time, diff types.DiffResult, validation types.ValidationResult) string {
	var lines []string
	add := func(l string) { lines = append(lines, l) }

	add("# Congressional Data Update Report")
	add("")
	add(fmt.Sprintf("Generated on: %s", generatedAt.Format("2006-01-02 15:04:05")))
	add("")

	add("## House of Representatives")
	add("")
	houseSection(&lines, "New Representatives", diff.New.House)
	houseSection(&lines, "Updated Representatives", diff.Updated.House)
	houseSection(&lines, "Removed Representatives", diff.Removed.House)

	add("## Senate")
	add("")
	senateSection(&lines, "New Senators", diff.New.Senate)
	senateSection(&lines, "Updated Senators", diff.Updated.Senate)
	senateSection(&lines, "Removed Senators", diff.Removed.Senate)

	add("## Summary")
	add("")
	add("### House of Representatives")
	add(fmt.Sprintf("- New: %d", len(diff.New.House)))
	add(fmt.Sprintf("- Updated: %d", len(diff.Updated.House)))
	add(fmt.Sprintf("- Removed: %d", len(diff.Removed.House)))
	add("")
	add("### Senate")
	add(fmt.Sprintf("- New: %d", len(diff.New.Senate)))
	add(fmt.Sprintf("- Updated: %d", len(diff.Updated.Senate)))
	add(fmt.Sprintf("- Removed: %d", len(diff.Removed.Senate)))
	add("")

	add("## Validation Results")
	add("")
	if len(validation.Errors) > 0 {
		add("### Errors")
		add("")
		for _, e := range validation.Errors {
			add("- " + e)
		}
		add("")
	}
	if len(validation.Warnings) > 0 {
		add("### Warnings")
		add("")
		for _, w := range validation.Warnings {
			add("- " + w)
		}
		add("")
	}

	return strings.Join(lines, "\n")
}

func houseSection(lines *[]string, heading string, members []types.Member) {
	if len(members) == 0 {
		return
	}
	sorted := append([]types.Member(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].State != sorted[j].State {
			return sorted[i].State < sorted[j].State
		}
		return districtText(sorted[i]) < districtText(sorted[j])
	})

	*lines = append(*lines, "### "+heading, "")
	for _, m := range sorted {
		*lines = append(*lines, fmt.Sprintf("- %s (%s) - %s, %s", m.Name, m.Party, m.State, districtText(m)))
	}
	*lines = append(*lines, "")
}

// districtText renders the district for display; a member with no district
// value is shown as at-large.
func districtText(m types.Member) string {
	if m.District == nil {
		return "At Large"
	}
	return m.District.String()
}

func senateSection(lines *[]string, heading string, members []types.Member) {
	if len(members) == 0 {
		return
	}
	sorted := append([]types.Member(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].State != sorted[j].State {
			return sorted[i].State < sorted[j].State
		}
		return sorted[i].StateRank < sorted[j].StateRank
	})

	*lines = append(*lines, "### "+heading, "")
	for _, m := range sorted {
		if m.StateRank != "" {
			rank := strings.ToUpper(m.StateRank[:1]) + m.StateRank[1:]
			*lines = append(*lines, fmt.Sprintf("- %s (%s) - %s Senator, %s", m.Name, m.Party, rank, m.State))
		} else {
			*lines = append(*lines, fmt.Sprintf("- %s (%s) - %s", m.Name, m.Party, m.State))
		}
	}
	*lines = append(*lines, "")
}
