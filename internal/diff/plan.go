package diff

// TableAction is what a run does with one table
type TableAction string

const (
	TableCreate  TableAction = "CREATE"
	TableDrop    TableAction = "DROP"
	TableCompare TableAction = "COMPARE"
)

// PlannedTable is one step of the table-level plan
type PlannedTable struct {
	Name   string
	Action TableAction
}

// PlanTables decides what happens to every table found on either side.
// Creates come first in reference order, followed by drops and comparisons
// in target order.
func PlanTables(reference, target []string, gates Gates) []PlannedTable {
	refSet := makeSet(reference)
	targetSet := makeSet(target)

	var plan []PlannedTable
	if gates.Additive {
		for _, name := range reference {
			if !targetSet[name] {
				plan = append(plan, PlannedTable{Name: name, Action: TableCreate})
			}
		}
	}
	for _, name := range target {
		switch {
		case refSet[name]:
			plan = append(plan, PlannedTable{Name: name, Action: TableCompare})
		case gates.Destructive:
			plan = append(plan, PlannedTable{Name: name, Action: TableDrop})
		}
	}
	return plan
}

func makeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
