package booking

type Transition struct {
	From Status
	To   Status
}

var transitionsTable = []Transition{
	{From: StatusConfirmed, To: StatusCancelled},
	{From: StatusConfirmed, To: StatusCompleted},
	{From: StatusConfirmed, To: StatusNoShow},
}

func CanTransition(from, to Status) bool {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.To == to {
			return true
		}
	}
	return false
}
