package output

// DefaultAssumptions lists the allocation rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Financial years run twelve calendar months from the roadmap start, ending the day before the next year begins",
	"Implementation cost is charged in full in the year its implementation starts",
	"One-time fixed fee is charged in full in the year ongoing operation starts",
	"PEPM cost bills every month the ongoing window touches inside a year, partial months in full",
	"Fixed annual cost is charged in full for every year the ongoing window touches",
	"Charges anchored outside the three roadmap years are not counted",
}
