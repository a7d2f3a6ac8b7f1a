package calendar

// shoppingSundays lists the Sundays on which trade is permitted. 2019 follows
// the transitional regime (last Sunday of every month); later years follow
// StatutorySundays.
var shoppingSundays = [][3]int{
	{2019, 1, 27},
	{2019, 2, 24},
	{2019, 3, 31},
	{2019, 4, 14},
	{2019, 4, 28},
	{2019, 5, 26},
	{2019, 6, 30},
	{2019, 7, 28},
	{2019, 8, 25},
	{2019, 9, 29},
	{2019, 10, 27},
	{2019, 11, 24},
	{2019, 12, 15},
	{2019, 12, 22},
	{2019, 12, 29},

	{2020, 1, 26},
	{2020, 4, 5},
	{2020, 4, 26},
	{2020, 6, 28},
	{2020, 8, 30},
	{2020, 12, 13},
	{2020, 12, 20},

	{2021, 1, 31},
	{2021, 3, 28},
	{2021, 4, 25},
	{2021, 6, 27},
	{2021, 8, 29},
	{2021, 12, 12},
	{2021, 12, 19},

	{2022, 1, 30},
	{2022, 4, 10},
	{2022, 4, 24},
	{2022, 6, 26},
	{2022, 8, 28},
	{2022, 12, 11},
	{2022, 12, 18},

	{2023, 1, 29},
	{2023, 4, 2},
	{2023, 4, 30},
	{2023, 6, 25},
	{2023, 8, 27},
	{2023, 12, 17},
	{2023, 12, 24},

	{2024, 1, 28},
	{2024, 3, 24},
	{2024, 4, 28},
	{2024, 6, 30},
	{2024, 8, 25},
	{2024, 12, 15},
	{2024, 12, 22},

	{2025, 1, 26},
	{2025, 4, 13},
	{2025, 4, 27},
	{2025, 6, 29},
	{2025, 8, 31},
	{2025, 12, 7},
	{2025, 12, 14},
	{2025, 12, 21},

	{2026, 1, 25},
	{2026, 3, 29},
	{2026, 4, 26},
	{2026, 6, 28},
	{2026, 8, 30},
	{2026, 12, 6},
	{2026, 12, 13},
	{2026, 12, 20},
}

// defaultTable is built once at package initialization. A malformed literal
// panics here, before any request is served.
var defaultTable = mustLiteralTable(shoppingSundays)

// Default returns the shipped shopping Sunday table
func Default() *Table {
	return defaultTable
}

func literalTable(entries [][3]int) (*Table, error) {
	dates := make([]Date, 0, len(entries))
	for _, e := range entries {
		d, err := NewDate(e[0], e[1], e[2])
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return NewTable(dates)
}

func mustLiteralTable(entries [][3]int) *Table {
	t, err := literalTable(entries)
	if err != nil {
		panic("calendar: malformed shopping sunday table: " + err.Error())
	}
	return t
}
