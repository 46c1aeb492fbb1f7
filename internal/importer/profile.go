package importer

// Profile describes the header names of a supported CSV layout.
// Matching is case-insensitive; the description column is optional.
type Profile struct {
	Name        string
	DateCol     string
	CategoryCol string
	AmountCol   string
	DescCol     string
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.CategoryCol, p.AmountCol}
}

// profiles is tried in order against every row until one matches.
var profiles = []Profile{
	{
		Name:        "english",
		DateCol:     "date",
		CategoryCol: "category",
		AmountCol:   "amount",
		DescCol:     "description",
	},
	{
		Name:        "portuguese",
		DateCol:     "data",
		CategoryCol: "categoria",
		AmountCol:   "montante",
		DescCol:     "descrição",
	},
}
