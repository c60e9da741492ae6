package models

// Company scopes every entity list.
type Company struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Companies is the fixed set of companies the console can switch between.
var Companies = []Company{
	{ID: "1", Name: "Cabal"},
	{ID: "2", Name: "TransFleet SA"},
	{ID: "3", Name: "Logística Norte"},
}

// DefaultCompany is active until the user picks another one.
func DefaultCompany() Company {
	return Companies[0]
}

// FindCompany looks up a company by id.
func FindCompany(id string) (Company, bool) {
	for _, c := range Companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}
