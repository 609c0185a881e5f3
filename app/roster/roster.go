// Package roster holds the fixed table of clients the digest watches for.
package roster

// Entity is one watched client. Aliases detect mentions; when ContextAny is
// non-empty, at least one of its keywords must co-occur with an alias for a
// mention to count.
type Entity struct {
	Name       string
	Aliases    []string
	ContextAny []string
}

// Clients is the watched roster. Order matters: a record is attributed to
// the first matching entry only, so earlier entries take priority.
var Clients = []Entity{
	{"4PB", []string{"4PB", "4 Paper Buildings", "Four Paper Buildings"}, []string{"barristers", "family", "chambers", "court", "law"}},
	{"Bolt Burdon Kemp", []string{"Bolt Burdon Kemp", "BBK"}, []string{"law", "solicitors", "firm", "claims", "clinical negligence", "PI"}},
	{"Cooke Young & Keidan", []string{"Cooke Young & Keidan", "CYK"}, []string{"law", "litigation", "disputes", "London"}},
	{"FOIL", []string{"FOIL", "Forum of Insurance Lawyers"}, []string{"insurance", "law", "solicitors", "claims"}},
	{"London Market FOIL", []string{"London Market FOIL"}, []string{"insurance", "London Market", "law"}},
	{"LSLA", []string{"LSLA", "London Solicitors Litigation Association"}, []string{"litigation", "solicitors", "law"}},
	{"Nottingham Law School", []string{"Nottingham Law School", "NLS"}, []string{"Nottingham", "students", "legal", "university", "Trent"}},
	{"Oury Clark", []string{"Oury Clark", "OuryClark"}, []string{"law", "accounting", "solicitors", "firm"}},
	{"Alto Claritas", []string{"Alto Claritas"}, []string{"legal", "law", "solicitors"}},
	{"SA Law", []string{"SA Law", "SALaw"}, []string{"law", "solicitors", "St Albans", "Watford"}},
	{"Wilsons", []string{"Wilsons Solicitors", "Wilsons LLP", "Wilsons (Salisbury)", "Wilsons"}, []string{"law", "solicitors", "firm", "Salisbury"}},
}
