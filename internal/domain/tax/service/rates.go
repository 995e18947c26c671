package service

// Static fallback rate tables, used when the live jurisdiction lookup is
// unavailable.

type fallbackRate struct {
	Federal float64
	State   float64
	Name    string
}

// Canadian GST/HST/PST/QST combinations keyed by province code.
var canadaRates = map[string]fallbackRate{
	"AB": {Federal: 0.05, Name: "GST"},
	"BC": {Federal: 0.05, State: 0.07, Name: "GST + PST"},
	"MB": {Federal: 0.05, State: 0.07, Name: "GST + PST"},
	"NB": {Federal: 0.15, Name: "HST"},
	"NL": {Federal: 0.15, Name: "HST"},
	"NS": {Federal: 0.15, Name: "HST"},
	"NT": {Federal: 0.05, Name: "GST"},
	"NU": {Federal: 0.05, Name: "GST"},
	"ON": {Federal: 0.13, Name: "HST"},
	"PE": {Federal: 0.15, Name: "HST"},
	"QC": {Federal: 0.05, State: 0.09975, Name: "GST + QST"},
	"SK": {Federal: 0.05, State: 0.06, Name: "GST + PST"},
	"YT": {Federal: 0.05, Name: "GST"},
}

// US state sales tax, state component only. The table is deliberately
// incomplete; unlisted states get usGenericRate with low confidence.
var usRates = map[string]fallbackRate{
	"CA": {State: 0.0725, Name: "CA Sales Tax"},
	"FL": {State: 0.06, Name: "FL Sales Tax"},
	"IL": {State: 0.0625, Name: "IL Sales Tax"},
	"MI": {State: 0.06, Name: "MI Sales Tax"},
	"NJ": {State: 0.06625, Name: "NJ Sales Tax"},
	"NY": {State: 0.04, Name: "NY Sales Tax"},
	"OH": {State: 0.0575, Name: "OH Sales Tax"},
	"PA": {State: 0.06, Name: "PA Sales Tax"},
	"TX": {State: 0.0625, Name: "TX Sales Tax"},
	"WA": {State: 0.065, Name: "WA Sales Tax"},
}

const usGenericRate = 0.05
