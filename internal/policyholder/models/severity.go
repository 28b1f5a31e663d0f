package models

// DefaultSeverityCost caps settlements for incident categories missing
// from the table.
const DefaultSeverityCost int64 = 69000

// severityCosts is the fixed expected-loss ceiling per incident
// category. It is configuration, not derived data: the figures are flat
// monetary units agreed at underwriting time.
var severityCosts = map[string]int64{
	"businessemailcompromise":           123000,
	"hacker":                            430000,
	"legalaction":                       90000,
	"lostdevice":                        57000,
	"malware/virus":                     160000,
	"negligence":                        63000,
	"phishing":                          72000,
	"privacybreach":                     13000,
	"programmingerror":                  348000,
	"ransomware":                        179000,
	"rogueemployee/malisiousinsider":    91000,
	"socialengineering":                 114000,
	"staffmistake":                      13000,
	"systemglitch":                      1500000,
	"theftofhardware":                   16000,
	"theftofmoney":                      102000,
	"thirdparty":                        33000,
	"trademark/copyrightinfringement":   166000,
	"unauthorizedaccess":                20000,
	"wiretransferfraud":                 289000,
	"wrongfuldatacollection":            42000,
	"other":                             58000,
}

// SeverityCost returns the ceiling cost for an incident category, or the
// default for unrecognized categories.
func SeverityCost(incidentName string) int64 {
	if cost, ok := severityCosts[incidentName]; ok {
		return cost
	}
	return DefaultSeverityCost
}
