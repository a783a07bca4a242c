package scholarship

import (
	"slices"

	"github.com/ka2n/ufvdata/api"
	"github.com/ka2n/ufvdata/api/reshape"
	"github.com/ka2n/ufvdata/log"
	"github.com/samber/lo"
)

var (
	eligibility        = reshape.Label{Text: "Eligibility:"}
	selectionProcess   = reshape.Label{Text: "Selection Process:"}
	applicationProcess = reshape.Label{Text: "Application Process:"}
	numberOfAwards     = reshape.Label{Text: "Number of Awards:"}
	value              = reshape.Label{Text: "Value:"}
	renewable          = reshape.Label{Text: "Renewable?:"}
	ceremony           = reshape.Label{Text: "Ceremony:"}
	donor              = reshape.Label{Text: "Donor:"}
	deadline           = reshape.Label{Text: "Deadline:"}

	programName = reshape.Label{Text: "Program Name:", Array: true}
	credential  = reshape.Label{Text: "Credential:"}
	yearLevel   = reshape.Label{Text: "Year Level:"}
	campus      = reshape.Label{Text: "Campus:"}
)

// Build formats raws and validates the result.
func Build(raws []Raw) ([]Scholarship, error) {
	out := Format(raws)
	if err := api.Check("scholarships", out); err != nil {
		return nil, err
	}
	return out, nil
}

// Format turns scraped awards into Scholarships, keeping their order.
func Format(raws []Raw) []Scholarship {
	return lo.Map(raws, func(r Raw, _ int) Scholarship {
		if len(r.FacultyData) > 0 {
			log.Warn("Award has faculty data", "code", r.Code, "items", len(r.FacultyData))
		}
		return Scholarship{
			Info:        formatInfo(r.Award),
			AwardData:   formatAwardData(r.Details),
			ProgramData: formatProgramData(r.ProgramData),
		}
	})
}

func formatInfo(a Award) Info {
	return Info{
		Code:                a.Code,
		Description:         string(a.Desc),
		Type:                a.TypeDesc,
		WebText:             string(a.WebText),
		AdditionalDocuments: bool(a.AddDocDesc),
		Amount:              (*string)(a.FundAmt),
	}
}

func formatAwardData(d Details) AwardData {
	items := d.AwardData
	return AwardData{
		Eligibility:        reshape.Extract(items, eligibility),
		SelectionProcess:   reshape.Extract(items, selectionProcess),
		ApplicationProcess: reshape.Extract(items, applicationProcess),
		NumberofAwards:     reshape.Extract(items, numberOfAwards),
		Value:              reshape.Extract(items, value),
		Renewable:          reshape.Extract(items, renewable),
		Ceremony:           mergeCeremony(items, d.ProgramData),
		Donor:              reshape.Extract(items, donor),
		Deadline:           reshape.Extract(items, deadline),
	}
}

func formatProgramData(items []reshape.Item) ProgramData {
	return ProgramData{
		ProgramName: reshape.Extract(items, programName),
		Credential:  reshape.Extract(items, credential),
		YearLevel:   reshape.Extract(items, yearLevel),
		Campus:      reshape.Extract(items, campus),
	}
}

// mergeCeremony returns the award's ceremony followed by any program level
// ceremony that does not repeat it.
func mergeCeremony(award, program []reshape.Item) reshape.Value {
	own := reshape.Extract(award, ceremony)
	seen := own.Strings()
	extra := lo.Filter(reshape.Extract(program, ceremony).Strings(), func(s string, _ int) bool {
		return !slices.Contains(seen, s)
	})
	if len(extra) == 0 {
		return own
	}

	merged := append(slices.Clone(seen), lo.Uniq(extra)...)
	if len(merged) == 1 {
		return reshape.Scalar(merged[0])
	}
	return reshape.List(merged...)
}
