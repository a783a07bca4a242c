package scholarship

import (
	"github.com/ka2n/ufvdata/api/reshape"
	"github.com/ka2n/ufvdata/api/schema"
)

// Award is an entry of the award list.
type Award struct {
	AddDocDesc    schema.YesNo     `json:"addDocDesc"`
	Class         string           `json:"class" validate:"eq=net.hedtech.banner.finaid.SyvawgiDecorator"`
	ApplAddDocInd bool             `json:"syvawgiApplAddDocInd"`
	TypeDesc      string           `json:"syvawgiAtypDesc" validate:"min=1"`
	Code          string           `json:"syvawgiAwrdCode" validate:"min=4"`
	Desc          schema.Trimmed   `json:"syvawgiAwrdDesc" validate:"min=1"`
	FundAmt       *schema.Currency `json:"syvawgiFundAmt" validate:"omitnil,startswith=$"`
	WebText       schema.Trimmed   `json:"syvawgiWebText" validate:"min=1"`
}

type awardList struct {
	Result  []Award `json:"result" validate:"dive"`
	Success bool    `json:"success" validate:"eq=true"`
	Length  int     `json:"length" validate:"min=0"`
	Offset  int     `json:"offset" validate:"min=0"`
	Max     int     `json:"max" validate:"min=0"`
}

// Details holds the label/value lists describing one award.
type Details struct {
	AwardsFound  bool           `json:"awardsFound"`
	AwardData    []reshape.Item `json:"awardData" validate:"dive"`
	ProgramFound bool           `json:"programFound"`
	ProgramData  []reshape.Item `json:"programData" validate:"dive"`
	FacultyFound bool           `json:"facultyFound"`
	FacultyData  []reshape.Item `json:"facultyData" validate:"dive"`
}

// Raw is an award together with its details, exactly as scraped.
type Raw struct {
	Award
	Details
}

// Info describes an award itself.
type Info struct {
	Code                string  `json:"code" validate:"min=4"`
	Description         string  `json:"description" validate:"min=1"`
	Type                string  `json:"type" validate:"min=1"`
	WebText             string  `json:"webText" validate:"min=1"`
	AdditionalDocuments bool    `json:"additionalDocuments"`
	Amount              *string `json:"amount" validate:"omitnil,startswith=$"`
}

// AwardData is looked up from Details.AwardData.
type AwardData struct {
	Eligibility        reshape.Value `json:"eligibility" validate:"dive,min=1"`
	SelectionProcess   reshape.Value `json:"selectionProcess" validate:"dive,min=1"`
	ApplicationProcess reshape.Value `json:"applicationProcess" validate:"dive,min=1"`
	NumberofAwards     reshape.Value `json:"numberofAwards" validate:"dive,min=1"`
	Value              reshape.Value `json:"value" validate:"dive,min=1"`
	Renewable          reshape.Value `json:"renewable" validate:"dive,min=1"`
	Ceremony           reshape.Value `json:"ceremony" validate:"dive,min=1"`
	Donor              reshape.Value `json:"donor" validate:"dive,min=1"`
	Deadline           reshape.Value `json:"deadline" validate:"dive,min=1"`
}

// ProgramData is looked up from Details.ProgramData.
type ProgramData struct {
	ProgramName reshape.Value `json:"programName" validate:"dive,min=1"`
	Credential  reshape.Value `json:"credential" validate:"dive,min=1"`
	YearLevel   reshape.Value `json:"yearLevel" validate:"dive,min=1"`
	Campus      reshape.Value `json:"campus" validate:"dive,min=1"`
}

// Scholarship is one published award.
type Scholarship struct {
	Info
	AwardData
	ProgramData
}
