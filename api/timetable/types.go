package timetable

import "github.com/ka2n/ufvdata/api/schema"

// Term is an academic term offered by class search.
type Term struct {
	Code        string `json:"code" validate:"yyyymm00"`
	Description string `json:"description" validate:"min=1"`
}

// setTermResponse is the body returned after selecting a search term.
type setTermResponse struct {
	FwdURL string `json:"fwdURL" validate:"eq=/StudentRegistrationSsb/ssb/null/null"`
}

type ResultsConfig struct {
	Config   string `json:"config" validate:"min=1"`
	Display  string `json:"display" validate:"min=1"`
	Title    string `json:"title" validate:"min=1"`
	Required bool   `json:"required"`
	Width    string `json:"width" validate:"min=1"`
}

// SearchPage is one page of class search results.
type SearchPage struct {
	Success              bool             `json:"success" validate:"eq=true"`
	TotalCount           int              `json:"totalCount" validate:"min=0"`
	PageOffset           int              `json:"pageOffset" validate:"min=0"`
	PageMaxSize          int              `json:"pageMaxSize" validate:"min=0,max=500"`
	SectionsFetchedCount int              `json:"sectionsFetchedCount" validate:"min=0"`
	PathMode             schema.Null      `json:"pathMode"`
	ZtcEncodedImage      *string          `json:"ztcEncodedImage"`
	SearchResultsConfigs *[]ResultsConfig `json:"searchResultsConfigs" validate:"omitnil,min=1,dive"`
	Data                 []Section        `json:"data" validate:"dive"`
}

// SearchCount is the response to a search without a page offset. The
// portal reports the total but refuses to return any data.
type SearchCount struct {
	Success              bool             `json:"success" validate:"eq=false"`
	TotalCount           int              `json:"totalCount" validate:"min=0"`
	PageOffset           int              `json:"pageOffset" validate:"eq=-1"`
	PageMaxSize          int              `json:"pageMaxSize" validate:"min=0,max=500"`
	SectionsFetchedCount int              `json:"sectionsFetchedCount" validate:"min=0"`
	PathMode             schema.Null      `json:"pathMode"`
	ZtcEncodedImage      *string          `json:"ztcEncodedImage"`
	SearchResultsConfigs *[]ResultsConfig `json:"searchResultsConfigs" validate:"omitnil,min=1,dive"`
	Data                 []Section        `json:"data" validate:"len=0"`
}

// Section is a course section as class search returns it.
//
// Available counts (seats, waitlist, cross list) are signed: the portal
// has been seen reporting them below zero.
type Section struct {
	ID                             int                  `json:"id" validate:"gt=0"`
	Term                           string               `json:"term" validate:"yyyymm00"`
	TermDesc                       string               `json:"termDesc" validate:"min=1"`
	CourseReferenceNumber          string               `json:"courseReferenceNumber" validate:"digits"`
	PartOfTerm                     string               `json:"partOfTerm" validate:"min=1"`
	CourseNumber                   string               `json:"courseNumber" validate:"min=1"`
	Subject                        string               `json:"subject" validate:"min=1"`
	SubjectDescription             string               `json:"subjectDescription" validate:"min=1"`
	SequenceNumber                 string               `json:"sequenceNumber" validate:"min=1"`
	CampusDescription              string               `json:"campusDescription" validate:"min=1"`
	ScheduleTypeDescription        string               `json:"scheduleTypeDescription" validate:"min=1"`
	CourseTitle                    string               `json:"courseTitle" validate:"min=1"`
	CreditHours                    *float64             `json:"creditHours" validate:"omitnil,min=0"`
	MaximumEnrollment              int                  `json:"maximumEnrollment" validate:"min=0"`
	Enrollment                     int                  `json:"enrollment" validate:"min=0"`
	SeatsAvailable                 int                  `json:"seatsAvailable"`
	WaitCapacity                   int                  `json:"waitCapacity" validate:"min=0"`
	WaitCount                      int                  `json:"waitCount"`
	WaitAvailable                  int                  `json:"waitAvailable" validate:"min=0"`
	CrossList                      *string              `json:"crossList" validate:"omitnil,min=1"`
	CrossListCapacity              *int                 `json:"crossListCapacity" validate:"omitnil,gt=0"`
	CrossListCount                 *int                 `json:"crossListCount" validate:"omitnil,min=0"`
	CrossListAvailable             *int                 `json:"crossListAvailable"`
	CreditHourHigh                 *float64             `json:"creditHourHigh" validate:"omitnil,gt=0"`
	CreditHourLow                  float64              `json:"creditHourLow" validate:"min=0"`
	CreditHourIndicator            *string              `json:"creditHourIndicator" validate:"omitnil,min=1"`
	OpenSection                    bool                 `json:"openSection"`
	LinkIdentifier                 *string              `json:"linkIdentifier" validate:"omitnil,min=1"`
	IsSectionLinked                bool                 `json:"isSectionLinked"`
	SubjectCourse                  string               `json:"subjectCourse" validate:"min=1"`
	Faculty                        []SectionInstructor  `json:"faculty" validate:"dive"`
	MeetingsFaculty                []Meeting            `json:"meetingsFaculty" validate:"dive"`
	ReservedSeatSummary            *ReservedSeatSummary `json:"reservedSeatSummary"`
	SectionAttributes              schema.Null          `json:"sectionAttributes"`
	InstructionalMethod            *string              `json:"instructionalMethod" validate:"omitnil,min=1"`
	InstructionalMethodDescription *string              `json:"instructionalMethodDescription" validate:"omitnil,min=1"`
}

// Instructor is a section's instructor as published.
type Instructor struct {
	Category              *string `json:"category" validate:"omitnil,digits"`
	Class                 string  `json:"class" validate:"min=1"`
	CourseReferenceNumber string  `json:"courseReferenceNumber" validate:"digits"`
	DisplayName           string  `json:"displayName" validate:"min=1"`
	EmailAddress          *string `json:"emailAddress" validate:"omitnil,min=1"`
	PrimaryIndicator      bool    `json:"primaryIndicator"`
	Term                  string  `json:"term" validate:"yyyymm00"`
}

// SectionInstructor is an instructor as class search returns it, including
// the internal Banner ID that is never published.
type SectionInstructor struct {
	BannerID string `json:"bannerId" validate:"digits"`
	Instructor
}

type Meeting struct {
	Category              string      `json:"category" validate:"digits"`
	Class                 string      `json:"class" validate:"min=1"`
	CourseReferenceNumber string      `json:"courseReferenceNumber" validate:"digits"`
	Faculty               []any       `json:"faculty"`
	MeetingTime           MeetingTime `json:"meetingTime"`
	Term                  string      `json:"term" validate:"yyyymm00"`
}

type MeetingTime struct {
	BeginTime              *string  `json:"beginTime" validate:"omitnil,hhmm24"`
	Building               *string  `json:"building" validate:"omitnil,min=1"`
	BuildingDescription    *string  `json:"buildingDescription" validate:"omitnil,min=1"`
	Campus                 *string  `json:"campus" validate:"omitnil,min=1"`
	CampusDescription      *string  `json:"campusDescription" validate:"omitnil,min=1"`
	Category               string   `json:"category" validate:"digits"`
	Class                  string   `json:"class" validate:"min=1"`
	CourseReferenceNumber  string   `json:"courseReferenceNumber" validate:"digits"`
	CreditHourSession      *float64 `json:"creditHourSession" validate:"omitnil,floatdigits,min=0"`
	EndDate                string   `json:"endDate" validate:"mmddyyyy"`
	EndTime                *string  `json:"endTime" validate:"omitnil,hhmm24"`
	Friday                 bool     `json:"friday"`
	HoursWeek              float64  `json:"hoursWeek" validate:"floatdigits,min=0"`
	MeetingScheduleType    string   `json:"meetingScheduleType" validate:"min=1"`
	MeetingType            string   `json:"meetingType" validate:"min=1"`
	MeetingTypeDescription string   `json:"meetingTypeDescription" validate:"min=1"`
	Monday                 bool     `json:"monday"`
	Room                   *string  `json:"room" validate:"omitnil,min=1"`
	Saturday               bool     `json:"saturday"`
	StartDate              string   `json:"startDate" validate:"mmddyyyy"`
	Sunday                 bool     `json:"sunday"`
	Term                   string   `json:"term" validate:"yyyymm00"`
	Thursday               bool     `json:"thursday"`
	Tuesday                bool     `json:"tuesday"`
	Wednesday              bool     `json:"wednesday"`
}

// ReservedSeatSummary splits a section's capacity into reserved and
// unreserved seats.
type ReservedSeatSummary struct {
	Class                       string `json:"class" validate:"eq=net.hedtech.banner.student.schedule.SectionReservedSeatSummaryDecorator"`
	CourseReferenceNumber       string `json:"courseReferenceNumber" validate:"digits"`
	MaximumEnrollmentReserved   int    `json:"maximumEnrollmentReserved" validate:"min=0"`
	MaximumEnrollmentUnreserved int    `json:"maximumEnrollmentUnreserved" validate:"min=0"`
	SeatsAvailableReserved      int    `json:"seatsAvailableReserved"`
	SeatsAvailableUnreserved    int    `json:"seatsAvailableUnreserved"`
	TermCode                    string `json:"termCode" validate:"yyyymm00"`
	WaitAvailableReserved       int    `json:"waitAvailableReserved" validate:"min=0"`
	WaitAvailableUnreserved     int    `json:"waitAvailableUnreserved"`
	WaitCapacityReserved        int    `json:"waitCapacityReserved" validate:"min=0"`
	WaitCapacityUnreserved      int    `json:"waitCapacityUnreserved" validate:"min=0"`
}

// Course is a published section. Its faculty list shadows the embedded
// one and carries no Banner IDs.
type Course struct {
	Section
	Faculty []Instructor `json:"faculty" validate:"dive"`
}

// Timetable is every course offered in one term.
type Timetable struct {
	Term    string   `json:"term" validate:"min=1"`
	Courses []Course `json:"courses" validate:"dive"`
}
