package dto

import "time"

// Placeholder sentinels and schema version literals for the ITR-1
// document. A placeholder leaf is never counted as filled.
const (
	ITRSchemaVersion = "Ver1.0"
	ITRFormVersion   = "Ver1.0"

	PlaceholderName         = "REPLACE_WITH_NAME"
	PlaceholderAddress      = "REPLACE_WITH_ADDRESS"
	PlaceholderCity         = "REPLACE_WITH_CITY"
	PlaceholderPAN          = "AAAAA0000A"
	PlaceholderTAN          = "REPLACE_WITH_TAN"
	PlaceholderEmployer     = "REPLACE_WITH_EMPLOYER_NAME"
	PlaceholderBankName     = "REPLACE_BANK_NAME"
	PlaceholderAccountNo    = "REPLACE_ACCOUNT_NUMBER"
	PlaceholderIFSC         = "REPLACE_IFSC"
	PlaceholderBankAddress  = "REPLACE_BANK_ADDRESS"
	PlaceholderVerifierName = "REPLACE_VERIFIER_NAME"
	PlaceholderFatherName   = "REPLACE_FATHER_NAME"
	PlaceholderPlace        = "REPLACE_WITH_PLACE"
)

// ITRDocument is the root of the government ITR-1 JSON schema. JSON tags
// reproduce the portal's field names bit-exactly.
type ITRDocument struct {
	ITR ITR `json:"ITR"`
}

type ITR struct {
	ITR1 ITR1 `json:"ITR1"`
}

type ITR1 struct {
	CreationInfo     CreationInfo     `json:"CreationInfo"`
	FormITR1         FormITR1         `json:"Form_ITR1"`
	PersonalInfo     PersonalInfo     `json:"PersonalInfo"`
	FilingStatus     FilingStatus     `json:"FilingStatus"`
	IncomeDeductions IncomeDeductions `json:"ITR1_IncomeDeductions"`
	TDSonSalaries    TDSonSalaries    `json:"TDSonSalaries"`
	TaxComputation   TaxComputation   `json:"ITR1_TaxComputation"`
	TaxPaid          TaxPaid          `json:"TaxPaid"`
	Refund           Refund           `json:"Refund"`
	Verification     Verification     `json:"Verification"`
}

type CreationInfo struct {
	SWVersionNo      string `json:"SWVersionNo"`
	SWCreatedBy      string `json:"SWCreatedBy"`
	JSONCreatedBy    string `json:"JSONCreatedBy"`
	JSONCreationDate string `json:"JSONCreationDate"`
	IntermediaryCity string `json:"IntermediaryCity"`
	Digest           string `json:"Digest"`
}

type FormITR1 struct {
	FormName       string `json:"FormName"`
	Description    string `json:"Description"`
	AssessmentYear string `json:"AssessmentYear"`
	SchemaVer      string `json:"SchemaVer"`
	FormVer        string `json:"FormVer"`
}

type Address struct {
	AddrDetail           string `json:"AddrDetail"`
	CityOrTownOrDistrict string `json:"CityOrTownOrDistrict"`
	StateCode            string `json:"StateCode"`
	CountryCode          string `json:"CountryCode"`
	PinCode              int    `json:"PinCode"`
}

type PersonalInfo struct {
	AssesseeName       string  `json:"AssesseeName"`
	PAN                string  `json:"PAN"`
	Address            Address `json:"Address"`
	DOB                string  `json:"DOB"`
	Status             string  `json:"Status"`
	EmployerCategory   string  `json:"EmployerCategory"`
	AadhaarCardNo      string  `json:"AadhaarCardNo"`
	AadhaarEnrolmentID string  `json:"AadhaarEnrolmentId"`
}

type FilingStatus struct {
	ReturnFileSec          int    `json:"ReturnFileSec"`
	OptOutNewTaxRegime     string `json:"OptOutNewTaxRegime"`
	SeventhProvisoBusiness string `json:"SeventhProvisoBusiness"`
	ItrFilingDueDate       string `json:"ItrFilingDueDate"`
	ComplianceProviso139   string `json:"ComplianceProviso139"`
}

// UsrChapVIA carries the user-entered Chapter VI-A amounts.
type UsrChapVIA struct {
	Section80C     int `json:"Section80C"`
	Section80CCC   int `json:"Section80CCC"`
	Section80CCD1  int `json:"Section80CCD1"`
	Section80CCD1B int `json:"Section80CCD1B"`
	Section80CCD2  int `json:"Section80CCD2"`
	Section80D     int `json:"Section80D"`
	Section80DD    int `json:"Section80DD"`
	Section80DDB   int `json:"Section80DDB"`
	Section80E     int `json:"Section80E"`
	Section80EE    int `json:"Section80EE"`
	Section80EEA   int `json:"Section80EEA"`
	Section80EEB   int `json:"Section80EEB"`
	Section80G     int `json:"Section80G"`
	Section80GG    int `json:"Section80GG"`
	Section80GGA   int `json:"Section80GGA"`
	Section80GGC   int `json:"Section80GGC"`
	Section80U     int `json:"Section80U"`
	Section80TTA   int `json:"Section80TTA"`
	Section80TTB   int `json:"Section80TTB"`
}

// ChapVIA carries the computed (capped) Chapter VI-A amounts plus their
// running total.
type ChapVIA struct {
	Section80C             int `json:"Section80C"`
	Section80CCC           int `json:"Section80CCC"`
	Section80CCD1          int `json:"Section80CCD1"`
	Section80CCD1B         int `json:"Section80CCD1B"`
	Section80CCD2          int `json:"Section80CCD2"`
	Section80D             int `json:"Section80D"`
	Section80DD            int `json:"Section80DD"`
	Section80DDB           int `json:"Section80DDB"`
	Section80E             int `json:"Section80E"`
	Section80EE            int `json:"Section80EE"`
	Section80EEA           int `json:"Section80EEA"`
	Section80EEB           int `json:"Section80EEB"`
	Section80G             int `json:"Section80G"`
	Section80GG            int `json:"Section80GG"`
	Section80GGA           int `json:"Section80GGA"`
	Section80GGC           int `json:"Section80GGC"`
	Section80U             int `json:"Section80U"`
	Section80TTA           int `json:"Section80TTA"`
	Section80TTB           int `json:"Section80TTB"`
	TotalChapVIADeductions int `json:"TotalChapVIADeductions"`
}

// SectionSum recomputes the total of the Chapter VI-A section amounts.
// Section80CCD2, Section80EEB and Section80GGC do not enter the
// aggregate, per the form's computation sheet.
func (c *ChapVIA) SectionSum() int {
	return c.Section80C + c.Section80CCC + c.Section80CCD1 +
		c.Section80CCD1B + c.Section80D + c.Section80DD +
		c.Section80DDB + c.Section80E + c.Section80EE +
		c.Section80EEA + c.Section80G + c.Section80GG +
		c.Section80GGA + c.Section80U + c.Section80TTA + c.Section80TTB
}

type IncomeDeductions struct {
	GrossSalary                  int        `json:"GrossSalary"`
	AllowExemptUs10              int        `json:"AllowExemptUs10"`
	DeductionUs16                int        `json:"DeductionUs16"`
	EntertainmentAllowanceUs16ii int        `json:"EntertainmentAllowanceUs16ii"`
	ProfessionalTaxUs16iii       int        `json:"ProfessionalTaxUs16iii"`
	IncomeFromSal                int        `json:"IncomeFromSal"`
	NetSalary                    int        `json:"NetSalary"`
	IncomeFromHP                 int        `json:"IncomeFromHP"`
	IncomeFromOS                 int        `json:"IncomeFromOS"`
	UsrDeductUndChapVIA          UsrChapVIA `json:"UsrDeductUndChapVIA"`
	DeductUndChapVIA             ChapVIA    `json:"DeductUndChapVIA"`
	GrossTotIncome               int        `json:"GrossTotIncome"`
	TotalIncome                  int        `json:"TotalIncome"`
}

type EmployerDetail struct {
	TAN          string `json:"TAN"`
	EmployerName string `json:"EmployerOrDeductorOrCollecterName"`
}

// TDSonSalary is one employer's withholding entry. Quarterly amounts are
// emitted only when positive.
type TDSonSalary struct {
	EmployerDetail EmployerDetail `json:"EmployerOrDeductorOrCollectDetl"`
	IncChrgSal     int            `json:"IncChrgSal"`
	TotalTDSSal    int            `json:"TotalTDSSal"`
	TDSSalQ1       int            `json:"TDSSalQ1,omitempty"`
	TDSSalQ2       int            `json:"TDSSalQ2,omitempty"`
	TDSSalQ3       int            `json:"TDSSalQ3,omitempty"`
	TDSSalQ4       int            `json:"TDSSalQ4,omitempty"`
}

type TDSonSalaries struct {
	TDSonSalary        []TDSonSalary `json:"TDSonSalary"`
	TotalTDSonSalaries int           `json:"TotalTDSonSalaries"`
}

type InterestPayable struct {
	IntrstPayUs234A int `json:"IntrstPayUs234A"`
	IntrstPayUs234B int `json:"IntrstPayUs234B"`
	IntrstPayUs234C int `json:"IntrstPayUs234C"`
	IntrstPayUs234F int `json:"IntrstPayUs234F"`
	LateFilingFee   int `json:"LateFilingFee"`
}

type TaxComputation struct {
	TotalTaxPayable     int             `json:"TotalTaxPayable"`
	Rebate87A           int             `json:"Rebate87A"`
	TaxPayableOnRebate  int             `json:"TaxPayableOnRebate"`
	SurchargeOnAbove    int             `json:"SurchargeOnAbove"`
	EducationCess       int             `json:"EducationCess"`
	GrossTaxLiability   int             `json:"GrossTaxLiability"`
	Section89           int             `json:"Section89"`
	NetTaxLiability     int             `json:"NetTaxLiability"`
	TotalIntrstPay      int             `json:"TotalIntrstPay"`
	IntrstPay           InterestPayable `json:"IntrstPay"`
	TotTaxPlusIntrstPay int             `json:"TotTaxPlusIntrstPay"`
}

type TaxesPaid struct {
	AdvanceTax        int `json:"AdvanceTax"`
	TDS               int `json:"TDS"`
	TCS               int `json:"TCS"`
	SelfAssessmentTax int `json:"SelfAssessmentTax"`
	TotalTaxesPaid    int `json:"TotalTaxesPaid"`
}

type TaxPaid struct {
	TaxesPaid     TaxesPaid `json:"TaxesPaid"`
	BalTaxPayable int       `json:"BalTaxPayable"`
}

type BankAccountDetails struct {
	BankName      string `json:"BankName"`
	BankAccountNo string `json:"BankAccountNo"`
	IFSCCode      string `json:"IFSCCode"`
	BankAddress   string `json:"BankAddress"`
	AccountType   string `json:"AccountType"`
	UseForRefund  string `json:"UseForRefund"`
}

type Refund struct {
	RefundDue       int                `json:"RefundDue"`
	BankAccountDtls BankAccountDetails `json:"BankAccountDtls"`
}

type Declaration struct {
	AssesseeVerName string `json:"AssesseeVerName"`
	FatherName      string `json:"FatherName"`
	AssesseeVerPAN  string `json:"AssesseeVerPAN"`
}

type Verification struct {
	Declaration Declaration `json:"Declaration"`
	Capacity    string      `json:"Capacity"`
	Place       string      `json:"Place"`
	Date        string      `json:"Date"`
}

// NewITRDocument builds a complete default document: every numeric leaf
// zero, every textual leaf a recognized placeholder or domain default.
func NewITRDocument(assessmentYear string, standardDeduction int) *ITRDocument {
	today := time.Now().Format("2006-01-02")
	return &ITRDocument{
		ITR: ITR{
			ITR1: ITR1{
				CreationInfo: CreationInfo{
					SWVersionNo:      "1.0",
					SWCreatedBy:      "AI_TAX_AGENT",
					JSONCreatedBy:    "AI_TAX_AGENT",
					JSONCreationDate: today,
					IntermediaryCity: "Mumbai",
					Digest:           "-",
				},
				FormITR1: FormITR1{
					FormName:       "ITR-1",
					Description:    "For Individuals having Income from Salaries, one house property, other sources (Interest etc.) and having total income upto Rs. 50 lakh",
					AssessmentYear: assessmentYear,
					SchemaVer:      ITRSchemaVersion,
					FormVer:        ITRFormVersion,
				},
				PersonalInfo: PersonalInfo{
					AssesseeName: PlaceholderName,
					PAN:          PlaceholderPAN,
					Address: Address{
						AddrDetail:           PlaceholderAddress,
						CityOrTownOrDistrict: PlaceholderCity,
						StateCode:            "27",
						CountryCode:          "IN",
						PinCode:              400001,
					},
					DOB:              "1990-01-01",
					Status:           "I",
					EmployerCategory: "OTH",
				},
				FilingStatus: FilingStatus{
					ReturnFileSec:          11,
					OptOutNewTaxRegime:     "N",
					SeventhProvisoBusiness: "N",
					ItrFilingDueDate:       "2025-07-31",
					ComplianceProviso139:   "N",
				},
				IncomeDeductions: IncomeDeductions{
					DeductionUs16: standardDeduction,
				},
				TDSonSalaries: TDSonSalaries{
					TDSonSalary: []TDSonSalary{},
				},
				Refund: Refund{
					BankAccountDtls: BankAccountDetails{
						BankName:      PlaceholderBankName,
						BankAccountNo: PlaceholderAccountNo,
						IFSCCode:      PlaceholderIFSC,
						BankAddress:   PlaceholderBankAddress,
						AccountType:   "S",
						UseForRefund:  "Y",
					},
				},
				Verification: Verification{
					Declaration: Declaration{
						AssesseeVerName: PlaceholderVerifierName,
						FatherName:      PlaceholderFatherName,
						AssesseeVerPAN:  PlaceholderPAN,
					},
					Capacity: "S",
					Place:    PlaceholderPlace,
					Date:     today,
				},
			},
		},
	}
}
