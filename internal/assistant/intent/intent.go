// Package intent classifies user messages into the closed set of banking
// service intents.
package intent

// Intent is a label from the closed classification set.
type Intent string

const (
	CheckBalance          Intent = "check_balance"
	TransferMoney         Intent = "transfer_money"
	LoanEligibility       Intent = "loan_eligibility"
	LinkAadhaar           Intent = "link_aadhaar"
	ActivateMobileBanking Intent = "activate_mobile_banking"
	OpenFDRD              Intent = "open_fd_rd"
	CardServices          Intent = "card_services"
	FindBranchATM         Intent = "find_branch_atm"
	MiniStatement         Intent = "mini_statement"
	FraudPrevention       Intent = "fraud_prevention"
	RekycProcess          Intent = "rekyc_process"
	ResetMPIN             Intent = "reset_mpin"

	// GeneralInquiry is the catch-all banking intent.
	GeneralInquiry Intent = "general_inquiry"

	// Unrecognized marks messages the classifier could not map to any
	// banking service, including classifier failures.
	Unrecognized Intent = "unrecognized_intent"
)

// Services lists every service intent the catalog must cover, in prompt order.
// GeneralInquiry is included; Unrecognized is a sentinel and is not.
func Services() []Intent {
	return []Intent{
		CheckBalance,
		TransferMoney,
		LoanEligibility,
		LinkAadhaar,
		ActivateMobileBanking,
		OpenFDRD,
		CardServices,
		FindBranchATM,
		MiniStatement,
		FraudPrevention,
		RekycProcess,
		ResetMPIN,
		GeneralInquiry,
	}
}

// Descriptions maps each service intent to the one-line description shown to
// the classifier model.
var Descriptions = map[Intent]string{
	CheckBalance:          "Check account balance via SMS/Mobile banking",
	TransferMoney:         "Transfer money using RTGS/NEFT/IMPS/UPI",
	LoanEligibility:       "Check Kisan Credit Card eligibility and documentation",
	LinkAadhaar:           "Link Aadhaar to bank account",
	ActivateMobileBanking: "Activate mobile banking services",
	OpenFDRD:              "Open Fixed Deposit or Recurring Deposit",
	CardServices:          "Debit card activation / blocking services",
	FindBranchATM:         "Find nearby Bank of Maharashtra branches / ATMs",
	MiniStatement:         "Get mini statements via missed call / SMS / app",
	FraudPrevention:       "UPI fraud prevention and safety tips and any type of fraud prevention",
	RekycProcess:          "Re-KYC process information",
	ResetMPIN:             "Reset MPIN securely",
}

// IsService reports whether label is a known service intent (catalog-backed).
func IsService(label Intent) bool {
	switch label {
	case Unrecognized, GeneralInquiry:
		return false
	}
	_, ok := Descriptions[label]
	return ok
}

// Parse maps raw classifier output to an Intent, falling back to Unrecognized
// for anything outside the closed set.
func Parse(raw string) Intent {
	label := Intent(raw)
	if label == GeneralInquiry {
		return GeneralInquiry
	}
	if _, ok := Descriptions[label]; ok {
		return label
	}
	return Unrecognized
}
