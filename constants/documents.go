package constants

// DocumentKind identifies one of the seven permit attachments. The stable
// values are the multipart field names used by the upload form.
type DocumentKind string

const (
	IDCard              DocumentKind = "IDCardAttachment"
	KBORegisterExtract  DocumentKind = "KBORegisterExtract"
	GazettePublication  DocumentKind = "OfficialGazettePublication"
	MoralityCertificate DocumentKind = "MoralityCertificate"
	LiabilityInsurance  DocumentKind = "LiabilityInsuranceCopy"
	CommercialLease     DocumentKind = "CommercialLeaseAgreement"
	ElectricCertificate DocumentKind = "ElectricCertificate"
)

// AllKinds lists every attachment expected in a submission, in report order.
var AllKinds = []DocumentKind{
	IDCard,
	KBORegisterExtract,
	GazettePublication,
	MoralityCertificate,
	LiabilityInsurance,
	CommercialLease,
	ElectricCertificate,
}

// resultKeys maps each kind to its key in the aggregated report.
var resultKeys = map[DocumentKind]string{
	IDCard:              "id_card_valid",
	KBORegisterExtract:  "kbo_register_valid",
	GazettePublication:  "official_gazette_valid",
	MoralityCertificate: "morality_certificate_valid",
	LiabilityInsurance:  "liability_insurance_valid",
	CommercialLease:     "commercial_lease_valid",
	ElectricCertificate: "electric_certificate_valid",
}

// ResultKey returns the report key for this document's validation result.
func (k DocumentKind) ResultKey() string {
	return resultKeys[k]
}

// IsKnown reports whether k is one of the seven expected attachments.
func (k DocumentKind) IsKnown() bool {
	_, ok := resultKeys[k]
	return ok
}
