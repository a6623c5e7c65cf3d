// internal/compliance/compliance.go

// Package compliance evaluates a job's compliance requirements against a
// candidate's compliance checklist. The evaluator is pure and total: absent
// or malformed records degrade to "not configured" or "not satisfied", never
// to an error.
package compliance

import "fmt"

// Requirement is the per-job record of which compliance rules apply.
// Six independent sections, each a set of boolean "this requirement applies"
// flags. May be entirely empty (no requirements configured).
type Requirement struct {
	Driving           DrivingRequirement     `json:"drivingTransportation"`
	WorkAuthorization WorkAuthRequirement    `json:"workAuthorization"`
	Physical          PhysicalRequirement    `json:"physicalEnvironmental"`
	DrugTesting       DrugTestingRequirement `json:"drugTesting"`
	Licensing         LicensingRequirement   `json:"professionalLicensing"`
	RoleRestrictions  RoleRequirement        `json:"roleRestrictions"`
}

type DrivingRequirement struct {
	RequiresValidDriversLicense    bool `json:"requiresValidDriversLicense"`
	RequiresMVRStandards           bool `json:"requiresMVRStandards"`
	RequiresReliableTransportation bool `json:"requiresReliableTransportation"`
	DrivingEssentialDuty           bool `json:"drivingEssentialDuty"`
}

type WorkAuthRequirement struct {
	RequiresEmploymentAuthorization bool `json:"requiresEmploymentAuthorization"`
	UsesEVerify                     bool `json:"usesEVerify"`
}

type PhysicalRequirement struct {
	EssentialPhysicalDuties bool `json:"essentialPhysicalDuties"`
	SafetySensitiveRole     bool `json:"safetySensitiveRole"`
	RegulatedEnvironment    bool `json:"regulatedEnvironment"`
}

type DrugTestingRequirement struct {
	PreEmploymentScreening bool `json:"preEmploymentScreening"`
	RandomTesting          bool `json:"randomTesting"`
}

type LicensingRequirement struct {
	RequiresLicense bool `json:"requiresLicense"`
}

type RoleRequirement struct {
	WorksWithMinors           bool `json:"worksWithMinors"`
	WorksWithVulnerableAdults bool `json:"worksWithVulnerableAdults"`
	HandlesFinances           bool `json:"handlesFinances"`
	SecureFacilityAccess      bool `json:"secureFacilityAccess"`
}

// Checklist is the per-candidate record of compliance answers, mirroring the
// six requirement sections. Read-only input to the evaluator.
type Checklist struct {
	Driving           DrivingChecklist     `json:"drivingTransportation"`
	WorkAuthorization WorkAuthChecklist    `json:"workAuthorization"`
	Physical          PhysicalChecklist    `json:"physicalEnvironmental"`
	DrugTesting       DrugTestingChecklist `json:"drugTesting"`
	Licensing         LicensingChecklist   `json:"professionalLicensing"`
	RoleRestrictions  RoleChecklist        `json:"roleRestrictions"`
}

type DrivingChecklist struct {
	HasValidDriversLicense    bool `json:"hasValidDriversLicense"`
	MeetsMVRStandards         bool `json:"meetsMVRStandards"`
	HasReliableTransportation bool `json:"hasReliableTransportation"`
	CanPerformDrivingDuties   bool `json:"canPerformDrivingDuties"`
}

type WorkAuthChecklist struct {
	HasValidIdentification bool `json:"hasValidIdentification"`
	CanMeetEVerify         bool `json:"canMeetEVerify"`
}

type PhysicalChecklist struct {
	CanPerformPhysicalFunctions  bool `json:"canPerformPhysicalFunctions"`
	CanWorkSafetySensitive       bool `json:"canWorkSafetySensitive"`
	CanWorkRegulatedEnvironments bool `json:"canWorkRegulatedEnvironments"`
}

type DrugTestingChecklist struct {
	CanPassScreening       bool `json:"canPassScreening"`
	CanComplyRandomTesting bool `json:"canComplyRandomTesting"`
}

type LicensingChecklist struct {
	EligibleForRequiredLicense bool `json:"eligibleForRequiredLicense"`
}

type RoleChecklist struct {
	NoRestrictionMinors           bool `json:"noRestrictionMinors"`
	NoRestrictionVulnerableAdults bool `json:"noRestrictionVulnerableAdults"`
	NoRestrictionFinancialRoles   bool `json:"noRestrictionFinancialRoles"`
	NoRestrictionSecureFacilities bool `json:"noRestrictionSecureFacilities"`
}

// Evaluation is the verdict for one (requirement, checklist) pair. It carries
// only derived facts; checklist answers are never echoed beyond the fixed
// violation strings.
type Evaluation struct {
	Enabled      bool     `json:"enabled"`
	Pass         bool     `json:"pass"`
	FailedChecks []string `json:"failedChecks"`
	Summary      string   `json:"summary"`
}

const (
	summaryNotConfigured = "No compliance requirements configured for this role."
	summaryPass          = "All role-based compliance requirements met."
)

// complianceCheck pairs one requirement flag with its checklist answer and
// the fixed violation string emitted when the answer is not true.
type complianceCheck struct {
	required  func(*Requirement) bool
	satisfied func(*Checklist) bool
	violation string
}

// complianceChecks is walked in fixed order: the six sections of the
// requirement record, each section's flags in declaration order.
var complianceChecks = []complianceCheck{
	// Driving / transportation
	{
		required:  func(r *Requirement) bool { return r.Driving.RequiresValidDriversLicense },
		satisfied: func(c *Checklist) bool { return c.Driving.HasValidDriversLicense },
		violation: "Requires valid driver's license",
	},
	{
		required:  func(r *Requirement) bool { return r.Driving.RequiresMVRStandards },
		satisfied: func(c *Checklist) bool { return c.Driving.MeetsMVRStandards },
		violation: "Requires meeting motor vehicle record standards",
	},
	{
		required:  func(r *Requirement) bool { return r.Driving.RequiresReliableTransportation },
		satisfied: func(c *Checklist) bool { return c.Driving.HasReliableTransportation },
		violation: "Requires reliable transportation",
	},
	{
		required:  func(r *Requirement) bool { return r.Driving.DrivingEssentialDuty },
		satisfied: func(c *Checklist) bool { return c.Driving.CanPerformDrivingDuties },
		violation: "Requires performing driving as an essential job duty",
	},
	// Work authorization
	{
		required:  func(r *Requirement) bool { return r.WorkAuthorization.RequiresEmploymentAuthorization },
		satisfied: func(c *Checklist) bool { return c.WorkAuthorization.HasValidIdentification },
		violation: "Requires valid employment authorization",
	},
	{
		required:  func(r *Requirement) bool { return r.WorkAuthorization.UsesEVerify },
		satisfied: func(c *Checklist) bool { return c.WorkAuthorization.CanMeetEVerify },
		violation: "Requires E-Verify employment verification",
	},
	// Physical / environmental
	{
		required:  func(r *Requirement) bool { return r.Physical.EssentialPhysicalDuties },
		satisfied: func(c *Checklist) bool { return c.Physical.CanPerformPhysicalFunctions },
		violation: "Requires performing essential physical duties",
	},
	{
		required:  func(r *Requirement) bool { return r.Physical.SafetySensitiveRole },
		satisfied: func(c *Checklist) bool { return c.Physical.CanWorkSafetySensitive },
		violation: "Requires working in a safety-sensitive role",
	},
	{
		required:  func(r *Requirement) bool { return r.Physical.RegulatedEnvironment },
		satisfied: func(c *Checklist) bool { return c.Physical.CanWorkRegulatedEnvironments },
		violation: "Requires working in a regulated environment",
	},
	// Drug testing / workplace policy
	{
		required:  func(r *Requirement) bool { return r.DrugTesting.PreEmploymentScreening },
		satisfied: func(c *Checklist) bool { return c.DrugTesting.CanPassScreening },
		violation: "Requires pre-employment drug screening",
	},
	{
		required:  func(r *Requirement) bool { return r.DrugTesting.RandomTesting },
		satisfied: func(c *Checklist) bool { return c.DrugTesting.CanComplyRandomTesting },
		violation: "Requires compliance with random drug testing",
	},
	// Professional licensing
	{
		required:  func(r *Requirement) bool { return r.Licensing.RequiresLicense },
		satisfied: func(c *Checklist) bool { return c.Licensing.EligibleForRequiredLicense },
		violation: "Requires eligibility to obtain a professional license",
	},
	// Role-based sensitive-population compatibility
	{
		required:  func(r *Requirement) bool { return r.RoleRestrictions.WorksWithMinors },
		satisfied: func(c *Checklist) bool { return c.RoleRestrictions.NoRestrictionMinors },
		violation: "Requires eligibility to work with minors",
	},
	{
		required:  func(r *Requirement) bool { return r.RoleRestrictions.WorksWithVulnerableAdults },
		satisfied: func(c *Checklist) bool { return c.RoleRestrictions.NoRestrictionVulnerableAdults },
		violation: "Requires eligibility to work with vulnerable adults or patients",
	},
	{
		required:  func(r *Requirement) bool { return r.RoleRestrictions.HandlesFinances },
		satisfied: func(c *Checklist) bool { return c.RoleRestrictions.NoRestrictionFinancialRoles },
		violation: "Requires eligibility for financial handling roles",
	},
	{
		required:  func(r *Requirement) bool { return r.RoleRestrictions.SecureFacilityAccess },
		satisfied: func(c *Checklist) bool { return c.RoleRestrictions.NoRestrictionSecureFacilities },
		violation: "Requires eligibility for secure facility access",
	},
}

// HasAny reports whether any requirement flag is set.
func (r *Requirement) HasAny() bool {
	if r == nil {
		return false
	}
	for _, check := range complianceChecks {
		if check.required(r) {
			return true
		}
	}
	return false
}

// EvaluateForJob produces the compliance verdict for one (checklist,
// requirement) pair. A nil or empty requirement trivially passes with
// Enabled=false; a nil checklist satisfies nothing.
func EvaluateForJob(checklist *Checklist, requirement *Requirement) Evaluation {
	if !requirement.HasAny() {
		return Evaluation{
			Enabled:      false,
			Pass:         true,
			FailedChecks: []string{},
			Summary:      summaryNotConfigured,
		}
	}

	failed := []string{}
	for _, check := range complianceChecks {
		if !check.required(requirement) {
			continue
		}
		if checklist == nil || !check.satisfied(checklist) {
			failed = append(failed, check.violation)
		}
	}

	eval := Evaluation{
		Enabled:      true,
		Pass:         len(failed) == 0,
		FailedChecks: failed,
	}
	if eval.Pass {
		eval.Summary = summaryPass
	} else {
		eval.Summary = fmt.Sprintf("Missing %d role-based compliance requirement(s).", len(failed))
	}
	return eval
}
