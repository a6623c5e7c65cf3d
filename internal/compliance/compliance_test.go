// internal/compliance/compliance_test.go
package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateForJob_NoRequirements(t *testing.T) {
	tests := []struct {
		name        string
		checklist   *Checklist
		requirement *Requirement
	}{
		{"nil requirement", &Checklist{}, nil},
		{"empty requirement", &Checklist{}, &Requirement{}},
		{"nil both", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := EvaluateForJob(tt.checklist, tt.requirement)

			assert.False(t, eval.Enabled)
			assert.True(t, eval.Pass)
			assert.NotNil(t, eval.FailedChecks)
			assert.Empty(t, eval.FailedChecks)
			assert.Equal(t, "No compliance requirements configured for this role.", eval.Summary)
		})
	}
}

func TestEvaluateForJob_SingleRequirementUnmet(t *testing.T) {
	requirement := &Requirement{
		Driving: DrivingRequirement{RequiresValidDriversLicense: true},
	}
	checklist := &Checklist{
		Driving: DrivingChecklist{HasValidDriversLicense: false},
	}

	eval := EvaluateForJob(checklist, requirement)

	assert.True(t, eval.Enabled)
	assert.False(t, eval.Pass)
	assert.Equal(t, []string{"Requires valid driver's license"}, eval.FailedChecks)
	assert.Equal(t, "Missing 1 role-based compliance requirement(s).", eval.Summary)
}

func TestEvaluateForJob_SingleRequirementMet(t *testing.T) {
	requirement := &Requirement{
		Driving: DrivingRequirement{RequiresValidDriversLicense: true},
	}
	checklist := &Checklist{
		Driving: DrivingChecklist{HasValidDriversLicense: true},
	}

	eval := EvaluateForJob(checklist, requirement)

	assert.True(t, eval.Enabled)
	assert.True(t, eval.Pass)
	assert.Empty(t, eval.FailedChecks)
	assert.Equal(t, "All role-based compliance requirements met.", eval.Summary)
}

func TestEvaluateForJob_NilChecklistFailsAllRequired(t *testing.T) {
	requirement := &Requirement{
		WorkAuthorization: WorkAuthRequirement{
			RequiresEmploymentAuthorization: true,
			UsesEVerify:                     true,
		},
		DrugTesting: DrugTestingRequirement{PreEmploymentScreening: true},
	}

	eval := EvaluateForJob(nil, requirement)

	assert.True(t, eval.Enabled)
	assert.False(t, eval.Pass)
	assert.Equal(t, []string{
		"Requires valid employment authorization",
		"Requires E-Verify employment verification",
		"Requires pre-employment drug screening",
	}, eval.FailedChecks)
	assert.Equal(t, "Missing 3 role-based compliance requirement(s).", eval.Summary)
}

func TestEvaluateForJob_MixedOutcomeAcrossSections(t *testing.T) {
	requirement := &Requirement{
		Driving:          DrivingRequirement{RequiresReliableTransportation: true},
		Physical:         PhysicalRequirement{SafetySensitiveRole: true},
		Licensing:        LicensingRequirement{RequiresLicense: true},
		RoleRestrictions: RoleRequirement{WorksWithMinors: true},
	}
	checklist := &Checklist{
		Driving:          DrivingChecklist{HasReliableTransportation: true},
		Physical:         PhysicalChecklist{CanWorkSafetySensitive: false},
		Licensing:        LicensingChecklist{EligibleForRequiredLicense: true},
		RoleRestrictions: RoleChecklist{NoRestrictionMinors: false},
	}

	eval := EvaluateForJob(checklist, requirement)

	assert.True(t, eval.Enabled)
	assert.False(t, eval.Pass)
	assert.Equal(t, []string{
		"Requires working in a safety-sensitive role",
		"Requires eligibility to work with minors",
	}, eval.FailedChecks)
}

func TestEvaluateForJob_ExtraChecklistAnswersIgnored(t *testing.T) {
	// Checklist answers for rules the job never required must not affect
	// the verdict.
	requirement := &Requirement{
		DrugTesting: DrugTestingRequirement{RandomTesting: true},
	}
	checklist := &Checklist{
		Driving:     DrivingChecklist{HasValidDriversLicense: true, MeetsMVRStandards: true},
		DrugTesting: DrugTestingChecklist{CanComplyRandomTesting: true},
	}

	eval := EvaluateForJob(checklist, requirement)

	assert.True(t, eval.Pass)
	assert.Empty(t, eval.FailedChecks)
}

func TestEvaluateForJob_ViolationOrderIsStable(t *testing.T) {
	requirement := &Requirement{
		RoleRestrictions: RoleRequirement{
			SecureFacilityAccess:      true,
			WorksWithMinors:           true,
			HandlesFinances:           true,
			WorksWithVulnerableAdults: true,
		},
	}

	first := EvaluateForJob(&Checklist{}, requirement)
	second := EvaluateForJob(&Checklist{}, requirement)

	assert.Equal(t, []string{
		"Requires eligibility to work with minors",
		"Requires eligibility to work with vulnerable adults or patients",
		"Requires eligibility for financial handling roles",
		"Requires eligibility for secure facility access",
	}, first.FailedChecks)
	assert.Equal(t, first, second)
}

func TestRequirement_HasAny(t *testing.T) {
	var nilReq *Requirement
	assert.False(t, nilReq.HasAny())
	assert.False(t, (&Requirement{}).HasAny())
	assert.True(t, (&Requirement{
		Physical: PhysicalRequirement{RegulatedEnvironment: true},
	}).HasAny())
}
