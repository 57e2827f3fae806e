// internal/eligibility/exemption_test.go
package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectExemptions(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		excelMsme    bool
		excelStartup bool
		wantMsme     bool
		wantStartup  bool
	}{
		{"msme exempted", "MSME exempted from turnover criteria", false, false, true, false},
		{"exemption to micro and small", "Exemption to Micro and Small Enterprises as per policy", false, false, true, false},
		{"udyam emd waiver only", "EMD waived for bidders holding Udyam registration", false, false, false, false},
		{"mse emd exemption only", "Minimum average annual turnover of Rs. 50 Crore. EMD exempted for MSE bidders as per GFR.", false, false, false, false},
		{"emd exemption needs udyam", "Bidders seeking exemption from EMD must submit Udyam certificate.", false, false, false, false},
		{"startup tender fee exemption", "Exemption from tender fee for startups.", false, false, false, false},
		{"emd and turnover waived", "MSE bidders exempted from EMD and turnover criteria", false, false, true, false},
		{"fee waiver beside turnover waiver", "EMD waived for MSE. Startups exempted from turnover.", false, false, false, true},
		{"nsic relaxation of criteria", "Relaxation in prior turnover and experience for NSIC registered firms", false, false, true, false},
		{"startup relaxation", "Relaxation for Startups recognised by DPIIT", false, false, false, true},
		{"both granted", "MSE and Start-up bidders are exempted from prior experience", false, false, true, true},
		{"no exemption denial", "No exemption for MSME bidders", false, false, false, false},
		{"not applicable denial", "MSME exemption is not applicable for this tender", false, false, false, false},
		{"mandatory requirement denial", "Startups exempted. Turnover is a mandatory requirement", false, false, false, false},
		{"bare domain words", "Small enterprises and startups may bid", false, false, false, false},
		{"excel flags survive denial", "No exemption shall be given", true, false, true, false},
		{"excel startup flag", "", false, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msme, startup := DetectExemptions(tt.text, tt.excelMsme, tt.excelStartup)
			assert.Equal(t, tt.wantMsme, msme, "msme")
			assert.Equal(t, tt.wantStartup, startup, "startup")
		})
	}
}
