package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/domain"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreateResource(t *testing.T) {
	valid := transport.CreateResourceRequest{
		Category:      "energy",
		Name:          "Solar capacity",
		CurrentAmount: 1500,
		Unit:          "GW",
	}
	assert.NoError(t, ValidateStruct(valid))

	tests := []struct {
		name   string
		mutate func(*transport.CreateResourceRequest)
	}{
		{"missing category", func(r *transport.CreateResourceRequest) { r.Category = "" }},
		{"missing name", func(r *transport.CreateResourceRequest) { r.Name = "" }},
		{"zero amount", func(r *transport.CreateResourceRequest) { r.CurrentAmount = 0 }},
		{"negative amount", func(r *transport.CreateResourceRequest) { r.CurrentAmount = -5 }},
		{"missing unit", func(r *transport.CreateResourceRequest) { r.Unit = "" }},
		{"confidence above one", func(r *transport.CreateResourceRequest) { r.ConfidenceLevel = ptr(1.5) }},
		{"confidence below zero", func(r *transport.CreateResourceRequest) { r.ConfidenceLevel = ptr(-0.1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := ValidateStruct(req)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestValidateUpdatePrinciple(t *testing.T) {
	assert.NoError(t, ValidateStruct(transport.UpdatePrincipleRequest{
		Status:             ptr("in_progress"),
		ProgressPercentage: ptr(42.0),
		EvidenceLinks:      []string{"https://example.org/report"},
	}))

	// All-optional payload passes validation; emptiness is rejected later.
	assert.NoError(t, ValidateStruct(transport.UpdatePrincipleRequest{}))

	assert.Error(t, ValidateStruct(transport.UpdatePrincipleRequest{Status: ptr("done")}))
	assert.Error(t, ValidateStruct(transport.UpdatePrincipleRequest{ProgressPercentage: ptr(101.0)}))
	assert.Error(t, ValidateStruct(transport.UpdatePrincipleRequest{EvidenceLinks: []string{"not a url"}}))
}

func TestValidateCreateCity(t *testing.T) {
	valid := transport.CreateCityRequest{
		Name:    "Aurora",
		Country: "Portugal",
		Status:  "planning",
	}
	assert.NoError(t, ValidateStruct(valid))

	invalidStatus := valid
	invalidStatus.Status = "demolished"
	assert.Error(t, ValidateStruct(invalidStatus))

	badRecycling := valid
	badRecycling.WasteRecyclingPercentage = ptr(130.0)
	assert.Error(t, ValidateStruct(badRecycling))
}

func TestValidateRegister(t *testing.T) {
	valid := transport.RegisterRequest{
		Email:    "ada@example.org",
		Username: "ada",
		Password: "correcthorse",
	}
	assert.NoError(t, ValidateStruct(valid))

	assert.Error(t, ValidateStruct(transport.RegisterRequest{Email: "not-an-email", Username: "ada", Password: "correcthorse"}))
	assert.Error(t, ValidateStruct(transport.RegisterRequest{Email: "ada@example.org", Username: "ab", Password: "correcthorse"}))
	assert.Error(t, ValidateStruct(transport.RegisterRequest{Email: "ada@example.org", Username: "ada", Password: "short"}))
}

func TestValidationErrorListsAllFields(t *testing.T) {
	err := ValidateStruct(transport.LoginRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "Password")
}
