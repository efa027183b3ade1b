// internal/assistant/catalog/catalog_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"banking-assistant/internal/assistant/intent"
)

func TestCatalog_Validate(t *testing.T) {
	assert.NoError(t, New().Validate())
}

func TestCatalog_ValidateDetectsGap(t *testing.T) {
	c := New()
	delete(c.scripts, intent.ResetMPIN)

	err := c.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reset_mpin")
}

func TestCatalog_EveryServiceHasScript(t *testing.T) {
	c := New()
	for _, svc := range intent.Services() {
		assert.NotEmpty(t, c.Script(svc), "missing script for %s", svc)
	}
}

func TestCatalog_ScriptContent(t *testing.T) {
	c := New()

	// Spot-check the facts customers depend on.
	assert.Contains(t, c.Script(intent.CheckBalance), "9212632199")
	assert.Contains(t, c.Script(intent.CardServices), "1800-233-4526")
	assert.Contains(t, c.Script(intent.LoanEligibility), "Kisan Credit Card")
	assert.Contains(t, c.Script(intent.FraudPrevention), "1930")
	assert.Contains(t, c.Script(intent.GeneralInquiry), "Welcome to Bank of Maharashtra!")
}

func TestCatalog_UnknownIntentFallsBack(t *testing.T) {
	c := New()
	assert.Equal(t, c.Script(intent.GeneralInquiry), c.Script(intent.Intent("bogus")))
}

func TestCatalog_Respond(t *testing.T) {
	answer := New().Respond(intent.MiniStatement)

	assert.False(t, answer.NeedsEscalation)
	assert.Contains(t, answer.Text, "Mini Statement")
}
