package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/validator"
)

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		err := validator.Struct(domain.CreateLeadInput{
			Name:        "Ada",
			Email:       "ada@example.com",
			CompanyName: "Analytical Engines",
		})
		assert.NoError(t, err)
	})

	t.Run("Missing Fields Use JSON Names", func(t *testing.T) {
		err := validator.Struct(domain.CreateLeadInput{Email: "not-an-email"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))

		fields := map[string]string{}
		for _, f := range verr.Fields {
			fields[f.Field] = f.Message
		}
		assert.Equal(t, "is required", fields["name"])
		assert.Equal(t, "is required", fields["company_name"])
		assert.Equal(t, "must be a valid email address", fields["email"])
	})

	t.Run("Oneof", func(t *testing.T) {
		err := validator.Struct(domain.LogEmailInput{
			Direction: "sideways",
			Subject:   "Hi",
			Content:   "Body",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "direction: must be one of: sent received")
	})
}
