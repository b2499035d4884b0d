package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactInfo_Validate(t *testing.T) {
	valid := ContactInfo{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "ivan.petrov@example.com",
		Phone:     "+7 (900) 123-45-67",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*ContactInfo)
		field  string
	}{
		{"missing first name", func(c *ContactInfo) { c.FirstName = "" }, "first_name"},
		{"blank first name", func(c *ContactInfo) { c.FirstName = "   " }, "first_name"},
		{"missing last name", func(c *ContactInfo) { c.LastName = "" }, "last_name"},
		{"missing email", func(c *ContactInfo) { c.Email = "" }, "email"},
		{"malformed email", func(c *ContactInfo) { c.Email = "not-an-address" }, "email"},
		{"email without domain", func(c *ContactInfo) { c.Email = "ivan@" }, "email"},
		{"phone with letters", func(c *ContactInfo) { c.Phone = "8900ABCDEF" }, "phone"},
		{"phone too short", func(c *ContactInfo) { c.Phone = "+123" }, "phone"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			contact := valid
			c.mutate(&contact)
			err := contact.Validate()
			var contactErr *InvalidContactError
			require.ErrorAs(t, err, &contactErr)
			assert.Equal(t, c.field, contactErr.Field)
		})
	}
}

func TestContactInfo_Validate_PhoneOptional(t *testing.T) {
	contact := ContactInfo{FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com"}
	assert.NoError(t, contact.Validate())
}
