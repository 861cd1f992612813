package validators

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_AllRulesRunAndAccumulate(t *testing.T) {
	form := NewForm(url.Values{"email": {"nope"}, "password": {"abc"}})

	form.Require(FieldEmail, FieldPassword).Min(FieldPassword, 6).Email(FieldEmail)

	assert.False(t, form.OK())
	assert.Equal(t, []string{MsgInvalidEmail}, form.Errors[FieldEmail])
	assert.Equal(t, []string{"must be at least 6 characters"}, form.Errors[FieldPassword])
}

func TestForm_MessagesKeepRuleOrder(t *testing.T) {
	form := NewForm(nil)

	form.Require(FieldPassword).Min(FieldPassword, 6)

	assert.Equal(t, []string{MsgRequired, "must be at least 6 characters"}, form.Errors[FieldPassword])
	assert.Equal(t, MsgRequired, form.Errors.Get(FieldPassword))
}

func TestForm_BlankIsMissing(t *testing.T) {
	form := NewForm(url.Values{"email": {"   "}})
	form.Require(FieldEmail)
	assert.Contains(t, form.Errors[FieldEmail], MsgRequired)
}

func TestForm_MinCountsCharacters(t *testing.T) {
	form := NewForm(url.Values{"password": {"пароль"}})
	form.Min(FieldPassword, 6)
	assert.True(t, form.OK())
}

func TestForm_ValidEmails(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last+tag@example.org"} {
		form := NewForm(url.Values{"email": {email}})
		assert.True(t, form.Email(FieldEmail).OK(), email)
	}
}

func TestForm_GetReturnsValueUnchanged(t *testing.T) {
	form := NewForm(url.Values{"email": {" Mixed@Case.io "}})
	assert.Equal(t, " Mixed@Case.io ", form.Get(FieldEmail))
}

func TestForm_Err(t *testing.T) {
	form := NewForm(url.Values{"email": {"a@b.co"}, "password": {"secret1"}})
	require.NoError(t, form.Err())

	form.AddError(FieldEmail, MsgAlreadyRegistered)
	err := form.Err()
	require.ErrorIs(t, err, ErrInvalidForm)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, MsgAlreadyRegistered, vErr.Errors.Get(FieldEmail))
	assert.Contains(t, err.Error(), "email: already registered")
}

func TestSignupValidator(t *testing.T) {
	v := NewSignupValidator()
	ctx := context.Background()

	ok := NewForm(url.Values{"email": {"a@b.co"}, "password": {"secret1"}})
	assert.NoError(t, v.Validate(ctx, ok))

	short := NewForm(url.Values{"email": {"a@b.co"}, "password": {"12345"}})
	assert.ErrorIs(t, v.Validate(ctx, short), ErrInvalidForm)
	assert.NotEmpty(t, short.Errors[FieldPassword])

	assert.ErrorIs(t, v.Validate(ctx, "not a form"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, NewForm(nil), "age"), ErrUnknownField)
}

func TestLoginValidator_NoMinimumLength(t *testing.T) {
	v := NewLoginValidator()
	form := NewForm(url.Values{"email": {"a@b.co"}, "password": {"1"}})
	assert.NoError(t, v.Validate(context.Background(), form))
}

func TestRulesValidator_FieldScope(t *testing.T) {
	v := NewSignupValidator()
	form := NewForm(url.Values{"password": {"123"}})

	err := v.Validate(context.Background(), form, FieldPassword)
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Empty(t, form.Errors[FieldEmail], "email rules must not run")
	assert.Len(t, form.Errors[FieldPassword], 1)
}

func TestForm_ApplyCustomRule(t *testing.T) {
	noAdmin := Rule{Name: "not-admin", Field: FieldEmail, Check: func(v string) string {
		if v == "admin@b.co" {
			return "reserved"
		}
		return ""
	}}

	form := NewForm(url.Values{"email": {"admin@b.co"}}).Apply(noAdmin, EmailRule(FieldEmail))
	assert.Equal(t, []string{"reserved"}, form.Errors[FieldEmail])
}
