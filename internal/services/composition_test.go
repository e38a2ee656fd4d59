package services

import (
	"context"
	"errors"
	"testing"

	"festregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSize_Boundaries(t *testing.T) {
	v := NewTeamCompositionValidator()
	ev := &domain.EventRecord{ID: "e", TeamSize: domain.TeamSize{Min: 2, Max: 4}}

	tests := []struct {
		total  int
		wantOK bool
	}{
		{1, false}, // min-1
		{2, true},  // min
		{4, true},  // max
		{5, false}, // max+1
	}
	for _, tt := range tests {
		reason := v.ValidateSize(ev, tt.total)
		if tt.wantOK {
			assert.Nil(t, reason, "total=%d", tt.total)
			continue
		}
		require.NotNil(t, reason, "total=%d", tt.total)
		assert.Equal(t, 2, reason.Min)
		assert.Equal(t, 4, reason.Max)
		assert.Equal(t, tt.total, reason.Actual)
	}
}

func TestValidateSize_IndividualEvent(t *testing.T) {
	v := NewTeamCompositionValidator()
	ev := &domain.EventRecord{ID: "solo", TeamSize: domain.TeamSize{Min: 1, Max: 1}}

	assert.Nil(t, v.ValidateSize(ev, 1))
	assert.NotNil(t, v.ValidateSize(ev, 2))
}

func TestValidateNoInternalDuplicates(t *testing.T) {
	v := NewTeamCompositionValidator()

	tests := []struct {
		name         string
		participants []domain.Participant
		wantField    domain.ContactField
		wantValue    string
	}{
		{
			name: "all distinct",
			participants: []domain.Participant{
				{Email: "a@college.edu", Phone: "9000000001"},
				{Email: "b@college.edu", Phone: "9000000002"},
			},
		},
		{
			name: "same email different case",
			participants: []domain.Participant{
				{Email: "A@College.EDU", Phone: "9000000001"},
				{Email: "a@college.edu", Phone: "9000000002"},
			},
			wantField: domain.ContactEmail,
			wantValue: "a@college.edu",
		},
		{
			name: "same phone",
			participants: []domain.Participant{
				{Email: "a@college.edu", Phone: "9000000001"},
				{Email: "b@college.edu", Phone: "9000000001"},
			},
			wantField: domain.ContactPhone,
			wantValue: "9000000001",
		},
		{
			name: "email collision wins over phone collision",
			participants: []domain.Participant{
				{Email: "a@college.edu", Phone: "9000000001"},
				{Email: "b@college.edu", Phone: "9000000001"},
				{Email: "a@college.edu", Phone: "9000000003"},
			},
			wantField: domain.ContactEmail,
			wantValue: "a@college.edu",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := v.ValidateNoInternalDuplicates(tt.participants)
			if tt.wantField == "" {
				assert.Nil(t, reason)
				return
			}
			require.NotNil(t, reason)
			assert.Equal(t, tt.wantField, reason.Field)
			assert.Equal(t, tt.wantValue, reason.Value)
		})
	}
}

func TestValidateAgainstPersisted(t *testing.T) {
	v := NewTeamCompositionValidator()
	ctx := context.Background()
	participants := []domain.Participant{
		{Email: "a@college.edu", Phone: "9000000001"},
		{Email: "b@college.edu", Phone: "9000000002"},
	}

	t.Run("clear", func(t *testing.T) {
		lookup := func(ctx context.Context, eventID string, field domain.ContactField, value string) (bool, error) {
			return false, nil
		}
		reason, err := v.ValidateAgainstPersisted(ctx, "e", participants, lookup)
		require.NoError(t, err)
		assert.Nil(t, reason)
	})

	t.Run("email already registered", func(t *testing.T) {
		lookup := func(ctx context.Context, eventID string, field domain.ContactField, value string) (bool, error) {
			return field == domain.ContactEmail && value == "b@college.edu", nil
		}
		reason, err := v.ValidateAgainstPersisted(ctx, "e", participants, lookup)
		require.NoError(t, err)
		require.NotNil(t, reason)
		assert.Equal(t, domain.ContactEmail, reason.Field)
		assert.Equal(t, "b@college.edu", reason.Value)
	})

	t.Run("phone checked after all emails", func(t *testing.T) {
		var calls []string
		lookup := func(ctx context.Context, eventID string, field domain.ContactField, value string) (bool, error) {
			calls = append(calls, string(field))
			return field == domain.ContactPhone && value == "9000000001", nil
		}
		reason, err := v.ValidateAgainstPersisted(ctx, "e", participants, lookup)
		require.NoError(t, err)
		require.NotNil(t, reason)
		assert.Equal(t, domain.ContactPhone, reason.Field)
		assert.Equal(t, []string{"email", "email", "phone"}, calls)
	})

	t.Run("lookup failure surfaces as error", func(t *testing.T) {
		lookup := func(ctx context.Context, eventID string, field domain.ContactField, value string) (bool, error) {
			return false, errors.New("db down")
		}
		reason, err := v.ValidateAgainstPersisted(ctx, "e", participants, lookup)
		require.Error(t, err)
		assert.Nil(t, reason)
	})
}
