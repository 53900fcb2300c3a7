package competency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivity(t *testing.T) {
	t.Run("starts pending with a fresh ID", func(t *testing.T) {
		input := ActivityInput{
			Quantity:      decimal.NewFromInt(3),
			Description:   "Supervised three interns",
			DocumentCount: 2,
		}
		activity := NewActivity(5, input, decimal.NewFromFloat(4.5))

		assert.NotEmpty(t, activity.ID)
		assert.Equal(t, 5, activity.ItemID)
		assert.Equal(t, StatusPending, activity.Status)
		assert.True(t, decimal.NewFromFloat(4.5).Equal(activity.Points))
		assert.Equal(t, 2, activity.DocumentCount)
		assert.Equal(t, activity.CreatedAt, activity.UpdatedAt)
	})

	t.Run("generates distinct IDs for rapid creation", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			a := NewActivity(1, ActivityInput{}, decimal.Zero)
			id := a.ID.String()
			assert.False(t, seen[id], "duplicate activity ID %s", id)
			seen[id] = true
		}
	})

	t.Run("defaults quantity to one", func(t *testing.T) {
		activity := NewActivity(1, ActivityInput{Description: "x", DocumentCount: 1}, decimal.Zero)
		assert.True(t, decimal.NewFromInt(1).Equal(activity.Quantity))
	})
}

func TestActivity_UpdateStatus(t *testing.T) {
	t.Run("records status and comment", func(t *testing.T) {
		activity := NewActivity(1, ActivityInput{}, decimal.NewFromInt(3))
		createdAt := activity.CreatedAt

		err := activity.UpdateStatus(StatusApproved, "verified against the certificate")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, activity.Status)
		assert.Equal(t, "verified against the certificate", activity.ReviewComment)
		assert.Equal(t, createdAt, activity.CreatedAt)
		assert.False(t, activity.UpdatedAt.Before(createdAt))
	})

	t.Run("rejection keeps the frozen points", func(t *testing.T) {
		activity := NewActivity(1, ActivityInput{}, decimal.NewFromFloat(7.5))
		require.NoError(t, activity.UpdateStatus(StatusRejected, "missing evidence"))
		assert.True(t, activity.IsRejected())
		assert.True(t, decimal.NewFromFloat(7.5).Equal(activity.Points))
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		activity := NewActivity(1, ActivityInput{}, decimal.Zero)
		err := activity.UpdateStatus(ActivityStatus("archived"), "")
		require.Error(t, err)
		assert.Equal(t, StatusPending, activity.Status)
	})
}
