package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "processing", Processing.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Status(0).String())
}

func TestNewStatus(t *testing.T) {
	assert.Equal(t, Pending, NewStatus("pending"))
	assert.Equal(t, Processing, NewStatus("processing"))
	assert.Equal(t, Completed, NewStatus("completed"))
	assert.Equal(t, Failed, NewStatus("failed"))
	assert.Equal(t, Pending, NewStatus("bogus"))
}

func TestStatusValidate(t *testing.T) {
	assert.NoError(t, Pending.Validate())
	assert.NoError(t, Failed.Validate())
	assert.Error(t, Status(0).Validate())
	assert.Error(t, Status(99).Validate())
}

func TestStatusIsFinal(t *testing.T) {
	assert.False(t, Pending.IsFinal())
	assert.False(t, Processing.IsFinal())
	assert.True(t, Completed.IsFinal())
	assert.True(t, Failed.IsFinal())
}
