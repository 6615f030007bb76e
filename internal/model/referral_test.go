package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus("Submitted")) // enum is case sensitive
	assert.False(t, ValidStatus(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleEmployee))
	assert.True(t, ValidRole(RoleHR))
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
}
