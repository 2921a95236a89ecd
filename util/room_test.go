package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivateRoomIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PrivateRoom("a1", "b2"), PrivateRoom("b2", "a1"))
	assert.Equal(t, "private:a1-b2", PrivateRoom("b2", "a1"))
}

func TestFacultyRoom(t *testing.T) {
	assert.Equal(t, "faculty:Tarix fakültəsi", FacultyRoom("Tarix fakültəsi"))
	assert.NotEqual(t, FacultyRoom("x"), PrivateRoom("x", "x"))
}
