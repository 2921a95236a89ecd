package util

const (
	facultyRoomPrefix = "faculty:"
	privateRoomPrefix = "private:"
	pairSeparator     = "-"
)

func FacultyRoom(faculty string) string {
	return facultyRoomPrefix + faculty
}

// PrivateRoom names the room shared by two users. The order of the ids does
// not matter.
func PrivateRoom(userID, otherUserID string) string {
	if otherUserID < userID {
		userID, otherUserID = otherUserID, userID
	}
	return privateRoomPrefix + userID + pairSeparator + otherUserID
}
