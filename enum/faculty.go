package enum

// Faculties lists the academic faculties that own a group chat room.
var Faculties = []string{
	"Mexanika-riyaziyyat",
	"Tətbiqi riyaziyyat və kibernetika",
	"Fizika",
	"Kimya",
	"Biologiya",
	"Ekologiya və torpaqşünaslıq",
	"Coğrafiya",
	"Geologiya",
	"Filologiya",
	"Tarix",
	"Beynəlxalq münasibətlər və iqtisadiyyat",
	"Hüquq",
	"Jurnalistika",
	"İnformasiya və sənəd menecmenti",
	"Şərqşünaslıq",
	"Sosial elmlər və psixologiya",
}

func IsFaculty(name string) bool {
	for _, faculty := range Faculties {
		if faculty == name {
			return true
		}
	}
	return false
}
