package usecase

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"campus-chat/dto/req"
)

const (
	// ChallengeSize is how many questions a registration has to answer.
	ChallengeSize = 3
	// MinCorrectAnswers is the acceptance threshold for a challenge.
	MinCorrectAnswers = 2
)

type VerificationQuestion struct {
	Question string
	Answer   string
}

// Challenge is one issued question. Answer stays on the server.
type Challenge struct {
	ID       int
	Question string
	Answer   string
}

// facultyBuildings maps every faculty to the building it is located in.
var facultyBuildings = []struct {
	faculty  string
	building string
}{
	{"Mexanika-riyaziyyat", "3"},
	{"Tətbiqi riyaziyyat və kibernetika", "3"},
	{"Fizika", "əsas"},
	{"Kimya", "əsas"},
	{"Biologiya", "əsas"},
	{"Ekologiya və torpaqşünaslıq", "əsas"},
	{"Coğrafiya", "əsas"},
	{"Geologiya", "əsas"},
	{"Filologiya", "1"},
	{"Tarix", "3"},
	{"Beynəlxalq münasibətlər və iqtisadiyyat", "1"},
	{"Hüquq", "1"},
	{"Jurnalistika", "2"},
	{"İnformasiya və sənəd menecmenti", "2"},
	{"Şərqşünaslıq", "2"},
	{"Sosial elmlər və psixologiya", "2"},
}

func DefaultQuestionCatalog() []VerificationQuestion {
	catalog := make([]VerificationQuestion, 0, len(facultyBuildings))
	for _, fb := range facultyBuildings {
		catalog = append(catalog, VerificationQuestion{
			Question: fmt.Sprintf("%s fakültəsi hansı korpusda yerləşir?", fb.faculty),
			Answer:   fb.building,
		})
	}
	return catalog
}

// ChallengeSelector issues registration quizzes and grades them.
type ChallengeSelector struct {
	mu      sync.Mutex
	rand    *rand.Rand
	catalog []VerificationQuestion
	answers map[string]string
}

func NewChallengeSelector(catalog []VerificationQuestion, seed int64) *ChallengeSelector {
	answers := make(map[string]string, len(catalog))
	for _, q := range catalog {
		answers[q.Question] = q.Answer
	}
	return &ChallengeSelector{
		rand:    rand.New(rand.NewSource(seed)),
		catalog: catalog,
		answers: answers,
	}
}

func NewDefaultChallengeSelector() *ChallengeSelector {
	return NewChallengeSelector(DefaultQuestionCatalog(), time.Now().UnixNano())
}

// Issue picks ChallengeSize distinct questions, numbered from 0.
func (s *ChallengeSelector) Issue() []Challenge {
	s.mu.Lock()
	order := s.rand.Perm(len(s.catalog))
	s.mu.Unlock()

	size := min(ChallengeSize, len(order))
	challenges := make([]Challenge, 0, size)
	for i, idx := range order[:size] {
		challenges = append(challenges, Challenge{
			ID:       i,
			Question: s.catalog[idx].Question,
			Answer:   s.catalog[idx].Answer,
		})
	}
	return challenges
}

// Grade counts exact answers to distinct catalog questions and reports
// whether the threshold is met.
func (s *ChallengeSelector) Grade(answers []req.VerificationAnswer) (int, bool) {
	seen := make(map[string]bool, len(answers))
	correct := 0
	for _, answer := range answers {
		expected, ok := s.answers[answer.Question]
		if !ok || seen[answer.Question] {
			continue
		}
		seen[answer.Question] = true
		if expected == answer.UserAnswer {
			correct++
		}
	}
	return correct, correct >= MinCorrectAnswers
}
