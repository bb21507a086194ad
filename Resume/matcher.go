package Resume

import (
	"regexp"
	"sort"
	"strings"
)

// MatchResult reports how well a resume covers a job description.
type MatchResult struct {
	Score          int                 `json:"match_score"`
	DetailedScores map[string]float64  `json:"detailed_scores"`
	Missing        map[string][]string `json:"missing_requirements"`
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "must": true, "our": true,
	"your": true, "this": true, "that": true, "them": true, "from": true,
	"who": true, "can": true, "all": true, "any": true, "has": true,
	"required": true, "preferred": true, "essential": true, "desired": true,
	"experience": true, "years": true, "plus": true, "work": true,
}

var wordRegex = regexp.MustCompile(`[A-Za-z][A-Za-z+#.-]*`)

// Tokenize lowercases text and keeps distinct terms longer than two
// characters, excluding common filler words.
func Tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range wordRegex.FindAllString(strings.ToLower(text), -1) {
		word = strings.Trim(word, ".-")
		if len(word) > 2 && !stopWords[word] {
			tokens[word] = true
		}
	}
	return tokens
}

// AnalyzeRequirements splits a job description into required and preferred
// term sets, classifying each sentence by its signal words. Sentences with no
// signal count as required.
func AnalyzeRequirements(jobDescription string) (required, preferred map[string]bool) {
	required = make(map[string]bool)
	preferred = make(map[string]bool)
	for _, sentence := range splitSentences(jobDescription) {
		lowered := strings.ToLower(sentence)
		target := required
		if strings.Contains(lowered, "preferred") || strings.Contains(lowered, "desired") ||
			strings.Contains(lowered, "a plus") || strings.Contains(lowered, "nice to have") {
			target = preferred
		}
		for token := range Tokenize(sentence) {
			target[token] = true
		}
	}
	return required, preferred
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == ';' || r == '!' || r == '?'
	})
}

// Match scores a resume against a job description. Required-term coverage
// weighs 0.4, preferred coverage 0.2 and overall term overlap 0.4.
func Match(resumeText, jobDescription string) MatchResult {
	resumeTokens := Tokenize(resumeText)
	required, preferred := AnalyzeRequirements(jobDescription)

	requiredScore := coverage(resumeTokens, required)
	preferredScore := coverage(resumeTokens, preferred)
	similarity := jaccard(resumeTokens, Tokenize(jobDescription))

	overall := requiredScore*0.4 + preferredScore*0.2 + similarity*0.4

	return MatchResult{
		Score: int(overall * 100),
		DetailedScores: map[string]float64{
			"required_skills":    requiredScore * 100,
			"preferred_skills":   preferredScore * 100,
			"content_similarity": similarity * 100,
		},
		Missing: map[string][]string{
			"required":  missing(resumeTokens, required),
			"preferred": missing(resumeTokens, preferred),
		},
	}
}

// coverage is the fraction of wanted terms present in the resume.
// An empty wanted set counts as fully covered.
func coverage(have, wanted map[string]bool) float64 {
	if len(wanted) == 0 {
		return 1.0
	}
	matched := 0
	for term := range wanted {
		if have[term] {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for term := range a {
		if b[term] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

func missing(have, wanted map[string]bool) []string {
	var out []string
	for term := range wanted {
		if !have[term] {
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}
