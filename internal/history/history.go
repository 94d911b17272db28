// Package history analyzes a letter profile on its own and against
// previously stored sessions.
package history

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/unbound-force/tangle/internal/score"
	"github.com/unbound-force/tangle/internal/session"
	"github.com/unbound-force/tangle/internal/taxonomy"
)

const (
	maxStrengths       = 3
	maxGrowth          = 3
	monthLength        = 30 * 24 * time.Hour
	perfectConsistency = 100.0
)

// Share is one letter's part of a profile.
type Share struct {
	Letter     string `json:"letter"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Analysis describes a single profile.
type Analysis struct {
	Dominant        Share    `json:"dominant"`
	Secondary       Share    `json:"secondary"`
	Profile         []Share  `json:"profile"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// Comparison relates a profile to earlier sessions.
type Comparison struct {
	AverageProfile score.Counts `json:"average_profile"`
	Consistency    float64      `json:"consistency"`
	Growth         []string     `json:"growth"`
}

// Stats summarizes a list of sessions.
type Stats struct {
	TotalTests               int     `json:"total_tests"`
	AverageCompletionMinutes int     `json:"average_completion_minutes"`
	MostCommonDominant       string  `json:"most_common_dominant"`
	TestsPerMonth            float64 `json:"tests_per_month"`
}

var strengths = map[string]string{
	"A": "Excellent analytical and problem-solving abilities",
	"B": "Strong action-oriented leadership and implementation skills",
	"C": "Outstanding creative thinking and innovation capabilities",
	"D": "Exceptional attention to detail and thoroughness",
	"E": "High emotional intelligence and empathy",
	"F": "Remarkable adaptability and flexibility",
	"G": "Strategic planning and goal achievement excellence",
	"H": "Comprehensive systems thinking and big-picture perspective",
	"I": "Strong intuitive insights and pattern recognition",
	"K": "Hands-on learning and practical application strengths",
	"L": "Logical reasoning and rational analysis skills",
	"M": "Excellent memory and experience-based learning",
	"N": "Strong numerical and quantitative analysis abilities",
	"O": "Outstanding organizational and structural thinking",
	"P": "Exceptional people skills and social intelligence",
	"Q": "Natural curiosity and investigative abilities",
	"R": "Deep reflective thinking and contemplation skills",
	"S": "Sequential processing and systematic approach strengths",
	"T": "Theoretical thinking and abstract conceptualization",
	"U": "Focus on understanding and comprehension excellence",
	"V": "Strong visual-spatial processing and design thinking",
	"W": "Whole-system perspective and integration capabilities",
	"X": "Experimental approach and innovation willingness",
	"Y": "Collaborative leadership and team harmony skills",
	"Z": "Focused concentration and specialized expertise",
}

// Analyze ranks the letters of counts and derives strengths and
// recommendations from the top of the ranking.
func Analyze(counts score.Counts) Analysis {
	total := counts.Total()
	a := Analysis{Profile: []Share{}}
	for _, l := range counts.Ranked() {
		a.Profile = append(a.Profile, Share{
			Letter:     l,
			Count:      counts[l],
			Percentage: percentage(counts[l], total),
		})
	}
	if len(a.Profile) > 0 {
		a.Dominant = a.Profile[0]
		a.Secondary = a.Profile[0]
	}
	if len(a.Profile) > 1 {
		a.Secondary = a.Profile[1]
	}

	a.Strengths = []string{}
	for _, s := range a.Profile {
		if len(a.Strengths) == maxStrengths {
			break
		}
		if s.Count == 0 {
			continue
		}
		a.Strengths = append(a.Strengths, strengthOf(s.Letter))
	}

	a.Recommendations = recommend(a.Dominant.Letter, a.Secondary.Letter)
	return a
}

func strengthOf(letter string) string {
	if s, ok := strengths[letter]; ok {
		return s
	}
	return fmt.Sprintf("Strong %s characteristics", letter)
}

func recommend(dominant, secondary string) []string {
	if dominant == "" {
		return []string{}
	}
	return []string{
		fmt.Sprintf("Leverage your %s strengths in leadership roles and decision-making", label(dominant)),
		fmt.Sprintf("Develop your %s abilities to complement your dominant traits", label(secondary)),
		"Consider roles that utilize both analytical and creative thinking",
		"Practice balancing different thinking styles for well-rounded problem solving",
	}
}

// label renders a letter with its trait name when one exists.
func label(letter string) string {
	if t, ok := taxonomy.Lookup(letter); ok {
		return fmt.Sprintf("%s (%s)", letter, t.Name)
	}
	return letter
}

// Compare measures current against the average of sessions and lists
// the letters that rose since the latest session.
func Compare(current score.Counts, sessions []session.Session) Comparison {
	if len(sessions) == 0 {
		return Comparison{
			AverageProfile: current,
			Consistency:    perfectConsistency,
			Growth:         []string{"This is your first test - great start!"},
		}
	}

	sums := make(map[string]int)
	for _, s := range sessions {
		for l, n := range s.Counts {
			sums[l] += n
		}
	}
	avg := make(score.Counts, len(sums))
	for l, sum := range sums {
		avg[l] = roundHalfUp(float64(sum) / float64(len(sessions)))
	}

	return Comparison{
		AverageProfile: avg,
		Consistency:    Consistency(current, avg),
		Growth:         growth(current, sessions),
	}
}

// Consistency is 100 minus the summed absolute difference between a
// and b as a percentage of the summed per-letter maxima, floored at 0.
// Two empty profiles are fully consistent.
func Consistency(a, b score.Counts) float64 {
	letters := make(map[string]bool)
	for l := range a {
		letters[l] = true
	}
	for l := range b {
		letters[l] = true
	}

	diff, possible := 0, 0
	for l := range letters {
		x, y := a[l], b[l]
		if x > y {
			diff += x - y
			possible += x
		} else {
			diff += y - x
			possible += y
		}
	}
	if possible == 0 {
		return perfectConsistency
	}
	return math.Max(0, perfectConsistency-float64(diff)/float64(possible)*100)
}

func growth(current score.Counts, sessions []session.Session) []string {
	if len(sessions) < 2 {
		return []string{"Take more tests to see your growth patterns"}
	}
	last := sessions[len(sessions)-1]

	var notes []string
	for _, l := range current.Letters() {
		if current[l] > last.Counts[l] {
			notes = append(notes, fmt.Sprintf("Increased %s characteristics since your last test", l))
		}
		if len(notes) == maxGrowth {
			break
		}
	}
	if len(notes) == 0 {
		notes = []string{"Your results show consistency with previous tests"}
	}
	return notes
}

// Statistics summarizes sessions as of now. Sessions are expected
// oldest first, as returned by session.Store.List.
func Statistics(sessions []session.Session, now time.Time) Stats {
	if len(sessions) == 0 {
		return Stats{}
	}

	st := Stats{TotalTests: len(sessions)}

	var minutes float64
	timed := 0
	for _, s := range sessions {
		if s.CompletionMinutes > 0 {
			minutes += s.CompletionMinutes
			timed++
		}
	}
	if timed > 0 {
		st.AverageCompletionMinutes = roundHalfUp(minutes / float64(timed))
	}

	st.MostCommonDominant = mostCommonDominant(sessions)

	span := float64(now.Sub(sessions[0].Timestamp)) / float64(monthLength)
	freq := float64(st.TotalTests)
	if span > 0 {
		freq /= span
	}
	st.TestsPerMonth = math.Floor(freq*10+0.5) / 10
	return st
}

// mostCommonDominant returns the most frequent first dominant trait.
// Ties go to the trait seen first.
func mostCommonDominant(sessions []session.Session) string {
	counts := make(map[string]int)
	var order []string
	for _, s := range sessions {
		if len(s.DominantTraits) == 0 {
			continue
		}
		t := s.DominantTraits[0]
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) == 0 {
		return ""
	}
	return order[0]
}

func percentage(n, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(n) / float64(total) * 100)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
