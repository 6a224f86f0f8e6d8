package school

import "sort"

// Derived/aggregate helpers over already-fetched lists. These are thin
// compositions with no contract of their own: callers fetch the lists through
// the API client and reduce them here.

// DashboardStats summarizes the landing page counters.
type DashboardStats struct {
	Students    int     `json:"students"`
	Subjects    int     `json:"subjects"`
	Assignments int     `json:"assignments"`
	AverageGPA  float64 `json:"average_gpa"`
}

// RatedStudent pairs a student with their computed GPA for rating views.
type RatedStudent struct {
	Student Student `json:"student"`
	GPA     float64 `json:"gpa"`
}

// GPA averages grade values for one student; zero when they have no grades.
func GPA(grades []Grade, studentID int) float64 {
	var sum, n int
	for _, g := range grades {
		if g.StudentID == studentID {
			sum += g.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// ComputeDashboardStats reduces fetched lists into the dashboard counters.
func ComputeDashboardStats(students []Student, subjects []Subject, assignments []Assignment, grades []Grade) DashboardStats {
	stats := DashboardStats{
		Students:    len(students),
		Subjects:    len(subjects),
		Assignments: len(assignments),
	}
	if len(students) > 0 {
		var total float64
		for _, s := range students {
			total += GPA(grades, s.ID)
		}
		stats.AverageGPA = total / float64(len(students))
	}
	return stats
}

// TopStudents ranks students by GPA, highest first, keeping at most n.
// Ties keep the fetched student order.
func TopStudents(students []Student, grades []Grade, n int) []RatedStudent {
	rated := make([]RatedStudent, 0, len(students))
	for _, s := range students {
		rated = append(rated, RatedStudent{Student: s, GPA: GPA(grades, s.ID)})
	}
	sort.SliceStable(rated, func(i, j int) bool { return rated[i].GPA > rated[j].GPA })
	if n > 0 && len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

// GPADistribution buckets student GPAs into ten-point bands: index 0 holds
// [0,10), index 9 holds [90,100].
func GPADistribution(students []Student, grades []Grade) [10]int {
	var dist [10]int
	for _, s := range students {
		gpa := GPA(grades, s.ID)
		bucket := int(gpa / 10)
		if bucket > 9 {
			bucket = 9
		}
		dist[bucket]++
	}
	return dist
}
