// Package generator builds sample workout records.
package generator

import (
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/verte-zerg/trainlog/internal/catalog"
	"github.com/verte-zerg/trainlog/internal/model"
)

const (
	exercisesPerSession = 3
	setsPerExercise     = 3
	minReps             = 3
	maxReps             = 10
	restDays            = 2
)

// Generator produces randomized training sessions.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator with a random seed.
func New() *Generator {
	return NewWithSeed(0)
}

// NewWithSeed returns a deterministic Generator. A zero seed is random.
func NewWithSeed(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Generate builds sessions training days starting at start, one every few
// days. Each day picks a few exercises from exercises and logs several sets,
// raising the weight by the exercise step every time it is trained. Records
// carry no ID.
func (g *Generator) Generate(exercises []catalog.Exercise, sessions int, start time.Time) model.Collection {
	if len(exercises) == 0 || sessions <= 0 {
		return model.Collection{}
	}
	trained := make(map[string]int, len(exercises))
	out := make(model.Collection, 0, sessions*exercisesPerSession*setsPerExercise)
	day := start
	for s := 0; s < sessions; s++ {
		at := day.Add(time.Duration(g.faker.IntRange(7*60, 20*60)) * time.Minute)
		for _, idx := range g.pick(len(exercises), min(exercisesPerSession, len(exercises))) {
			ex := exercises[idx]
			weight := ex.StartWeight + trained[ex.Name]*ex.Step
			trained[ex.Name]++
			for set := 0; set < setsPerExercise; set++ {
				out = append(out, model.Record{
					Date:        at.Format(model.DateLayout),
					Exercise:    ex.Name,
					Weight:      strconv.Itoa(weight),
					Repetitions: strconv.Itoa(g.faker.IntRange(minReps, maxReps)),
				})
				at = at.Add(time.Duration(g.faker.IntRange(2, 5)) * time.Minute)
			}
		}
		day = day.AddDate(0, 0, restDays+g.faker.IntRange(0, 1))
	}
	return out
}

// pick returns k distinct indexes below n in random order.
func (g *Generator) pick(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g.faker.ShuffleAnySlice(idx)
	return idx[:k]
}
