// Package catalog loads the exercise catalog used to seed sample data.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Exercise describes how sample sets for one movement are generated.
type Exercise struct {
	Name        string
	StartWeight int
	Step        int
}

const (
	defaultStartWeight = 20
	defaultStep        = 2
)

// Default is the built-in catalog.
var Default = []Exercise{
	{Name: "Squat", StartWeight: 60, Step: 5},
	{Name: "Bench Press", StartWeight: 40, Step: 2},
	{Name: "Deadlift", StartWeight: 80, Step: 5},
	{Name: "Overhead Press", StartWeight: 30, Step: 1},
	{Name: "Barbell Row", StartWeight: 40, Step: 2},
	{Name: "Pull Up", StartWeight: 0, Step: 1},
	{Name: "Dumbbell Curl", StartWeight: 10, Step: 1},
}

// Load reads one exercise per line from path. A line is a name, optionally
// followed by "|start|step". Blank lines and lines starting with # are skipped.
func Load(path string) ([]Exercise, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var out []Exercise
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ex, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		out = append(out, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	out = Dedupe(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("exercise catalog is empty")
	}
	return out, nil
}

func parseLine(line string) (Exercise, error) {
	parts := strings.Split(line, "|")
	ex := Exercise{
		Name:        strings.TrimSpace(parts[0]),
		StartWeight: defaultStartWeight,
		Step:        defaultStep,
	}
	if !ValidName(ex.Name) {
		return Exercise{}, fmt.Errorf("invalid exercise name %q", ex.Name)
	}
	switch len(parts) {
	case 1:
		return ex, nil
	case 3:
	default:
		return Exercise{}, fmt.Errorf("expected name or name|start|step, got %q", line)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || start < 0 {
		return Exercise{}, fmt.Errorf("invalid start weight %q", parts[1])
	}
	step, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || step < 0 {
		return Exercise{}, fmt.Errorf("invalid step %q", parts[2])
	}
	ex.StartWeight = start
	ex.Step = step
	return ex, nil
}
