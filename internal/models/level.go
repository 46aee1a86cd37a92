package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is one entry of the job board's seniority catalogue.
type Level struct {
	Code  int
	Label string
}

const LevelTrainee = 1

// Levels is the fixed catalogue, in the order the job board lists it.
var Levels = []Level{
	{Code: LevelTrainee, Label: "Trainee / intern"},
	{Code: 3, Label: "Assistant"},
	{Code: 17, Label: "Junior specialist"},
	{Code: 4, Label: "Specialist (Mid / Regular)"},
	{Code: 18, Label: "Senior specialist"},
	{Code: 19, Label: "Expert"},
	{Code: 20, Label: "Team manager"},
	{Code: 21, Label: "Manager"},
	{Code: 5, Label: "Director"},
	{Code: 6, Label: "President"},
	{Code: 2, Label: "Physical worker"},
}

func LevelByCode(code int) (Level, bool) {
	for _, l := range Levels {
		if l.Code == code {
			return l, true
		}
	}
	return Level{}, false
}

// ParseLevelCodes parses a comma separated list such as "17,18".
func ParseLevelCodes(s string) ([]int, error) {
	var codes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: level code %q is not a number", ErrInvalidCriteria, part)
		}
		if _, ok := LevelByCode(code); !ok {
			return nil, fmt.Errorf("%w: unknown level code %d", ErrInvalidCriteria, code)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
