package model

import (
	"time"

	"github.com/google/uuid"
)

type TipCategory string

const (
	TipCategoryTimeManagement TipCategory = "Time Management"
	TipCategoryProductivity   TipCategory = "Productivity"
	TipCategoryTeamwork       TipCategory = "Teamwork"
	TipCategoryPlanning       TipCategory = "Planning"
	TipCategoryFocus          TipCategory = "Focus"
)

func (c TipCategory) IsValid() bool {
	switch c {
	case TipCategoryTimeManagement, TipCategoryProductivity, TipCategoryTeamwork, TipCategoryPlanning, TipCategoryFocus:
		return true
	default:
		return false
	}
}

func Categories() []TipCategory {
	return []TipCategory{
		TipCategoryTimeManagement,
		TipCategoryProductivity,
		TipCategoryTeamwork,
		TipCategoryPlanning,
		TipCategoryFocus,
	}
}

// ParseTipCategory falls back to Productivity for unknown values.
func ParseTipCategory(raw string) TipCategory {
	c := TipCategory(raw)
	if c.IsValid() {
		return c
	}
	return TipCategoryProductivity
}

type EducationalTip struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Category  TipCategory
	IsRead    bool
	CreatedAt time.Time
}

type TipSeed struct {
	Title    string
	Content  string
	Category TipCategory
}

func TipCatalog() []TipSeed {
	return []TipSeed{
		{"Pomodoro Technique", "Work in 25-minute focused intervals with 5-minute breaks. This helps maintain concentration and prevents burnout.", TipCategoryTimeManagement},
		{"Eisenhower Matrix", "Prioritize tasks by urgency and importance. Focus on important but not urgent tasks to prevent last-minute rushes.", TipCategoryPlanning},
		{"Two-Minute Rule", "If a task takes less than two minutes, do it immediately. This prevents small tasks from piling up.", TipCategoryProductivity},
		{"Time Blocking", "Schedule specific time blocks for different types of work. This creates structure and reduces decision fatigue.", TipCategoryTimeManagement},
		{"Morning Routine", "Start your day with a consistent routine. This sets a positive tone and improves overall productivity.", TipCategoryFocus},
		{"Single-Tasking", "Focus on one task at a time. Multitasking reduces efficiency and increases errors.", TipCategoryFocus},
		{"Team Standup", "Brief daily team meetings keep everyone aligned and identify blockers early.", TipCategoryTeamwork},
		{"Clear Communication", "Be explicit in your communication. Ambiguity leads to misunderstandings and wasted time.", TipCategoryTeamwork},
		{"Regular Breaks", "Take regular breaks to maintain mental clarity. Your brain needs rest to perform optimally.", TipCategoryProductivity},
		{"Goal Setting", "Set SMART goals (Specific, Measurable, Achievable, Relevant, Time-bound) for better results.", TipCategoryPlanning},
	}
}
