package update

import (
	"go.uber.org/zap"
)

var onboardingPages = []string{
	"# Organize Your Tasks\n\nCreate, manage, and track all your tasks in one place. Set priorities, deadlines, and never miss important work.",
	"# Track Your Progress\n\nSee your productivity at a glance: daily completions, hours worked, productivity score and your current streak.",
	"# Collaborate Efficiently\n\nWork with your team. Assign tasks, track project progress, and achieve goals together.",
	"# Learn & Improve\n\nGet educational tips on task management, productivity techniques, and team collaboration.",
}

func (m Model) handleOnboardingKey(key string) Model {
	switch key {
	case "enter", "l", "right", " ":
		if m.OnboardingPage < len(onboardingPages)-1 {
			m.OnboardingPage++
			return m
		}
		return m.completeOnboarding()
	case "h", "left":
		if m.OnboardingPage > 0 {
			m.OnboardingPage--
		}
	case "s":
		return m.completeOnboarding()
	}
	return m
}

func (m Model) completeOnboarding() Model {
	if err := m.persistAppState(appState{HasCompletedOnboarding: true}); err != nil {
		m.log.Warn("write state file failed", zap.String("path", m.stateFilePath), zap.Error(err))
		m.Status = StatusBar{Text: "could not save onboarding state: " + err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: "welcome to Task Maestro"}
	}
	m.CurrentView = ViewHome
	m.OnboardingPage = 0
	return m
}
